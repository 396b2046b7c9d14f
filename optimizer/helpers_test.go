// SPDX-License-Identifier: MIT

package optimizer_test

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routesolver/legrepo"
	"github.com/katalvlaran/routesolver/routegraph"
	"github.com/katalvlaran/routesolver/trip"
)

var d0 = trip.NewDay(2024, time.June, 1)

func at(day, hour int) time.Time {
	return d0.AddDays(day).Start().Add(time.Duration(hour) * time.Hour)
}

func flight(org, dst string, depDay, depHour, arrDay, arrHour int, price float64) trip.Leg {
	return trip.Leg{
		Origin:      org,
		Destination: dst,
		Departure:   at(depDay, depHour),
		Arrival:     at(arrDay, arrHour),
		Price:       trip.Amount(price),
		Currency:    "USD",
	}
}

func window(from, to int) trip.DateRange {
	return trip.DateRange{From: d0.AddDays(from), To: d0.AddDays(to)}
}

// buildGraph ingests legs into a fresh repository and builds the graph.
func buildGraph(t *testing.T, req *trip.Request, legs []trip.Leg, opts ...routegraph.Option) *routegraph.Graph {
	t.Helper()
	repo := legrepo.New(nil)
	repo.Ingest(legs)
	g, err := routegraph.New(req, repo, opts...)
	require.NoError(t, err)

	return g
}

// bruteForce enumerates every visiting order and every leg combination,
// checking each constraint directly against the request.
func bruteForce(req *trip.Request, pool []trip.Leg, k int) []trip.Itinerary {
	var all []trip.Itinerary
	for _, order := range visitingOrders(req) {
		var walk func(pos int, legs []trip.Leg)
		walk = func(pos int, legs []trip.Leg) {
			if pos == len(order) {
				all = append(all, trip.NewItinerary(legs))
				return
			}
			from, to := req.Stops[order[pos-1]], req.Stops[order[pos]]
			for _, l := range pool {
				if l.Origin != from.Location || l.Destination != to.Location {
					continue
				}
				if !to.Window.ContainsTime(l.Arrival) {
					continue
				}
				if pos == 1 {
					if !req.Stops[0].Window.ContainsTime(l.Departure) {
						continue
					}
				} else {
					prev := legs[len(legs)-1]
					gap := l.Departure.Sub(prev.Arrival)
					if gap < req.MinLayover || (req.MaxLayover > 0 && gap > req.MaxLayover) {
						continue
					}
				}
				start := l.Departure
				if len(legs) > 0 {
					start = legs[0].Departure
				}
				if req.MaxTripDuration > 0 && l.Arrival.Sub(start) > req.MaxTripDuration {
					continue
				}
				walk(pos+1, append(slices.Clip(legs), l))
			}
		}
		walk(1, nil)
	}
	slices.SortFunc(all, trip.Compare)
	if len(all) > k {
		all = all[:k]
	}

	return all
}

// visitingOrders lists the stop orders allowed by the fixed/free rules.
func visitingOrders(req *trip.Request) [][]int {
	n := len(req.Stops)
	var free, slots []int
	for i := 1; i < n-1; i++ {
		if !req.IsFixed(i) {
			free = append(free, i)
			slots = append(slots, i)
		}
	}

	var out [][]int
	var permute func(k int)
	permute = func(k int) {
		if k == len(free) {
			order := make([]int, n)
			for i := range order {
				order[i] = i
			}
			for s, slot := range slots {
				order[slot] = free[s]
			}
			out = append(out, order)
			return
		}
		for i := k; i < len(free); i++ {
			free[k], free[i] = free[i], free[k]
			permute(k + 1)
			free[k], free[i] = free[i], free[k]
		}
	}
	permute(0)

	return out
}

// randomInstance builds a request of n stops with a planted feasible route
// (stops in list order, one overnight leg per day) and up to three random
// extra legs per ordered location pair.
func randomInstance(rng *rand.Rand, n int) (*trip.Request, []trip.Leg) {
	loc := func(i int) string { return fmt.Sprintf("L%d", i) }
	roundTrip := rng.Intn(2) == 0
	req := &trip.Request{MinLayover: time.Hour}
	for i := 0; i < n; i++ {
		s := trip.Stop{Location: loc(i)}
		switch {
		case i == 0:
			s.Window = window(0, rng.Intn(2))
		default:
			s.Window = window(i, i+1+rng.Intn(3))
			s.Fixed = rng.Intn(4) == 0
		}
		req.Stops = append(req.Stops, s)
	}
	if roundTrip {
		req.Stops[n-1].Location = loc(0)
	}
	if rng.Intn(2) == 0 {
		req.MaxLayover = 24 * time.Hour
	}
	if rng.Intn(2) == 0 {
		req.MaxTripDuration = time.Duration(n) * 24 * time.Hour
	}

	price := func() float64 { return float64(10 * (5 + rng.Intn(46))) }
	var pool []trip.Leg
	for i := 0; i+1 < n; i++ {
		pool = append(pool, flight(req.Stops[i].Location, req.Stops[i+1].Location, i, 20, i+1, 6, price()))
	}
	locs := make([]string, 0, n)
	for _, s := range req.Stops {
		if !slices.Contains(locs, s.Location) {
			locs = append(locs, s.Location)
		}
	}
	for _, a := range locs {
		for _, b := range locs {
			if a == b {
				continue
			}
			for extra := rng.Intn(4); extra > 0; extra-- {
				day, hour := rng.Intn(n+1), rng.Intn(24)
				dur := 1 + rng.Intn(14)
				dep := at(day, hour)
				pool = append(pool, trip.Leg{
					Origin:      a,
					Destination: b,
					Departure:   dep,
					Arrival:     dep.Add(time.Duration(dur) * time.Hour),
					Price:       trip.Amount(price()),
					Currency:    "USD",
				})
			}
		}
	}
	slices.SortFunc(pool, trip.CompareLegs)
	pool = slices.CompactFunc(pool, func(a, b trip.Leg) bool { return trip.CompareLegs(a, b) == 0 })

	return req, pool
}

// requireSameItineraries compares itineraries by price, duration and legs.
func requireSameItineraries(t *testing.T, want, got []trip.Itinerary, msgAndArgs ...any) {
	t.Helper()
	require.Len(t, got, len(want), msgAndArgs...)
	for i := range want {
		require.Equal(t, want[i].TotalPrice, got[i].TotalPrice, msgAndArgs...)
		require.Equal(t, want[i].TotalDuration, got[i].TotalDuration, msgAndArgs...)
		require.Zero(t, trip.CompareLegSeq(want[i].Legs, got[i].Legs), msgAndArgs...)
	}
}

// requireWithinWindows checks every leg against its stop windows.
func requireWithinWindows(t *testing.T, req *trip.Request, it trip.Itinerary) {
	t.Helper()
	require.True(t, req.Stops[0].Window.ContainsTime(it.Legs[0].Departure), "first departure outside origin window")
	for _, l := range it.Legs {
		ok := false
		for _, s := range req.Stops[1:] {
			if s.Location == l.Destination && s.Window.ContainsTime(l.Arrival) {
				ok = true
			}
		}
		require.True(t, ok, "arrival of %s outside every window of %s", l, l.Destination)
	}
}
