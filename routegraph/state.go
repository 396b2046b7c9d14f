// SPDX-License-Identifier: MIT

package routegraph

import (
	"math/bits"
	"sort"
	"time"

	"github.com/katalvlaran/routesolver/trip"
)

// State is a point of the search: the traveller stands at Stop having
// visited the stops in Visited (Stop included), arriving at Arrival.
// Start is the departure of the first leg; both times are zero at the origin.
type State struct {
	Stop    int
	Visited uint64
	Depth   int // legs taken so far
	Arrival time.Time
	Start   time.Time
}

// Origin returns the initial state.
func (g *Graph) Origin() State { return State{Stop: 0, Visited: 1} }

// IsTerminal reports whether s has visited every stop and stands at the
// final destination.
func (g *Graph) IsTerminal(s State) bool {
	return s.Stop == g.last && s.Visited == g.full
}

// Remaining returns the number of stops s has not visited yet.
func (g *Graph) Remaining(s State) int { return g.n - bits.OnesCount64(s.Visited) }

// Successors calls fn for every state reachable from s by one leg, in
// deterministic order: by next stop index, then by the leg order of the
// pair table. It stops early when fn returns false. The leg pointer
// aliases the graph's table and must not be modified.
//
// The final stop is offered only once every other stop is visited, and a
// stop is offered only at a position the ordering rules allow.
//
// Complexity: O(n + log m + k) per call for n stops, m legs per pair and k
// emitted successors.
func (g *Graph) Successors(s State, fn func(next State, leg *trip.Leg) bool) {
	var (
		req  = g.req
		pos  = s.Depth + 1
		j, k int
	)
	for j = 0; j < g.n; j++ {
		bit := uint64(1) << uint(j)
		if s.Visited&bit != 0 {
			continue
		}
		if j == g.last && s.Visited|bit != g.full {
			continue
		}
		if !req.AllowedAt(j, pos) {
			continue
		}
		legs := g.pairs[s.Stop*g.n+j]
		if len(legs) == 0 {
			continue
		}

		lo := 0
		if s.Depth > 0 {
			earliest := s.Arrival.Add(req.MinLayover)
			lo = sort.Search(len(legs), func(k int) bool { return !legs[k].Departure.Before(earliest) })
		}
		for k = lo; k < len(legs); k++ {
			l := &legs[k]
			if s.Depth > 0 && req.MaxLayover > 0 && l.Departure.Sub(s.Arrival) > req.MaxLayover {
				break // legs are sorted by departure
			}
			start := s.Start
			if s.Depth == 0 {
				start = l.Departure
			}
			if req.MaxTripDuration > 0 && l.Arrival.Sub(start) > req.MaxTripDuration {
				continue
			}
			next := State{
				Stop:    j,
				Visited: s.Visited | bit,
				Depth:   pos,
				Arrival: l.Arrival,
				Start:   start,
			}
			if !fn(next, l) {
				return
			}
		}
	}
}
