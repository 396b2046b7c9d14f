// SPDX-License-Identifier: MIT

package trip

import (
	"cmp"
	"strings"
	"time"
)

// Itinerary is an ordered sequence of legs visiting every required stop.
// It is produced by the optimizer and owned by the caller.
type Itinerary struct {
	Legs          []Leg         `json:"legs"`
	Stops         []string      `json:"stops"`
	TotalPrice    Money         `json:"total_price"`
	TotalDuration time.Duration `json:"total_duration"`
	Currency      string        `json:"currency,omitempty"`
	Feasible      bool          `json:"feasible"`
}

// NewItinerary derives totals from legs. The visiting order of stops is
// the origin of the first leg followed by the destination of every leg.
func NewItinerary(legs []Leg) Itinerary {
	it := Itinerary{
		Legs:     append([]Leg(nil), legs...),
		Feasible: len(legs) > 0,
	}
	if len(legs) == 0 {
		return it
	}
	it.Stops = make([]string, 0, len(legs)+1)
	it.Stops = append(it.Stops, legs[0].Origin)
	var l Leg
	for _, l = range legs {
		it.TotalPrice += l.Price
		it.Stops = append(it.Stops, l.Destination)
	}
	it.TotalDuration = legs[len(legs)-1].Arrival.Sub(legs[0].Departure)
	it.Currency = legs[0].Currency

	return it
}

// Route renders the stop sequence as "A → B → C".
func (it Itinerary) Route() string { return strings.Join(it.Stops, " → ") }

// Compare orders itineraries by price, then duration, then leg sequence
// (CompareLegs leg by leg, down to fare class, currency and price; a
// shorter prefix sorts first).
// It returns -1, 0 or +1 and is a total order on distinct itineraries.
func Compare(a, b Itinerary) int {
	if c := cmp.Compare(a.TotalPrice, b.TotalPrice); c != 0 {
		return c
	}
	if c := cmp.Compare(a.TotalDuration, b.TotalDuration); c != 0 {
		return c
	}

	return CompareLegSeq(a.Legs, b.Legs)
}

// CompareLegSeq compares two leg sequences lexicographically by CompareLegs.
func CompareLegSeq(a, b []Leg) int {
	n := min(len(a), len(b))
	var i int
	for i = 0; i < n; i++ {
		if c := CompareLegs(a[i], b[i]); c != 0 {
			return c
		}
	}

	return cmp.Compare(len(a), len(b))
}
