// SPDX-License-Identifier: MIT

package routegraph

import (
	"time"

	"github.com/katalvlaran/routesolver/trip"
)

// Trace is a partial route: where the search stood when it got stuck.
// Arrival is nil while the route is still at the origin.
type Trace struct {
	Location string     `json:"location"`
	Visited  []string   `json:"visited"`
	Arrival  *time.Time `json:"arrival,omitempty"`
	Price    trip.Money `json:"price"`
	Legs     []trip.Leg `json:"legs,omitempty"`
}

// TraceOf describes state s reached via legs (in travel order).
func (g *Graph) TraceOf(s State, legs []trip.Leg) Trace {
	t := Trace{
		Location: g.req.Stops[s.Stop].Location,
		Visited:  make([]string, 0, len(legs)+1),
		Legs:     append([]trip.Leg(nil), legs...),
	}
	if len(legs) > 0 {
		arrival := s.Arrival
		t.Arrival = &arrival
	}
	t.Visited = append(t.Visited, g.req.Stops[0].Location)
	var l trip.Leg
	for _, l = range legs {
		t.Price += l.Price
		t.Visited = append(t.Visited, l.Destination)
	}

	return t
}
