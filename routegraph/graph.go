// SPDX-License-Identifier: MIT

package routegraph

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/routesolver/bfs"
	"github.com/katalvlaran/routesolver/core"
	"github.com/katalvlaran/routesolver/trip"
)

// DefaultMaxNodes is the default arena size limit of Materialize.
const DefaultMaxNodes = 1 << 20

// Lookup serves legs that are already known; it must not block on I/O.
// *legrepo.Repository satisfies it through its Cached method.
type Lookup interface {
	Cached(origin, destination string, day trip.Day) ([]trip.Leg, error)
}

// Option configures a Graph.
type Option func(*Graph)

// WithMaxNodes caps the number of arena nodes Materialize may create.
// It panics if n < 1.
func WithMaxNodes(n int) Option {
	if n < 1 {
		panic("routegraph: WithMaxNodes(<1)")
	}

	return func(g *Graph) { g.maxNodes = n }
}

// Graph is the leg-level route graph of one request. It is immutable after
// New and safe for concurrent readers.
type Graph struct {
	req      *trip.Request
	n        int
	last     int
	full     uint64
	pairs    [][]trip.Leg // pairs[i*n+j]: legs i→j sorted by trip.CompareLegs
	minOut   []trip.Money // cheapest leg leaving each stop; noLeg if none
	legs     int
	maxNodes int
}

const noLeg = trip.Money(math.MaxInt64)

// New validates req and builds the per-pair leg tables from lookup.
//
// Errors:
//   - trip.ErrInvalidRequest (wrapped) for a malformed request;
//   - *DeadEndError (matching ErrNoFeasibleGraph) if the stop-level pair
//     graph cannot carry any itinerary.
//
// Complexity: O(n³ + Σ d·m) for n stops, d window days per pair and m legs
// per day bucket.
func New(req *trip.Request, lookup Lookup, opts ...Option) (*Graph, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n := len(req.Stops)
	g := &Graph{
		req:      req,
		n:        n,
		last:     n - 1,
		full:     uint64(1)<<uint(n) - 1,
		pairs:    make([][]trip.Leg, n*n),
		minOut:   make([]trip.Money, n),
		maxNodes: DefaultMaxNodes,
	}
	for _, opt := range opts {
		opt(g)
	}

	var i, j int
	for i = 0; i < n; i++ {
		g.minOut[i] = noLeg
		for j = 0; j < n; j++ {
			if !req.CanFollow(i, j) {
				continue
			}
			legs := g.collect(lookup, i, j)
			if len(legs) == 0 {
				continue
			}
			g.pairs[i*n+j] = legs
			g.legs += len(legs)
			for _, l := range legs {
				g.minOut[i] = min(g.minOut[i], l.Price)
			}
		}
	}

	if err := g.checkReachability(); err != nil {
		return nil, err
	}

	return g, nil
}

// collect gathers the usable legs of pair (i, j). Buckets are visited in
// ascending day order and each is sorted, so the result is sorted.
func (g *Graph) collect(lookup Lookup, i, j int) []trip.Leg {
	var (
		from   = g.req.Stops[i]
		to     = g.req.Stops[j]
		window = g.req.LegWindow(i, j)
		out    []trip.Leg
		day    trip.Day
		l      trip.Leg
	)
	if window.Empty() || lookup == nil {
		return nil
	}
	for _, day = range window.Days() {
		legs, err := lookup.Cached(from.Location, to.Location, day)
		if err != nil {
			continue
		}
		for _, l = range legs {
			if g.usable(l, to) {
				out = append(out, l)
			}
		}
	}

	return out
}

func (g *Graph) usable(l trip.Leg, to trip.Stop) bool {
	if !to.Window.ContainsTime(l.Arrival) {
		return false
	}
	if g.req.Currency != "" && !strings.EqualFold(l.Currency, g.req.Currency) {
		return false
	}
	if g.req.MaxTripDuration > 0 && l.Duration() > g.req.MaxTripDuration {
		return false
	}

	return true
}

// checkReachability runs BFS over the stop graph, forward from the origin
// and over its transpose from the final stop. Every stop has to be visited,
// so every stop must be reached by both walks.
func (g *Graph) checkReachability() error {
	origin := g.req.Stops[0].Location
	dead := func(format string, args ...any) error {
		return &DeadEndError{
			Reason:  fmt.Sprintf(format, args...),
			Deepest: Trace{Location: origin, Visited: []string{origin}},
		}
	}

	if g.minOut[0] == noLeg {
		return dead("origin %s has no usable outgoing legs", origin)
	}

	sg, err := g.stopGraph()
	if err != nil {
		return err
	}
	fwd, err := bfs.BFS(sg, stopID(0))
	if err != nil {
		return fmt.Errorf("routegraph: forward reachability: %w", err)
	}
	bwd, err := bfs.BFS(sg.Transpose(), stopID(g.last))
	if err != nil {
		return fmt.Errorf("routegraph: backward reachability: %w", err)
	}

	var i int
	for i = 0; i < g.n; i++ {
		if !fwd.Reached(stopID(i)) {
			return dead("stop %d (%s) cannot be reached from origin %s", i, g.req.Stops[i].Location, origin)
		}
		if !bwd.Reached(stopID(i)) {
			return dead("final stop %s cannot be reached from stop %d (%s)",
				g.req.Stops[g.last].Location, i, g.req.Stops[i].Location)
		}
	}

	return nil
}

// stopGraph returns the directed stop-level graph: one vertex per stop
// index, one edge i->j per pair with at least one usable leg.
//
// Complexity: O(n²).
func (g *Graph) stopGraph() (*core.Graph, error) {
	sg := core.NewGraph(core.WithDirected(true))
	var i, j int
	for i = 0; i < g.n; i++ {
		if err := sg.AddVertex(stopID(i)); err != nil {
			return nil, fmt.Errorf("routegraph: stop graph: %w", err)
		}
	}
	for i = 0; i < g.n; i++ {
		for j = 0; j < g.n; j++ {
			if i == j || len(g.pairs[i*g.n+j]) == 0 {
				continue
			}
			if err := sg.AddEdge(stopID(i), stopID(j), 0); err != nil {
				return nil, fmt.Errorf("routegraph: stop graph: %w", err)
			}
		}
	}

	return sg, nil
}

// stopID names stop i in the stop graph. Locations repeat (round trips),
// indices do not.
func stopID(i int) string { return strconv.Itoa(i) }

// Request returns the request the graph was built for.
func (g *Graph) Request() *trip.Request { return g.req }

// Stops returns the number of stops.
func (g *Graph) Stops() int { return g.n }

// LegCount returns the number of usable legs across all pairs.
func (g *Graph) LegCount() int { return g.legs }

// Legs returns the usable legs from stop i to stop j, sorted by
// trip.CompareLegs. The slice must not be modified.
func (g *Graph) Legs(i, j int) []trip.Leg {
	if i < 0 || j < 0 || i >= g.n || j >= g.n {
		return nil
	}

	return g.pairs[i*g.n+j]
}

// MinOut returns the price of the cheapest usable leg leaving stop i,
// and false if there is none.
func (g *Graph) MinOut(i int) (trip.Money, bool) {
	if g.minOut[i] == noLeg {
		return 0, false
	}

	return g.minOut[i], true
}
