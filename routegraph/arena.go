// SPDX-License-Identifier: MIT

package routegraph

import (
	"context"
	"fmt"
	"slices"

	"github.com/katalvlaran/routesolver/trip"
)

// checkEvery is how many expansions Materialize performs between
// cancellation checks.
const checkEvery = 1024

// Node is one arena state. Pred and PredLeg record the edge by which the
// node was first discovered; they are used for diagnostics only.
type Node struct {
	State   State
	Pred    int // -1 for the origin
	PredLeg *trip.Leg
}

// Edge is a leg-labelled arc to arena node To.
type Edge struct {
	To  int
	Leg *trip.Leg
}

// Arena is the materialized state graph. Nodes are in topological order
// (ascending arrival, the origin first); Out is indexed like Nodes.
type Arena struct {
	Nodes     []Node
	Out       [][]Edge
	Terminals []int
	Edges     int
}

type nodeKey struct {
	stop    int
	visited uint64
	arrival int64
	start   int64
}

// Materialize expands every state reachable from the origin.
//
// Errors:
//   - ErrGraphTooLarge (wrapped) once more than the WithMaxNodes limit of
//     nodes would be created;
//   - *DeadEndError (matching ErrNoFeasibleGraph) if no terminal state is
//     reachable; its trace is the deepest state found;
//   - ctx.Err() on cancellation.
//
// Complexity: O(V·n + E) time and O(V + E) memory for V states and E edges.
func (g *Graph) Materialize(ctx context.Context) (*Arena, error) {
	var (
		keyed    = make(map[nodeKey]int)
		nodes    = []Node{{State: g.Origin(), Pred: -1}}
		out      = [][]Edge{nil}
		edges    int
		deepest  int
		overflow bool
		u        int
	)
	keyed[g.key(g.Origin())] = 0

	for u = 0; u < len(nodes) && !overflow; u++ {
		if u%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		from := u
		g.Successors(nodes[u].State, func(next State, leg *trip.Leg) bool {
			k := g.key(next)
			v, ok := keyed[k]
			if !ok {
				if len(nodes) >= g.maxNodes {
					overflow = true
					return false
				}
				v = len(nodes)
				keyed[k] = v
				nodes = append(nodes, Node{State: next, Pred: from, PredLeg: leg})
				out = append(out, nil)
				if next.Depth > nodes[deepest].State.Depth {
					deepest = v
				}
			}
			out[from] = append(out[from], Edge{To: v, Leg: leg})
			edges++

			return true
		})
	}
	if overflow {
		return nil, fmt.Errorf("%w: more than %d states", ErrGraphTooLarge, g.maxNodes)
	}

	a := g.sortArena(nodes, out)
	a.Edges = edges
	if len(a.Terminals) == 0 {
		return nil, &DeadEndError{
			Reason:  fmt.Sprintf("no itinerary reaches %s within the constraints", g.req.Stops[g.last].Location),
			Deepest: g.traceNode(nodes, deepest),
		}
	}

	return a, nil
}

// key identifies a state. The first departure is part of the key only when
// a trip-duration budget makes it matter for what lies ahead.
func (g *Graph) key(s State) nodeKey {
	k := nodeKey{stop: s.Stop, visited: s.Visited}
	if s.Depth > 0 {
		k.arrival = s.Arrival.UnixNano()
		if g.req.MaxTripDuration > 0 {
			k.start = s.Start.UnixNano()
		}
	}

	return k
}

// sortArena reorders nodes by arrival and rewrites edge targets.
// Discovery order is kept among equal arrivals.
func (g *Graph) sortArena(nodes []Node, out [][]Edge) *Arena {
	order := make([]int, len(nodes))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch { // origin first; its zero arrival is not an instant
		case a == b:
			return 0
		case a == 0:
			return -1
		case b == 0:
			return 1
		}

		return nodes[a].State.Arrival.Compare(nodes[b].State.Arrival)
	})

	rank := make([]int, len(nodes))
	var i, old int
	for i, old = range order {
		rank[old] = i
	}

	a := &Arena{
		Nodes: make([]Node, len(nodes)),
		Out:   make([][]Edge, len(nodes)),
	}
	var e int
	for i, old = range order {
		nd := nodes[old]
		if nd.Pred >= 0 {
			nd.Pred = rank[nd.Pred]
		}
		a.Nodes[i] = nd
		edges := out[old]
		for e = range edges {
			edges[e].To = rank[edges[e].To]
		}
		a.Out[i] = edges
		if g.IsTerminal(nd.State) {
			a.Terminals = append(a.Terminals, i)
		}
	}

	return a
}

// traceNode rebuilds the discovery path of nodes[v].
func (g *Graph) traceNode(nodes []Node, v int) Trace {
	var legs []trip.Leg
	for at := v; nodes[at].Pred >= 0; at = nodes[at].Pred {
		legs = append(legs, *nodes[at].PredLeg)
	}
	slices.Reverse(legs)

	return g.TraceOf(nodes[v].State, legs)
}

// Trace rebuilds the discovery path of arena node v.
func (a *Arena) Trace(g *Graph, v int) Trace { return g.traceNode(a.Nodes, v) }
