// SPDX-License-Identifier: MIT

package optimizer

import (
	"context"

	"github.com/katalvlaran/routesolver/routegraph"
	"github.com/katalvlaran/routesolver/trip"
)

// runExact is the top-K Held–Karp DP over a topologically ordered arena.
//
// labels[u] holds the K best routes from the origin to node u. Relaxing
// an edge u→v extends each label of u by the edge's leg. Because nodes are
// visited in topological order, labels[u] is final when u is processed,
// and it is released afterwards unless u is terminal.
func runExact(ctx context.Context, g *routegraph.Graph, a *routegraph.Arena, opts Options, res *Result) error {
	var (
		k       = opts.TopK
		labels  = make([][]*label, len(a.Nodes))
		relaxed int64
		u       int
		e       routegraph.Edge
		l       *label
	)
	labels[0] = []*label{{}}

	for u = range a.Nodes {
		from := labels[u]
		if len(from) == 0 {
			continue
		}
		for _, e = range a.Out[u] {
			for _, l = range from {
				relaxed++
				if relaxed%int64(opts.CheckEvery) == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}

				cand := &label{price: l.price + e.Leg.Price, start: l.start, leg: e.Leg, parent: l}
				if l.leg == nil {
					cand.start = e.Leg.Departure
				}
				to := labels[e.To]
				if len(to) == k && cand.price > to[k-1].price {
					break // from is sorted by price; the rest cost at least as much
				}
				labels[e.To] = insertK(to, cand, k)
			}
		}
		if len(a.Out[u]) > 0 {
			labels[u] = nil
		}
	}

	var best []*label
	for _, u = range a.Terminals {
		for _, l = range labels[u] {
			best = insertK(best, l, k)
		}
	}

	res.Itineraries = make([]trip.Itinerary, 0, len(best))
	for _, l = range best {
		res.Itineraries = append(res.Itineraries, finish(g, l.legs()))
	}
	res.Stats.States = len(a.Nodes)
	res.Stats.Edges = a.Edges
	res.Stats.Relaxed = relaxed

	return nil
}
