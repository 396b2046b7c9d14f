// SPDX-License-Identifier: MIT

// Package optimizer finds the K cheapest itineraries in a routegraph.Graph.
//
// Two search modes share one ordering: total price ascending, then total
// duration (first departure to final arrival) ascending, then the leg
// sequences compared leg by leg with trip.CompareLegs. Both modes are exact
// and return the same itineraries for the same graph.
//
// Exact mode is a time-window-constrained Held–Karp dynamic program over the
// materialized state arena. Arena nodes are processed in topological order
// and every node keeps its K best partial routes ("labels"). The label order
// is preserved under extension by a common suffix, so the K best complete
// itineraries are always among the K best labels of each terminal node.
//
// Bounded mode is a depth-first branch-and-bound over Graph.Successors that
// never materializes the arena. Branching is by leg price, then leg order.
// The lower bound of a partial route is its price, plus the cheapest leg out
// of the current stop, plus the cheapest leg out of every unvisited
// non-final stop; a branch is cut when that bound exceeds the price of the
// K-th best complete itinerary found so far.
//
// Exact mode falls back to Bounded when the request has more than
// Options.MaxExactStops stops, or when the arena would exceed the graph's
// node limit. Result.Mode reports the mode that produced the answer.
//
// Complexity:
//
//	– Exact:   O((V + E·K)·log K) time, O(V·K + E) memory for V arena states and E edges.
//	– Bounded: exponential in the worst case; O(n) stack depth for n stops.
//
// Errors:
//
//	– ErrNilGraph, ErrBadTopK, ErrBadMode, ErrBadCheckEvery for bad input.
//	– *InfeasibleError (matching ErrInfeasible) when no itinerary exists.
//	– ctx.Err() when cancelled; the context is checked every
//	  Options.CheckEvery relaxations.
package optimizer
