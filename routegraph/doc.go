// SPDX-License-Identifier: MIT

// Package routegraph turns a trip.Request and a pool of cached legs into
// the search space of the itinerary optimizer.
//
// Construction happens in two stages:
//
//  1. New builds one leg table per ordered stop pair (i, j) that may be
//     consecutive under the fixed/free ordering rules. Legs are filtered by
//     the departure window of the pair, the arrival window of j, the request
//     currency and the trip-duration budget, and are kept sorted by
//     trip.CompareLegs (departure first). A breadth-first reachability pass
//     over the stop-level pair graph then rejects requests whose origin has
//     no outgoing legs, or where some stop can never be reached or can never
//     reach the final destination.
//
//  2. Materialize expands the time-expanded Held–Karp state space: a node
//     is (stop, visited mask, arrival instant), plus the first departure when
//     a trip-duration budget is set. An edge (i, T, S) → (j, T', S ∪ {j})
//     exists iff some leg i→j departs no earlier than T + MinLayover, no
//     later than T + MaxLayover (when set), arrives at T' inside j's window
//     and keeps the trip inside its duration budget. Every edge strictly
//     increases the arrival instant, so ordering nodes by arrival is a
//     topological order.
//
// Successors is the shared transition generator: Materialize uses it to
// build the arena, and the optimizer's branch-and-bound mode uses it to
// explore lazily without materializing anything.
//
// Errors:
//
//	– trip.ErrInvalidRequest   if the request fails validation.
//	– ErrNoFeasibleGraph       (as *DeadEndError) if no itinerary can exist.
//	– ErrGraphTooLarge         if Materialize would exceed WithMaxNodes.
//
// The package performs no I/O and no logging; legs come from a Lookup,
// typically a *legrepo.Repository already warmed by the planner.
package routegraph
