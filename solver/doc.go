// SPDX-License-Identifier: MIT

// Package solver is the request/response facade of routesolver.
//
// A Session owns one leg repository (the session cache) and runs the
// pipeline for each request:
//
//	trip.Request ─ planner.Plan ─ planner.Prefetch ─ legrepo.Repository
//	             ─ routegraph.New ─ optimizer.Optimize ─ Result
//
// Solve returns an error only for malformed requests and cancellation.
// Every other outcome, including "no itinerary exists", is a Result whose
// Status says which: StatusOK with 1..TopK itineraries ordered by
// trip.Compare, or StatusInfeasible with a Report naming the kind of
// failure and the deepest partial route reached.
//
// Sessions are safe for concurrent use; concurrent solves share the cache,
// so each (origin, destination, day) is fetched at most once per session.
package solver
