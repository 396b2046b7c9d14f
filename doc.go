// SPDX-License-Identifier: MIT

// Package routesolver finds the cheapest multi-stop flight itinerary that
// honours a traveller's ordering and date constraints.
//
// 🚀 What is routesolver?
//
//	A small pipeline of focused packages:
//		• trip       – legs, stops, requests, itineraries, days and money
//		• legrepo    – session cache over a pricing source: one fetch per
//		               (origin, destination, day), retries, backoff
//		• planner    – which lookups a request needs, fetched with bounded
//		               concurrency
//		• routegraph – per-pair leg tables and the timed Held–Karp state space
//		• core, bfs  – stop-level graph and the breadth-first walk that
//		               checks every stop can be reached and can reach the end
//		• optimizer  – exact top-K DP, with branch-and-bound past a size limit
//		• solver     – the Session facade tying it together
//		• source     – static, JSON file, SQLite and rate-limited sources
//
// ✨ Guarantees
//
//   - Cheapest first – ties broken by total duration, then leg order
//   - Deterministic – same legs and request, same answer
//   - Infeasibility is an answer, not an error – with the deepest partial
//     route reached
//   - No logging in algorithms – trip, routegraph and optimizer are pure
//
// Quick example:
//
//	s := solver.New(source.NewStatic(legs...), solver.WithTopK(3))
//	res, err := s.Solve(ctx, req)
//	if err != nil {
//		return err // malformed request or cancellation
//	}
//	if best, ok := res.Best(); ok {
//		fmt.Println(best.Route(), best.TotalPrice)
//	}
//
// The routesolve command wraps a Session for request files; see
// cmd/routesolve.
package routesolver
