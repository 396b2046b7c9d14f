// SPDX-License-Identifier: MIT

// Package core provides the thread-safe in-memory Graph the solver uses for
// stop-level connectivity: one vertex per stop, one edge per stop pair that
// carries at least one usable leg.
//
// The Graph G = (V,E) supports:
//
//   - Directed vs. undirected edges (WithDirected)
//   - Weighted vs. unweighted edges (WithWeighted)
//   - Self-loops (WithLoops)
//   - Constant-time edge lookups via nested maps: adjacency[from][to] = weight
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency
//     (muEdgeAdj)
//
// Parallel edges are never stored: a second AddEdge between the same
// endpoints returns ErrDuplicateEdge.
//
// Determinism:
//
//	Vertices, Edges and NeighborIDs return sorted results, so traversals
//	seeded from them are reproducible.
//
// Errors:
//
//   - ErrEmptyVertexID  if a vertex ID is "".
//   - ErrVertexNotFound if a query names an unknown vertex.
//   - ErrBadWeight      if an unweighted graph receives weight != 0.
//   - ErrLoopNotAllowed if from == to without WithLoops.
//   - ErrDuplicateEdge  if the edge already exists.
package core
