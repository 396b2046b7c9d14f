// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over an unweighted core.Graph,
// returning hop distances, parent links and visit order.
//
// The route graph runs it twice per request: forward from the origin and
// over the transposed stop graph from the final stop. A stop missing from
// either Depth map can never sit on a complete itinerary.
//
// Determinism
//
//	core.Graph.NeighborIDs is sorted and neighbors are enqueued in that
//	order, so Order is reproducible.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E log d) for out-degree d
//   - Memory: O(V)
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if the start vertex does not exist.
//   - ErrWeightedGraph        if run on a weighted graph.
//   - ErrOptionViolation      if an Option is invalid (e.g. negative MaxDepth).
//   - ErrNeighbors            if core.NeighborIDs fails for any vertex.
//   - ErrNotReached           from Result.PathTo for an unvisited vertex.
//   - Wrapped OnVisit hook errors and context errors.
package bfs
