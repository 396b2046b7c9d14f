// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"sort"
)

// AddVertex inserts id. Re-adding an existing vertex is a no-op.
//
// Complexity: O(1).
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	g.muVert.Lock()
	defer g.muVert.Unlock()

	g.vertices[id] = struct{}{}

	return nil
}

// HasVertex reports whether id is present.
func (g *Graph) HasVertex(id string) bool {
	if id == "" {
		return false
	}
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	_, ok := g.vertices[id]

	return ok
}

// AddEdge connects from and to, adding missing endpoints first. Undirected
// edges are mirrored in the adjacency map but counted once.
//
// Errors: ErrEmptyVertexID, ErrBadWeight, ErrLoopNotAllowed, ErrDuplicateEdge.
//
// Complexity: O(1).
func (g *Graph) AddEdge(from, to string, weight int64) error {
	if from == "" || to == "" {
		return ErrEmptyVertexID
	}
	if !g.weighted && weight != 0 {
		return fmt.Errorf("%w: %d on unweighted graph", ErrBadWeight, weight)
	}
	if from == to && !g.allowLoops {
		return fmt.Errorf("%w: %s", ErrLoopNotAllowed, from)
	}

	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, ok := g.adjacency[from][to]; ok {
		return fmt.Errorf("%w: %s->%s", ErrDuplicateEdge, from, to)
	}
	g.vertices[from] = struct{}{}
	g.vertices[to] = struct{}{}
	g.link(from, to, weight)
	if !g.directed {
		g.link(to, from, weight)
	}
	g.edgeCount++

	return nil
}

// link must be called with muEdgeAdj held.
func (g *Graph) link(from, to string, weight int64) {
	row, ok := g.adjacency[from]
	if !ok {
		row = make(map[string]int64)
		g.adjacency[from] = row
	}
	row[to] = weight
}

// HasEdge reports whether an edge from -> to exists. On undirected graphs
// the order of the endpoints does not matter.
func (g *Graph) HasEdge(from, to string) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	_, ok := g.adjacency[from][to]

	return ok
}

// NeighborIDs returns the sorted IDs reachable from id over one edge.
// For directed graphs only outgoing neighbors are included.
//
// Complexity: O(k log k) for k neighbors.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	if !g.HasVertex(id) {
		return nil, fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	row := g.adjacency[id]
	ids := make([]string, 0, len(row))
	var to string
	for to = range row {
		ids = append(ids, to)
	}
	sort.Strings(ids)

	return ids, nil
}

// Vertices returns all vertex IDs in ascending order.
//
// Complexity: O(V log V).
func (g *Graph) Vertices() []string {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	ids := make([]string, 0, len(g.vertices))
	var id string
	for id = range g.vertices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.vertices)
}

// EdgeCount returns the number of edges; an undirected edge counts once.
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return g.edgeCount
}

// Edges returns every edge sorted by (From, To).
//
// Complexity: O(E log E).
func (g *Graph) Edges() []Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]Edge, 0, g.edgeCount)
	var (
		from, to string
		row      map[string]int64
		w        int64
	)
	for from, row = range g.adjacency {
		for to, w = range row {
			if !g.directed && to < from {
				continue
			}
			out = append(out, Edge{From: from, To: to, Weight: w})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})

	return out
}

// Transpose returns a new graph with the same flags and vertices and every
// directed edge reversed. An undirected graph is returned as a copy.
//
// Complexity: O(V + E).
func (g *Graph) Transpose() *Graph {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	t := &Graph{
		directed:   g.directed,
		weighted:   g.weighted,
		allowLoops: g.allowLoops,
		vertices:   make(map[string]struct{}, len(g.vertices)),
		adjacency:  make(map[string]map[string]int64, len(g.adjacency)),
		edgeCount:  g.edgeCount,
	}
	var (
		id, from, to string
		row          map[string]int64
		w            int64
	)
	for id = range g.vertices {
		t.vertices[id] = struct{}{}
	}
	for from, row = range g.adjacency {
		for to, w = range row {
			t.link(to, from, w)
		}
	}

	return t
}
