// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"sync"
)

// Sentinel errors returned by Graph methods.
var (
	// ErrEmptyVertexID indicates that a vertex ID is the empty string.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a missing vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrBadWeight indicates a non-zero weight on an unweighted graph.
	ErrBadWeight = errors.New("core: bad weight")

	// ErrLoopNotAllowed indicates a self-loop on a graph without WithLoops.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrDuplicateEdge indicates the edge between the endpoints already exists.
	ErrDuplicateEdge = errors.New("core: duplicate edge")
)

// GraphOption configures a Graph before any vertices or edges are added.
type GraphOption func(g *Graph)

// WithDirected sets whether edges are one-way (true) or mirrored (false).
func WithDirected(directed bool) GraphOption {
	return func(g *Graph) { g.directed = directed }
}

// WithWeighted permits non-zero edge weights.
func WithWeighted() GraphOption {
	return func(g *Graph) { g.weighted = true }
}

// WithLoops permits self-loops.
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Edge is one stored connection. For undirected graphs From <= To.
type Edge struct {
	From   string
	To     string
	Weight int64
}

// Graph is a thread-safe adjacency-map graph.
//
// Locks:
//   - muVert guards vertices.
//   - muEdgeAdj guards adjacency and edgeCount.
//
// Lock order is always muVert, then muEdgeAdj.
type Graph struct {
	muVert    sync.RWMutex
	muEdgeAdj sync.RWMutex

	directed   bool
	weighted   bool
	allowLoops bool

	vertices  map[string]struct{}
	adjacency map[string]map[string]int64 // from -> to -> weight
	edgeCount int
}

// NewGraph returns an empty Graph. Graphs are undirected and unweighted
// unless options say otherwise.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[string]struct{}),
		adjacency: make(map[string]map[string]int64),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }

// Weighted reports whether non-zero weights are permitted.
func (g *Graph) Weighted() bool { return g.weighted }

// Looped reports whether self-loops are permitted.
func (g *Graph) Looped() bool { return g.allowLoops }
