// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrGraphNil is returned when the graph pointer is nil.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrStartVertexNotFound is returned when the start vertex is missing.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrWeightedGraph is returned when BFS is run on a weighted graph.
	ErrWeightedGraph = errors.New("bfs: weighted graphs not supported")

	// ErrOptionViolation is returned when an Option has an invalid value.
	ErrOptionViolation = errors.New("bfs: option violation")

	// ErrNeighbors wraps a failure to list a vertex's neighbors.
	ErrNeighbors = errors.New("bfs: neighbor lookup failed")

	// ErrNotReached is returned by PathTo for a vertex the walk never visited.
	ErrNotReached = errors.New("bfs: vertex not reached")
)

// Options holds the traversal configuration.
type Options struct {
	// Ctx aborts the walk when cancelled.
	Ctx context.Context

	// OnVisit runs once per dequeued vertex; a non-nil error aborts BFS.
	OnVisit func(id string, depth int) error

	// MaxDepth stops expansion beyond this many hops; 0 means no limit.
	MaxDepth int

	// FilterNeighbor skips the edge curr->nbr when it returns false.
	FilterNeighbor func(curr, nbr string) bool

	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns a background context, no hooks, no depth limit
// and no filter.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit sets the visit hook.
func WithOnVisit(fn func(id string, depth int) error) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// WithMaxDepth limits expansion to d hops. A negative d is reported as
// ErrOptionViolation by BFS.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth %d < 0", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterNeighbor sets the edge filter.
func WithFilterNeighbor(fn func(curr, nbr string) bool) Option {
	return func(o *Options) { o.FilterNeighbor = fn }
}

// Result is the outcome of one traversal.
type Result struct {
	// Order lists vertices in visit order.
	Order []string

	// Depth maps each reached vertex to its hop distance from the start.
	Depth map[string]int

	// Parent maps each reached vertex except the start to its predecessor.
	Parent map[string]string
}

// Reached reports whether id was visited.
func (r *Result) Reached(id string) bool {
	_, ok := r.Depth[id]

	return ok
}

// PathTo returns the vertex sequence from the start to dest.
// It returns ErrNotReached if dest was never visited.
func (r *Result) PathTo(dest string) ([]string, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: %q", ErrNotReached, dest)
	}
	var path []string
	for cur := dest; ; {
		path = append(path, cur)
		p, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
