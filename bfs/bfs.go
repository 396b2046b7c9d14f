// SPDX-License-Identifier: MIT

package bfs

import (
	"fmt"

	"github.com/katalvlaran/routesolver/core"
)

type queueItem struct {
	id    string
	depth int
}

type walker struct {
	g     *core.Graph
	opts  Options
	queue []queueItem
	res   *Result
}

// BFS walks g from start in non-decreasing hop distance.
//
// Complexity: O(V + E log d).
func BFS(g *core.Graph, start string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if g.Weighted() {
		return nil, ErrWeightedGraph
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartVertexNotFound, start)
	}

	w := &walker{
		g:    g,
		opts: o,
		res: &Result{
			Depth:  map[string]int{start: 0},
			Parent: make(map[string]string),
		},
	}
	w.queue = append(w.queue, queueItem{id: start})
	if err := w.loop(); err != nil {
		return w.res, err
	}

	return w.res, nil
}

func (w *walker) loop() error {
	var it queueItem
	for len(w.queue) > 0 {
		if err := w.opts.Ctx.Err(); err != nil {
			return err
		}
		it, w.queue = w.queue[0], w.queue[1:]
		w.res.Order = append(w.res.Order, it.id)
		if w.opts.OnVisit != nil {
			if err := w.opts.OnVisit(it.id, it.depth); err != nil {
				return fmt.Errorf("bfs: visit %q: %w", it.id, err)
			}
		}
		if w.opts.MaxDepth > 0 && it.depth >= w.opts.MaxDepth {
			continue
		}
		if err := w.enqueueNeighbors(it); err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) enqueueNeighbors(it queueItem) error {
	nbrs, err := w.g.NeighborIDs(it.id)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrNeighbors, it.id, err)
	}
	var nbr string
	for _, nbr = range nbrs {
		if _, seen := w.res.Depth[nbr]; seen {
			continue
		}
		if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(it.id, nbr) {
			continue
		}
		w.res.Depth[nbr] = it.depth + 1
		w.res.Parent[nbr] = it.id
		w.queue = append(w.queue, queueItem{id: nbr, depth: it.depth + 1})
	}

	return nil
}
