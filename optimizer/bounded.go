// SPDX-License-Identifier: MIT

package optimizer

import (
	"context"
	"slices"
	"sort"

	"github.com/katalvlaran/routesolver/routegraph"
	"github.com/katalvlaran/routesolver/trip"
)

// bbEngine holds the branch-and-bound search state.
type bbEngine struct {
	ctx        context.Context
	g          *routegraph.Graph
	k          int
	checkEvery int64
	last       int

	// minOut[i] is the cheapest leg leaving stop i; hasOut[i] is false when
	// stop i has none, which makes any route still needing it infeasible.
	minOut []trip.Money
	hasOut []bool

	path []trip.Leg // legs of the current branch

	best []trip.Itinerary // incumbents sorted by trip.Compare, at most k

	deepest     routegraph.State
	deepestPath []trip.Leg

	steps  int64
	pruned int64
	err    error
}

// branch is one successor of the current state.
type branch struct {
	next routegraph.State
	leg  *trip.Leg
}

func runBounded(ctx context.Context, g *routegraph.Graph, opts Options, res *Result) error {
	n := g.Stops()
	e := &bbEngine{
		ctx:        ctx,
		g:          g,
		k:          opts.TopK,
		checkEvery: int64(opts.CheckEvery),
		last:       n - 1,
		minOut:     make([]trip.Money, n),
		hasOut:     make([]bool, n),
		path:       make([]trip.Leg, 0, n),
		deepest:    g.Origin(),
	}
	var i int
	for i = 0; i < n; i++ {
		e.minOut[i], e.hasOut[i] = g.MinOut(i)
	}

	e.dfs(g.Origin(), 0)
	res.Stats.States = int(e.steps)
	res.Stats.Relaxed = e.steps
	res.Stats.Pruned = e.pruned
	if e.err != nil {
		return e.err
	}
	if len(e.best) == 0 {
		return &InfeasibleError{Partial: g.TraceOf(e.deepest, e.deepestPath)}
	}
	res.Itineraries = e.best

	return nil
}

// bound returns an admissible lower bound on the price of any complete
// itinerary extending the current branch, and false if none can exist.
func (e *bbEngine) bound(s routegraph.State, price trip.Money) (trip.Money, bool) {
	if e.g.IsTerminal(s) {
		return price, true
	}
	if !e.hasOut[s.Stop] {
		return 0, false
	}
	lb := price + e.minOut[s.Stop]
	var j int
	for j = 1; j < e.last; j++ {
		if s.Visited&(uint64(1)<<uint(j)) != 0 {
			continue
		}
		if !e.hasOut[j] {
			return 0, false
		}
		lb += e.minOut[j]
	}

	return lb, true
}

// cut reports whether a branch with lower bound lb cannot enter the top K.
// Equal prices are kept: they may still win on duration.
func (e *bbEngine) cut(lb trip.Money) bool {
	return len(e.best) == e.k && lb > e.best[e.k-1].TotalPrice
}

func (e *bbEngine) dfs(s routegraph.State, price trip.Money) {
	e.steps++
	if e.steps%e.checkEvery == 0 {
		if err := e.ctx.Err(); err != nil {
			e.err = err
			return
		}
	}
	if s.Depth > e.deepest.Depth {
		e.deepest = s
		e.deepestPath = slices.Clone(e.path)
	}
	if e.g.IsTerminal(s) {
		e.offer(finish(e.g, e.path))
		return
	}
	if lb, ok := e.bound(s, price); !ok || e.cut(lb) {
		e.pruned++
		return
	}

	var next []branch
	e.g.Successors(s, func(ns routegraph.State, leg *trip.Leg) bool {
		next = append(next, branch{next: ns, leg: leg})
		return true
	})
	sort.SliceStable(next, func(a, b int) bool {
		la, lb := next[a].leg, next[b].leg
		if la.Price != lb.Price {
			return la.Price < lb.Price
		}

		return trip.CompareLegs(*la, *lb) < 0
	})

	var br branch
	for _, br = range next {
		if e.cut(price + br.leg.Price) {
			e.pruned++
			break // branches are sorted by price
		}
		e.path = append(e.path, *br.leg)
		e.dfs(br.next, price+br.leg.Price)
		e.path = e.path[:len(e.path)-1]
		if e.err != nil {
			return
		}
	}
}

// offer records a complete itinerary if it ranks among the k best.
func (e *bbEngine) offer(it trip.Itinerary) {
	i := sort.Search(len(e.best), func(i int) bool { return trip.Compare(it, e.best[i]) < 0 })
	if i >= e.k {
		return
	}
	e.best = slices.Insert(e.best, i, it)
	if len(e.best) > e.k {
		e.best = e.best[:e.k]
	}
}
