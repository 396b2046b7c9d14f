// SPDX-License-Identifier: MIT

package optimizer

import (
	"context"
	"errors"
	"strings"

	"github.com/katalvlaran/routesolver/routegraph"
	"github.com/katalvlaran/routesolver/trip"
)

// Stats describes the work done by one Optimize call.
type Stats struct {
	States   int   // arena nodes (Exact) or expanded states (Bounded)
	Edges    int   // arena edges; zero in Bounded mode
	Relaxed  int64 // label relaxations (Exact) or visited states (Bounded)
	Pruned   int64 // branches cut by the lower bound (Bounded)
	FellBack bool  // Exact was requested but Bounded ran
}

// Result is the outcome of a successful search.
type Result struct {
	// Itineraries holds 1..TopK itineraries ordered by trip.Compare.
	Itineraries []trip.Itinerary
	// Mode is the mode that produced Itineraries.
	Mode  Mode
	Stats Stats
}

// Optimize returns the TopK best itineraries of g.
//
// Errors:
//   - ErrNilGraph, or an options error (ErrBadTopK, ErrBadMode,
//     ErrBadCheckEvery);
//   - *InfeasibleError (matching ErrInfeasible) when no itinerary exists;
//   - ctx.Err() when cancelled.
func Optimize(ctx context.Context, g *routegraph.Graph, opts Options) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	res := &Result{Mode: opts.Mode}
	if res.Mode == Exact && g.Stops() > opts.MaxExactStops {
		res.Mode, res.Stats.FellBack = Bounded, true
	}

	var err error
	if res.Mode == Exact {
		var arena *routegraph.Arena
		arena, err = g.Materialize(ctx)
		switch {
		case err == nil:
			err = runExact(ctx, g, arena, opts, res)
		case errors.Is(err, routegraph.ErrGraphTooLarge):
			res.Mode, res.Stats.FellBack = Bounded, true
		}
	}
	if res.Mode == Bounded {
		err = runBounded(ctx, g, opts, res)
	}
	if err != nil {
		var dead *routegraph.DeadEndError
		if errors.As(err, &dead) {
			return nil, &InfeasibleError{Cause: dead, Partial: dead.Deepest}
		}

		return nil, err
	}

	return res, nil
}

// finish turns legs into an itinerary carrying the request currency.
func finish(g *routegraph.Graph, legs []trip.Leg) trip.Itinerary {
	it := trip.NewItinerary(legs)
	if c := g.Request().Currency; c != "" {
		it.Currency = strings.ToUpper(c)
	}

	return it
}
