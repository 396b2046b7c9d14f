// SPDX-License-Identifier: MIT

package planner

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/routesolver/legrepo"
	"github.com/katalvlaran/routesolver/logger"
	"github.com/katalvlaran/routesolver/trip"
)

// DefaultMaxConcurrent is the default number of queries in flight.
const DefaultMaxConcurrent = 4

// Query is one repository lookup: legs from Origin to Destination departing
// on Day.
type Query struct {
	Origin      string
	Destination string
	Day         trip.Day
}

// String formats the query like its cache key.
func (q Query) String() string { return legrepo.NewKey(q.Origin, q.Destination, q.Day).String() }

// Fetcher is the part of the leg repository the planner drives.
type Fetcher interface {
	LegsFor(ctx context.Context, origin, destination string, dr trip.DateRange) ([]trip.Leg, error)
}

// Summary reports the outcome of a Prefetch.
type Summary struct {
	Queries     int // dispatched queries
	Available   int // queries that returned legs
	Unavailable int // queries with no legs
	Legs        int // legs returned across all queries
	Elapsed     time.Duration
}

// Plan returns the deduplicated queries needed to build the route graph
// of req, ordered by day, then origin, then destination. An invalid
// request yields no queries.
//
// Complexity: O(n³ + q log q) for n stops and q queries.
func Plan(req *trip.Request) []Query {
	if req.Validate() != nil {
		return nil
	}

	var (
		n    = len(req.Stops)
		seen = make(map[legrepo.Key]struct{})
		out  []Query
		i, j int
		day  trip.Day
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if !req.CanFollow(i, j) {
				continue
			}
			for _, day = range req.LegWindow(i, j).Days() {
				k := legrepo.NewKey(req.Stops[i].Location, req.Stops[j].Location, day)
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				out = append(out, Query{Origin: k.Origin, Destination: k.Destination, Day: k.Day})
			}
		}
	}
	slices.SortFunc(out, func(a, b Query) int {
		if c := cmp.Compare(a.Day, b.Day); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Origin, b.Origin); c != 0 {
			return c
		}

		return cmp.Compare(a.Destination, b.Destination)
	})

	return out
}

// Option configures a Planner.
type Option func(*Planner)

// WithMaxConcurrent caps the queries in flight. It panics if n < 1.
func WithMaxConcurrent(n int) Option {
	if n < 1 {
		panic("planner: WithMaxConcurrent(<1)")
	}

	return func(p *Planner) { p.maxConcurrent = n }
}

// WithLogger sets the logger. It panics on nil.
func WithLogger(l logger.Logger) Option {
	if l == nil {
		panic("planner: WithLogger(nil)")
	}

	return func(p *Planner) { p.log = l }
}

// Planner dispatches queries to a Fetcher.
type Planner struct {
	repo          Fetcher
	maxConcurrent int
	log           logger.Logger
}

// New returns a Planner over repo.
func New(repo Fetcher, opts ...Option) *Planner {
	p := &Planner{
		repo:          repo,
		maxConcurrent: DefaultMaxConcurrent,
		log:           logger.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Prefetch runs every query against the repository with at most
// MaxConcurrent in flight. legrepo.ErrDataUnavailable answers are counted;
// other repository errors are logged and counted as unavailable.
//
// Errors: ctx.Err() if ctx is cancelled before every query completed; the
// Summary then covers the queries that did complete.
func (p *Planner) Prefetch(ctx context.Context, queries []Query) (Summary, error) {
	var (
		start       = time.Now()
		available   atomic.Int64
		unavailable atomic.Int64
		legs        atomic.Int64
		dispatched  int
		q           Query
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrent)
	for _, q = range queries {
		if gctx.Err() != nil {
			break
		}
		dispatched++
		query := q
		g.Go(func() error {
			got, err := p.repo.LegsFor(gctx, query.Origin, query.Destination, trip.SingleDay(query.Day))
			switch {
			case err == nil:
				available.Add(1)
				legs.Add(int64(len(got)))
			case gctx.Err() != nil:
				return gctx.Err()
			case errors.Is(err, legrepo.ErrDataUnavailable):
				unavailable.Add(1)
			default:
				unavailable.Add(1)
				p.log.Warn("prefetch query failed", "query", query.String(), "error", err)
			}

			return nil
		})
	}
	waitErr := g.Wait()

	sum := Summary{
		Queries:     dispatched,
		Available:   int(available.Load()),
		Unavailable: int(unavailable.Load()),
		Legs:        int(legs.Load()),
		Elapsed:     time.Since(start),
	}
	if err := ctx.Err(); err != nil {
		p.log.Info("prefetch cancelled", "dispatched", dispatched, "planned", len(queries))
		return sum, err
	}
	if waitErr != nil {
		return sum, fmt.Errorf("planner: prefetch: %w", waitErr)
	}
	p.log.Debug("prefetch complete",
		"queries", sum.Queries, "available", sum.Available, "unavailable", sum.Unavailable,
		"legs", sum.Legs, "elapsed", sum.Elapsed)

	return sum, nil
}
