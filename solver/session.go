// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/routesolver/legrepo"
	"github.com/katalvlaran/routesolver/logger"
	"github.com/katalvlaran/routesolver/metrics"
	"github.com/katalvlaran/routesolver/optimizer"
	"github.com/katalvlaran/routesolver/planner"
	"github.com/katalvlaran/routesolver/routegraph"
	"github.com/katalvlaran/routesolver/trip"
)

// Session solves requests against one leg cache.
type Session struct {
	id        string
	repo      *legrepo.Repository
	planner   *planner.Planner
	search    optimizer.Options
	graphOpts []routegraph.Option
	log       logger.Logger
	metrics   *metrics.Metrics
}

// New creates a Session fetching from src. A nil src is allowed when the
// cache is filled with Ingest.
func New(src legrepo.Source, opts ...Option) *Session {
	st := defaultSettings()
	for _, opt := range opts {
		opt(&st)
	}

	log := st.log.With("session", st.id)
	repoOpts := append([]legrepo.Option{
		legrepo.WithLogger(log),
		legrepo.WithMetrics(st.metrics),
	}, st.repoOpts...)

	repo := legrepo.New(src, repoOpts...)

	return &Session{
		id:        st.id,
		repo:      repo,
		planner:   planner.New(repo, planner.WithMaxConcurrent(st.maxConcurrent), planner.WithLogger(log)),
		search:    st.search,
		graphOpts: st.graphOpts,
		log:       log,
		metrics:   st.metrics,
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Repository returns the session cache.
func (s *Session) Repository() *legrepo.Repository { return s.repo }

// Ingest pre-warms the cache; see legrepo.Repository.Ingest.
func (s *Session) Ingest(legs []trip.Leg) int { return s.repo.Ingest(legs) }

// Solve finds the cheapest itineraries for req.
//
// Errors:
//   - trip.ErrInvalidRequest (wrapped) for a malformed request;
//   - ctx.Err() when cancelled.
//
// Infeasibility is not an error: the Result has StatusInfeasible and a
// Report.
func (s *Session) Solve(ctx context.Context, req *trip.Request) (*Result, error) {
	start := time.Now()
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", trip.ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	log := s.log.With("route", routeOf(req))

	res := &Result{SessionID: s.id, Mode: s.search.Mode}
	queries := planner.Plan(req)
	sum, err := s.planner.Prefetch(ctx, queries)
	res.Prefetch = sum
	if err != nil {
		log.Info("solve cancelled during prefetch", "error", err)
		return nil, err
	}

	g, err := routegraph.New(req, s.repo, s.graphOpts...)
	if err != nil {
		var dead *routegraph.DeadEndError
		if !errors.As(err, &dead) {
			return nil, err
		}
		return s.infeasible(log, res, start, KindNoFeasibleGraph, err, dead.Deepest), nil
	}

	out, err := optimizer.Optimize(ctx, g, s.search)
	if err != nil {
		var inf *optimizer.InfeasibleError
		if !errors.As(err, &inf) {
			log.Info("solve cancelled during search", "error", err)
			return nil, err
		}
		return s.infeasible(log, res, start, KindInfeasible, err, inf.Partial), nil
	}

	res.Status = StatusOK
	res.Itineraries = out.Itineraries
	res.Mode = out.Mode
	res.Search = out.Stats
	res.Elapsed = time.Since(start)
	s.metrics.Relaxed(int(out.Stats.Relaxed))
	s.metrics.ObserveSolve(string(res.Status), res.Elapsed)

	best := out.Itineraries[0]
	log.Info("solve finished",
		"status", res.Status,
		"mode", out.Mode.String(),
		"fell_back", out.Stats.FellBack,
		"itineraries", len(out.Itineraries),
		"best_price", best.TotalPrice.String(),
		"currency", best.Currency,
		"queries", sum.Queries,
		"elapsed", res.Elapsed)

	return res, nil
}

func (s *Session) infeasible(log logger.Logger, res *Result, start time.Time, kind string, cause error, partial routegraph.Trace) *Result {
	res.Status = StatusInfeasible
	res.Report = &Report{Kind: kind, Message: cause.Error(), Partial: partial, Cause: cause}
	res.Elapsed = time.Since(start)
	s.metrics.ObserveSolve(string(res.Status), res.Elapsed)
	log.Info("solve infeasible",
		"kind", kind,
		"stuck_at", partial.Location,
		"visited", partial.Visited,
		"queries", res.Prefetch.Queries,
		"unavailable", res.Prefetch.Unavailable,
		"elapsed", res.Elapsed)

	return res
}

func routeOf(req *trip.Request) string {
	out := req.Stops[0].Location
	for _, st := range req.Stops[1:] {
		out += "→" + st.Location
	}

	return out
}
