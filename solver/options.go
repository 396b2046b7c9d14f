// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/google/uuid"

	"github.com/katalvlaran/routesolver/config"
	"github.com/katalvlaran/routesolver/legrepo"
	"github.com/katalvlaran/routesolver/logger"
	"github.com/katalvlaran/routesolver/metrics"
	"github.com/katalvlaran/routesolver/optimizer"
	"github.com/katalvlaran/routesolver/routegraph"
)

// settings collects Option values before the Session is assembled.
type settings struct {
	id            string
	search        optimizer.Options
	maxConcurrent int
	graphOpts     []routegraph.Option
	repoOpts      []legrepo.Option
	log           logger.Logger
	metrics       *metrics.Metrics
}

func defaultSettings() settings {
	return settings{
		id:            uuid.NewString(),
		search:        optimizer.DefaultOptions(),
		maxConcurrent: 4,
		log:           logger.NewNop(),
	}
}

// Option configures a Session. Option constructors panic on meaningless
// arguments; Solve never panics.
type Option func(*settings)

// WithTopK returns the k best itineraries instead of one.
func WithTopK(k int) Option {
	if k < 1 {
		panic("solver: WithTopK(<1)")
	}

	return func(s *settings) { s.search.TopK = k }
}

// WithMaxConcurrentFetches caps the prefetch queries in flight.
func WithMaxConcurrentFetches(n int) Option {
	if n < 1 {
		panic("solver: WithMaxConcurrentFetches(<1)")
	}

	return func(s *settings) { s.maxConcurrent = n }
}

// WithSearchMode selects Exact (default) or Bounded search.
func WithSearchMode(m optimizer.Mode) Option {
	if m != optimizer.Exact && m != optimizer.Bounded {
		panic("solver: WithSearchMode(unknown mode)")
	}

	return func(s *settings) { s.search.Mode = m }
}

// WithMaxExactStops sets the stop count above which Exact falls back to
// Bounded.
func WithMaxExactStops(n int) Option {
	if n < 2 {
		panic("solver: WithMaxExactStops(<2)")
	}

	return func(s *settings) { s.search.MaxExactStops = n }
}

// WithMaxNodes caps the materialized state arena; past it Exact falls back
// to Bounded.
func WithMaxNodes(n int) Option {
	opt := routegraph.WithMaxNodes(n)

	return func(s *settings) { s.graphOpts = append(s.graphOpts, opt) }
}

// WithCheckEvery sets how many relaxations pass between cancellation checks.
func WithCheckEvery(n int) Option {
	if n < 1 {
		panic("solver: WithCheckEvery(<1)")
	}

	return func(s *settings) { s.search.CheckEvery = n }
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	if id == "" {
		panic("solver: WithSessionID(empty)")
	}

	return func(s *settings) { s.id = id }
}

// WithLogger sets the logger; the session adds its id as "session".
func WithLogger(l logger.Logger) Option {
	if l == nil {
		panic("solver: WithLogger(nil)")
	}

	return func(s *settings) { s.log = l }
}

// WithMetrics records fetch, search and solve metrics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithRepositoryOptions passes fetch policy options to the session's
// legrepo.Repository.
func WithRepositoryOptions(opts ...legrepo.Option) Option {
	return func(s *settings) { s.repoOpts = append(s.repoOpts, opts...) }
}

// ConfigOptions translates a loaded configuration into options.
func ConfigOptions(cfg *config.Config) ([]Option, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := optimizer.ParseMode(cfg.SearchMode)
	if err != nil {
		return nil, err
	}

	return []Option{
		WithTopK(cfg.TopK),
		WithMaxConcurrentFetches(cfg.MaxConcurrentFetches),
		WithSearchMode(mode),
		WithMaxExactStops(cfg.MaxExactStops),
		WithMaxNodes(cfg.MaxNodes),
		WithRepositoryOptions(
			legrepo.WithFetchTimeout(cfg.FetchTimeout),
			legrepo.WithRetries(cfg.FetchRetries, cfg.RetryBackoff),
		),
	}, nil
}
