// SPDX-License-Identifier: MIT

package legrepo

import (
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/katalvlaran/routesolver/logger"
	"github.com/katalvlaran/routesolver/metrics"
)

// Defaults applied by New.
const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultBackoff      = 100 * time.Millisecond
	DefaultMaxBackoff   = 2 * time.Second
)

// Option configures a Repository. Option constructors panic on meaningless
// arguments; the repository itself never panics.
type Option func(*Repository)

// WithFetchTimeout bounds every Source call. Zero disables the timeout.
func WithFetchTimeout(d time.Duration) Option {
	if d < 0 {
		panic("legrepo: WithFetchTimeout(negative)")
	}

	return func(r *Repository) { r.fetchTimeout = d }
}

// WithRetries retries retryable failures up to n times, sleeping base,
// 2·base, 4·base, … (capped at DefaultMaxBackoff) between attempts.
func WithRetries(n int, base time.Duration) Option {
	if n < 0 || base < 0 {
		panic("legrepo: WithRetries(negative)")
	}

	return func(r *Repository) {
		r.maxRetries = n
		r.backoff = base
	}
}

// WithMaxBackoff caps the sleep between retries.
func WithMaxBackoff(d time.Duration) Option {
	if d <= 0 {
		panic("legrepo: WithMaxBackoff(non-positive)")
	}

	return func(r *Repository) { r.maxBackoff = d }
}

// WithMaxInFlight caps concurrent Source calls at n.
func WithMaxInFlight(n int) Option {
	if n < 1 {
		panic("legrepo: WithMaxInFlight(<1)")
	}

	return func(r *Repository) { r.sem = semaphore.NewWeighted(int64(n)) }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	if l == nil {
		panic("legrepo: WithLogger(nil)")
	}

	return func(r *Repository) { r.log = l }
}

// WithMetrics records fetch and cache metrics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Repository) { r.metrics = m }
}
