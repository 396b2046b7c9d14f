// SPDX-License-Identifier: MIT

// Package metrics holds the prometheus instruments of the solver.
//
// Every method is nil-safe: a nil *Metrics records nothing, so library
// callers that do not care about metrics pass nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes used as the "outcome" label.
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeTimeout     = "timeout"
	OutcomeFailed      = "failed"
	OutcomeCanceled    = "canceled"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	Fetches       *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	FetchRetries  prometheus.Counter
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
	InFlight      prometheus.Gauge
	StatesRelaxed prometheus.Counter
	Solves        *prometheus.CounterVec
	SolveDuration prometheus.Histogram
}

// New registers the solver metrics on reg under namespace.
// Passing prometheus.DefaultRegisterer exposes them via promhttp.Handler.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Fetches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leg_fetches_total",
			Help:      "External leg fetches by outcome",
		}, []string{"outcome"}),
		FetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "leg_fetch_duration_seconds",
			Help:      "Latency of external leg fetches, retries included",
			Buckets:   prometheus.DefBuckets,
		}),
		FetchRetries: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leg_fetch_retries_total",
			Help:      "Retries of failed external leg fetches",
		}),
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leg_cache_hits_total",
			Help:      "Leg lookups served from the session cache",
		}),
		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leg_cache_misses_total",
			Help:      "Leg lookups that required an external fetch",
		}),
		InFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "leg_fetches_in_flight",
			Help:      "External leg fetches currently running",
		}),
		StatesRelaxed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "optimizer_states_relaxed_total",
			Help:      "Search states relaxed or expanded by the optimizer",
		}),
		Solves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Completed solves by status",
		}, []string{"status"}),
		SolveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "End-to-end solve latency",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// ObserveFetch records one external fetch.
func (m *Metrics) ObserveFetch(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(outcome).Inc()
	m.FetchDuration.Observe(d.Seconds())
}

// Retry records one retry of an external fetch.
func (m *Metrics) Retry() {
	if m == nil {
		return
	}
	m.FetchRetries.Inc()
}

// CacheHit records a lookup served from cache.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// CacheMiss records a lookup that needed a fetch.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}

// FetchStarted increments the in-flight gauge; call the returned func when done.
func (m *Metrics) FetchStarted() func() {
	if m == nil {
		return func() {}
	}
	m.InFlight.Inc()

	return m.InFlight.Dec
}

// Relaxed adds n optimizer state relaxations.
func (m *Metrics) Relaxed(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.StatesRelaxed.Add(float64(n))
}

// ObserveSolve records one finished solve.
func (m *Metrics) ObserveSolve(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.Solves.WithLabelValues(status).Inc()
	m.SolveDuration.Observe(d.Seconds())
}
