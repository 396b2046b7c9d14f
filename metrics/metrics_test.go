// SPDX-License-Identifier: MIT

package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routesolver/metrics"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "test")

	m.ObserveFetch(metrics.OutcomeOK, 10*time.Millisecond)
	m.ObserveFetch(metrics.OutcomeOK, 20*time.Millisecond)
	m.ObserveFetch(metrics.OutcomeTimeout, time.Second)
	m.CacheHit()
	m.CacheMiss()
	m.Retry()
	m.Relaxed(42)
	done := m.FetchStarted()
	require.Equal(t, 1.0, testutil.ToFloat64(m.InFlight))
	done()

	require.Equal(t, 2.0, testutil.ToFloat64(m.Fetches.WithLabelValues(metrics.OutcomeOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Fetches.WithLabelValues(metrics.OutcomeTimeout)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))
	require.Equal(t, 1.0, testutil.ToFloat64(m.CacheMisses))
	require.Equal(t, 1.0, testutil.ToFloat64(m.FetchRetries))
	require.Equal(t, 42.0, testutil.ToFloat64(m.StatesRelaxed))
	require.Equal(t, 0.0, testutil.ToFloat64(m.InFlight))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveFetch(metrics.OutcomeOK, time.Millisecond)
	m.CacheHit()
	m.CacheMiss()
	m.Retry()
	m.Relaxed(1)
	m.ObserveSolve("ok", time.Millisecond)
	m.FetchStarted()()
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	// Two instances on distinct registries must not collide.
	require.NotPanics(t, func() {
		metrics.New(prometheus.NewRegistry(), "a")
		metrics.New(prometheus.NewRegistry(), "a")
	})
}
