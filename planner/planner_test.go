// SPDX-License-Identifier: MIT

package planner_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routesolver/legrepo"
	"github.com/katalvlaran/routesolver/planner"
	"github.com/katalvlaran/routesolver/trip"
)

var d0 = trip.NewDay(2024, time.June, 1)

func window(from, to int) trip.DateRange {
	return trip.DateRange{From: d0.AddDays(from), To: d0.AddDays(to)}
}

func TestPlan_PairWindows(t *testing.T) {
	req := &trip.Request{
		Stops: []trip.Stop{
			{Location: "aaa", Window: window(0, 0)},
			{Location: "BBB", Window: window(1, 2)},
			{Location: "CCC", Window: window(3, 3)},
		},
	}
	got := planner.Plan(req)
	require.Equal(t, []planner.Query{
		{Origin: "AAA", Destination: "BBB", Day: d0},
		{Origin: "BBB", Destination: "CCC", Day: d0.AddDays(1)},
		{Origin: "BBB", Destination: "CCC", Day: d0.AddDays(2)},
		{Origin: "BBB", Destination: "CCC", Day: d0.AddDays(3)},
	}, got)
	require.Equal(t, "AAA-BBB@2024-06-01", got[0].String())
}

func TestPlan_DeduplicatesRepeatedRoutes(t *testing.T) {
	req := &trip.Request{
		Stops: []trip.Stop{
			{Location: "AAA", Window: window(0, 2)},
			{Location: "BBB", Window: window(1, 2), Fixed: true},
			{Location: "AAA", Window: window(2, 3), Fixed: true},
			{Location: "BBB", Window: window(3, 4)},
		},
	}
	got := planner.Plan(req)
	require.Len(t, got, 8)
	seen := map[planner.Query]bool{}
	for i, q := range got {
		require.False(t, seen[q], "duplicate %s", q)
		seen[q] = true
		if i > 0 {
			require.LessOrEqual(t, got[i-1].Day, q.Day)
		}
	}
}

func TestPlan_FreeStopsCoverBothOrders(t *testing.T) {
	req := &trip.Request{
		Stops: []trip.Stop{
			{Location: "NYC", Window: window(0, 0)},
			{Location: "PAR", Window: window(1, 3)},
			{Location: "ROM", Window: window(2, 5)},
			{Location: "NYC", Window: window(6, 6)},
		},
	}
	routes := map[string]bool{}
	for _, q := range planner.Plan(req) {
		routes[q.Origin+"-"+q.Destination] = true
	}
	require.Equal(t, map[string]bool{
		"NYC-PAR": true, "NYC-ROM": true,
		"PAR-ROM": true, "ROM-PAR": true,
		"PAR-NYC": true, "ROM-NYC": true,
	}, routes)
}

func TestPlan_InvalidRequest(t *testing.T) {
	require.Nil(t, planner.Plan(&trip.Request{}))
}

// fakeFetcher answers by destination and tracks concurrency.
type fakeFetcher struct {
	cur, peak atomic.Int32
	calls     atomic.Int32
	delay     time.Duration
}

func (f *fakeFetcher) LegsFor(ctx context.Context, org, dst string, dr trip.DateRange) ([]trip.Leg, error) {
	f.calls.Add(1)
	n := f.cur.Add(1)
	defer f.cur.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	switch dst {
	case "NONE":
		return nil, legrepo.ErrDataUnavailable
	case "FAIL":
		return nil, errors.New("boom")
	default:
		return make([]trip.Leg, 2), nil
	}
}

func TestPrefetch_BoundedAndCounted(t *testing.T) {
	f := &fakeFetcher{delay: 5 * time.Millisecond}
	var queries []planner.Query
	for i := 0; i < 12; i++ {
		queries = append(queries, planner.Query{Origin: "AAA", Destination: "BBB", Day: d0.AddDays(i)})
	}
	queries = append(queries,
		planner.Query{Origin: "AAA", Destination: "NONE", Day: d0},
		planner.Query{Origin: "AAA", Destination: "FAIL", Day: d0},
	)

	p := planner.New(f, planner.WithMaxConcurrent(3))
	sum, err := p.Prefetch(context.Background(), queries)
	require.NoError(t, err)
	require.Equal(t, 14, sum.Queries)
	require.Equal(t, 12, sum.Available)
	require.Equal(t, 2, sum.Unavailable)
	require.Equal(t, 24, sum.Legs)
	require.LessOrEqual(t, f.peak.Load(), int32(3))
	require.EqualValues(t, 14, f.calls.Load())
}

func TestPrefetch_CancelStopsDispatch(t *testing.T) {
	f := &fakeFetcher{delay: time.Hour}
	queries := make([]planner.Query, 100)
	for i := range queries {
		queries[i] = planner.Query{Origin: "AAA", Destination: "BBB", Day: d0.AddDays(i)}
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	sum, err := planner.New(f, planner.WithMaxConcurrent(2)).Prefetch(ctx, queries)
	require.ErrorIs(t, err, context.Canceled)
	require.Less(t, sum.Queries, len(queries))
	require.Zero(t, sum.Available)
}

func TestPrefetch_WarmsRepositoryOnce(t *testing.T) {
	var fetches atomic.Int32
	src := legrepo.SourceFunc(func(ctx context.Context, org, dst string, dr trip.DateRange) ([]trip.Leg, error) {
		fetches.Add(1)
		return nil, legrepo.ErrDataUnavailable
	})
	repo := legrepo.New(src)
	req := &trip.Request{
		Stops: []trip.Stop{
			{Location: "NYC", Window: window(0, 0)},
			{Location: "PAR", Window: window(1, 3)},
			{Location: "ROM", Window: window(2, 5)},
			{Location: "NYC", Window: window(6, 6)},
		},
	}
	queries := planner.Plan(req)
	p := planner.New(repo, planner.WithMaxConcurrent(8))

	sum, err := p.Prefetch(context.Background(), queries)
	require.NoError(t, err)
	require.Equal(t, len(queries), sum.Unavailable)
	require.EqualValues(t, len(queries), fetches.Load())

	_, err = p.Prefetch(context.Background(), queries)
	require.NoError(t, err)
	require.EqualValues(t, len(queries), fetches.Load(), "second pass is served from cache")
}

func TestOptions_Panic(t *testing.T) {
	require.Panics(t, func() { planner.WithMaxConcurrent(0) })
	require.Panics(t, func() { planner.WithLogger(nil) })
}
