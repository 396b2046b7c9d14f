// SPDX-License-Identifier: MIT

package legrepo

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/routesolver/logger"
	"github.com/katalvlaran/routesolver/metrics"
	"github.com/katalvlaran/routesolver/trip"
)

// entry is one cached bucket. Exactly one of legs (non-empty) or err is set.
type entry struct {
	legs []trip.Leg
	err  error
}

// Stats is a snapshot of repository counters.
type Stats struct {
	Keys       int   // cached buckets
	Fetches    int64 // Source calls, retries included
	Hits       int64 // bucket lookups served from cache
	Misses     int64 // bucket lookups that went to the Source
	Downgraded int64 // keys cached as unavailable after a failed fetch
}

// Repository caches legs for one optimization session.
// All methods are safe for concurrent use.
type Repository struct {
	src Source

	mu    sync.RWMutex // guards cache
	cache map[Key]entry
	group singleflight.Group
	sem   *semaphore.Weighted // nil means unlimited

	fetchTimeout time.Duration
	maxRetries   int
	backoff      time.Duration
	maxBackoff   time.Duration

	log     logger.Logger
	metrics *metrics.Metrics

	fetches    atomic.Int64
	hits       atomic.Int64
	misses     atomic.Int64
	downgraded atomic.Int64
}

// New creates an empty Repository backed by src. A nil src makes every
// uncached key unavailable, which suits repositories filled by Ingest.
func New(src Source, opts ...Option) *Repository {
	r := &Repository{
		src:          src,
		cache:        make(map[Key]entry),
		fetchTimeout: DefaultFetchTimeout,
		backoff:      DefaultBackoff,
		maxBackoff:   DefaultMaxBackoff,
		log:          logger.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// LegsFor returns every leg from origin to destination departing on a day
// in dr, sorted by trip.CompareLegs. Missing buckets are fetched lazily.
//
// Errors:
//   - ErrDataUnavailable (wrapped) when no bucket of dr holds legs;
//   - ctx.Err() when the caller is cancelled while waiting.
//
// Complexity: O(d) bucket lookups for d days in dr, plus fetches on miss.
func (r *Repository) LegsFor(ctx context.Context, origin, destination string, dr trip.DateRange) ([]trip.Leg, error) {
	if dr.Empty() {
		return nil, fmt.Errorf("%w: %s→%s empty date range", ErrDataUnavailable, origin, destination)
	}

	var (
		out  []trip.Leg
		day  trip.Day
		legs []trip.Leg
		err  error
	)
	for _, day = range dr.Days() {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		legs, err = r.bucket(ctx, NewKey(origin, destination, day))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue // unavailable day: no legs
		}
		out = append(out, legs...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s→%s %s", ErrDataUnavailable, origin, destination, dr)
	}

	// Day buckets are individually sorted and visited in ascending day
	// order, and CompareLegs orders by departure first, so out is sorted.
	return out, nil
}

// Cached returns the legs of a bucket without ever calling the Source.
// A bucket that was never fetched, or was fetched empty, reports
// ErrDataUnavailable. The returned slice must not be modified.
func (r *Repository) Cached(origin, destination string, day trip.Day) ([]trip.Leg, error) {
	key := NewKey(origin, destination, day)
	e, ok := r.lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s not fetched", ErrDataUnavailable, key)
	}

	return e.legs, e.err
}

// Ingest pre-warms the cache from a batch fetch. Valid legs are grouped by
// Key and merged into their buckets (duplicates dropped); an ingested bucket
// is authoritative and will not be fetched. Invalid legs are skipped.
// It returns the number of legs accepted.
//
// Complexity: O(m log m) for m legs.
func (r *Repository) Ingest(legs []trip.Leg) int {
	groups := make(map[Key][]trip.Leg)
	var (
		l        trip.Leg
		err      error
		accepted int
	)
	for _, l = range legs {
		if err = l.Validate(); err != nil {
			r.log.Warn("skipping invalid leg on ingest", "leg", l.String(), "error", err)
			continue
		}
		k := KeyOf(l)
		groups[k] = append(groups[k], l)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var (
		k     Key
		batch []trip.Leg
	)
	for k, batch = range groups {
		merged := append(slices.Clone(r.cache[k].legs), batch...)
		merged = sortUnique(merged)
		accepted += len(merged) - len(r.cache[k].legs)
		r.cache[k] = entry{legs: merged}
	}

	return accepted
}

// Stats returns a snapshot of the counters.
func (r *Repository) Stats() Stats {
	r.mu.RLock()
	keys := len(r.cache)
	r.mu.RUnlock()

	return Stats{
		Keys:       keys,
		Fetches:    r.fetches.Load(),
		Hits:       r.hits.Load(),
		Misses:     r.misses.Load(),
		Downgraded: r.downgraded.Load(),
	}
}

func (r *Repository) lookup(key Key) (entry, bool) {
	r.mu.RLock()
	e, ok := r.cache[key]
	r.mu.RUnlock()

	return e, ok
}

func (r *Repository) store(key Key, e entry) entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.cache[key]; ok {
		return prev // first writer wins; Ingest may have raced us
	}
	r.cache[key] = e

	return e
}

// bucket resolves one key: cache hit, or a shared fetch.
func (r *Repository) bucket(ctx context.Context, key Key) ([]trip.Leg, error) {
	if e, ok := r.lookup(key); ok {
		r.hits.Add(1)
		r.metrics.CacheHit()

		return e.legs, e.err
	}

	// The fetch runs detached from ctx so that a cancelled caller never
	// aborts a call other waiters depend on, nor leaves the key unresolved.
	detached := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key.String(), func() (interface{}, error) {
		if e, ok := r.lookup(key); ok {
			return e, nil
		}
		r.misses.Add(1)
		r.metrics.CacheMiss()

		return r.store(key, r.fetch(detached, key)), nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		e := res.Val.(entry)

		return e.legs, e.err
	}
}

// sortUnique sorts legs by CompareLegs and drops exact duplicates.
func sortUnique(legs []trip.Leg) []trip.Leg {
	slices.SortFunc(legs, trip.CompareLegs)

	return slices.CompactFunc(legs, func(a, b trip.Leg) bool { return trip.CompareLegs(a, b) == 0 })
}
