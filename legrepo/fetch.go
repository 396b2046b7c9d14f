// SPDX-License-Identifier: MIT

package legrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/routesolver/metrics"
	"github.com/katalvlaran/routesolver/trip"
)

// fetch resolves a key against the Source, retrying retryable failures.
// It always returns a complete entry: legs, or an ErrDataUnavailable cause.
func (r *Repository) fetch(ctx context.Context, key Key) entry {
	if r.src == nil {
		return entry{err: fmt.Errorf("%w: %s: no source", ErrDataUnavailable, key)}
	}

	var (
		start   = time.Now()
		backoff = r.backoff
		legs    []trip.Leg
		err     error
		attempt int
	)
	for attempt = 0; ; attempt++ {
		legs, err = r.fetchOnce(ctx, key)
		if err == nil {
			break
		}
		if !retryable(err) || attempt >= r.maxRetries {
			break
		}
		r.metrics.Retry()
		r.log.Debug("retrying leg fetch", "key", key.String(), "attempt", attempt+1, "backoff", backoff, "error", err)
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case <-time.After(backoff):
		}
		if ctx.Err() != nil {
			break
		}
		backoff = min(backoff*2, r.maxBackoff)
	}

	if err != nil {
		r.metrics.ObserveFetch(outcomeOf(err), time.Since(start))
		if !errors.Is(err, ErrDataUnavailable) {
			r.downgraded.Add(1)
			r.log.Warn("leg fetch failed, treating as unavailable", "key", key.String(), "attempts", attempt+1, "error", err)
			err = fmt.Errorf("%w: %s: %w", ErrDataUnavailable, key, err)
		}

		return entry{err: err}
	}

	legs = r.clean(key, legs)
	if len(legs) == 0 {
		r.metrics.ObserveFetch(metrics.OutcomeUnavailable, time.Since(start))

		return entry{err: fmt.Errorf("%w: %s: no legs", ErrDataUnavailable, key)}
	}
	r.metrics.ObserveFetch(metrics.OutcomeOK, time.Since(start))

	return entry{legs: legs}
}

// fetchOnce performs a single bounded Source call.
func (r *Repository) fetchOnce(ctx context.Context, key Key) ([]trip.Leg, error) {
	if r.sem != nil {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer r.sem.Release(1)
	}
	done := r.metrics.FetchStarted()
	defer done()

	fctx := ctx
	if r.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, r.fetchTimeout)
		defer cancel()
	}

	r.fetches.Add(1)
	legs, err := r.src.FetchLegs(fctx, key.Origin, key.Destination, trip.SingleDay(key.Day))
	if err != nil {
		if errors.Is(fctx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrFetchTimeout) {
			err = fmt.Errorf("%w: %w", ErrFetchTimeout, err)
		}

		return nil, err
	}

	return legs, nil
}

// clean drops legs that are invalid or do not belong to key, and sorts the rest.
func (r *Repository) clean(key Key, legs []trip.Leg) []trip.Leg {
	out := make([]trip.Leg, 0, len(legs))
	var l trip.Leg
	for _, l = range legs {
		if err := l.Validate(); err != nil {
			r.log.Warn("dropping invalid leg from source", "key", key.String(), "error", err)
			continue
		}
		if !strings.EqualFold(l.Origin, key.Origin) || !strings.EqualFold(l.Destination, key.Destination) || l.DepartureDay() != key.Day {
			r.log.Warn("dropping leg outside requested bucket", "key", key.String(), "leg", l.String())
			continue
		}
		out = append(out, l)
	}

	return sortUnique(out)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrDataUnavailable):
		return metrics.OutcomeUnavailable
	case errors.Is(err, ErrFetchTimeout), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeTimeout
	case errors.Is(err, context.Canceled):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeFailed
	}
}
