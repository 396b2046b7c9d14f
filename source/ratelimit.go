// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/katalvlaran/routesolver/legrepo"
	"github.com/katalvlaran/routesolver/trip"
)

// RateLimited spaces calls to a wrapped Source.
type RateLimited struct {
	src     legrepo.Source
	limiter *rate.Limiter
}

// NewRateLimited allows one call per interval to src, with bursts of up
// to burst calls. A non-positive interval disables limiting. It panics on
// a nil src or burst < 1.
func NewRateLimited(src legrepo.Source, interval time.Duration, burst int) *RateLimited {
	if src == nil {
		panic("source: NewRateLimited(nil source)")
	}
	if burst < 1 {
		panic("source: NewRateLimited(burst < 1)")
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &RateLimited{src: src, limiter: rate.NewLimiter(limit, burst)}
}

// FetchLegs waits for a token, then calls the wrapped source. When the
// caller's deadline would expire before a token is available it reports
// legrepo.ErrRateLimited, which the repository retries.
func (r *RateLimited) FetchLegs(ctx context.Context, origin, destination string, dr trip.DateRange) ([]trip.Leg, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		return nil, fmt.Errorf("%w: %s→%s: %v", legrepo.ErrRateLimited, origin, destination, err)
	}

	return r.src.FetchLegs(ctx, origin, destination, dr)
}
