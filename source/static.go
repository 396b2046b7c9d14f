// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/routesolver/legrepo"
	"github.com/katalvlaran/routesolver/trip"
)

// Static is an in-memory Source. It is safe for concurrent use.
type Static struct {
	mu    sync.RWMutex
	byKey map[legrepo.Key][]trip.Leg
	calls atomic.Int64
}

// NewStatic returns a Static serving legs.
func NewStatic(legs ...trip.Leg) *Static {
	s := &Static{byKey: make(map[legrepo.Key][]trip.Leg)}
	s.Add(legs...)

	return s
}

// Add appends legs to the pool.
func (s *Static) Add(legs ...trip.Leg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var l trip.Leg
	for _, l = range legs {
		k := legrepo.KeyOf(l)
		s.byKey[k] = append(s.byKey[k], l)
	}
}

// Len returns the number of legs held.
func (s *Static) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, legs := range s.byKey {
		n += len(legs)
	}

	return n
}

// Calls returns how many times FetchLegs ran.
func (s *Static) Calls() int64 { return s.calls.Load() }

// FetchLegs implements legrepo.Source.
func (s *Static) FetchLegs(ctx context.Context, origin, destination string, dr trip.DateRange) ([]trip.Leg, error) {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	var out []trip.Leg
	for _, day := range dr.Days() {
		out = append(out, s.byKey[legrepo.NewKey(origin, destination, day)]...)
	}
	s.mu.RUnlock()

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s→%s %s", legrepo.ErrDataUnavailable, origin, destination, dr)
	}
	slices.SortFunc(out, trip.CompareLegs)

	return out, nil
}
