// SPDX-License-Identifier: MIT

package trip

import (
	"fmt"
	"strings"
	"time"
)

// MaxStops is the largest supported stop count; visited sets are uint64 masks.
const MaxStops = 64

// Stop is one required destination of a trip.
type Stop struct {
	// Location is the airport (or metro) code legs must match exactly.
	Location string `json:"location"`

	// Window is the inclusive range of days the stop may be reached on.
	// For the first stop it bounds the departure day of the first leg.
	Window DateRange `json:"window"`

	// Fixed pins the stop to its list position. Free stops may be permuted
	// among the positions held by other free stops. The first and last
	// stops are always fixed.
	Fixed bool `json:"fixed"`
}

// Request is the traveller's journey: an ordered stop list plus connection
// and duration limits. It is read-only input to a solve.
type Request struct {
	Stops []Stop

	// MinLayover is the least time between an arrival and the next departure.
	MinLayover time.Duration

	// MaxLayover caps the time between an arrival and the next departure.
	// Zero means no cap.
	MaxLayover time.Duration

	// MaxTripDuration caps the time from the first departure to the final
	// arrival. Zero means no cap.
	MaxTripDuration time.Duration

	// Currency, when set, restricts the search to legs quoted in it.
	Currency string
}

// Validate reports caller-contract violations wrapped in ErrInvalidRequest.
//
// Complexity: O(n) for n stops.
func (r *Request) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil request", ErrInvalidRequest)
	}
	n := len(r.Stops)
	if n < 2 {
		return fmt.Errorf("%w: need at least two stops, got %d", ErrInvalidRequest, n)
	}
	if n > MaxStops {
		return fmt.Errorf("%w: %d stops exceed the limit of %d", ErrInvalidRequest, n, MaxStops)
	}

	var (
		i int
		s Stop
	)
	for i, s = range r.Stops {
		if strings.TrimSpace(s.Location) == "" {
			return fmt.Errorf("%w: stop %d has no location", ErrInvalidRequest, i)
		}
		if s.Window.Empty() {
			return fmt.Errorf("%w: stop %d (%s) window latest %s before earliest %s",
				ErrInvalidRequest, i, s.Location, s.Window.To, s.Window.From)
		}
	}
	if r.MinLayover < 0 || r.MaxLayover < 0 || r.MaxTripDuration < 0 {
		return fmt.Errorf("%w: negative duration limit", ErrInvalidRequest)
	}
	if r.MaxLayover > 0 && r.MaxLayover < r.MinLayover {
		return fmt.Errorf("%w: max layover %s below min layover %s", ErrInvalidRequest, r.MaxLayover, r.MinLayover)
	}

	return nil
}

// Last returns the index of the final destination.
func (r *Request) Last() int { return len(r.Stops) - 1 }

// IsFixed reports whether stop i keeps its list position.
func (r *Request) IsFixed(i int) bool {
	return i == 0 || i == r.Last() || r.Stops[i].Fixed
}

// AllowedAt reports whether stop i may be visited as the pos-th stop
// (position 0 is the origin).
func (r *Request) AllowedAt(i, pos int) bool {
	if pos < 0 || pos > r.Last() {
		return false
	}
	if r.IsFixed(i) {
		return pos == i
	}

	return !r.IsFixed(pos)
}

// CanFollow reports whether stop j may directly follow stop i in some
// visiting order allowed by the fixed/free constraints.
//
// Complexity: O(n).
func (r *Request) CanFollow(i, j int) bool {
	if i == j || j == 0 || i == r.Last() {
		return false
	}
	var pos int
	for pos = 0; pos < r.Last(); pos++ {
		if r.AllowedAt(i, pos) && r.AllowedAt(j, pos+1) {
			return true
		}
	}

	return false
}

// LegWindow returns the departure days a leg from stop i to stop j may
// fall on, given the windows and the layover and trip-duration limits.
// The result is empty when no such leg can be part of a valid itinerary.
func (r *Request) LegWindow(i, j int) DateRange {
	var (
		wi  = r.Stops[i].Window
		wj  = r.Stops[j].Window
		out DateRange
	)
	if i == 0 {
		out = DateRange{From: wi.From, To: min(wi.To, wj.To)}
	} else {
		out = DateRange{From: DayOf(wi.From.Start().Add(r.MinLayover)), To: wj.To}
		if r.MaxLayover > 0 {
			out.To = min(out.To, DayOf(wi.To.End().Add(r.MaxLayover-time.Nanosecond)))
		}
	}
	if r.MaxTripDuration > 0 {
		w0 := r.Stops[0].Window
		out.To = min(out.To, DayOf(w0.To.End().Add(r.MaxTripDuration-time.Nanosecond)))
	}

	return out
}
