// SPDX-License-Identifier: MIT

package optimizer

import (
	"fmt"
	"strings"
)

// Mode selects the search strategy.
type Mode int

const (
	// Exact runs the Held–Karp label DP over the materialized arena.
	Exact Mode = iota

	// Bounded runs branch-and-bound over lazily generated states.
	Bounded
)

// String returns "exact" or "bounded".
func (m Mode) String() string {
	switch m {
	case Exact:
		return "exact"
	case Bounded:
		return "bounded"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText accepts what ParseMode accepts.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v

	return nil
}

// ParseMode accepts "exact" or "bounded", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact", "":
		return Exact, nil
	case "bounded":
		return Bounded, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadMode, s)
	}
}

// Defaults used by DefaultOptions.
//
// DefaultMaxExactStops is checked before Materialize runs and counts every
// stop, fixed or free. Above it Exact falls back to Bounded without building
// an arena, even when fixed stops would keep the arena small. The check
// trades those cases for never spending time and memory on an arena that
// the node limit (routegraph.WithMaxNodes) would reject late. Requests that
// pin most of their stops can raise MaxExactStops; the node limit still
// forces the fallback when the arena does not fit.
const (
	DefaultTopK          = 1
	DefaultMaxExactStops = 12
	DefaultCheckEvery    = 1024
)

// Options configures Optimize.
//
// TopK          – number of itineraries to return (≥ 1).
// Mode          – Exact (default) or Bounded.
// MaxExactStops – Exact falls back to Bounded above this many stops,
//                 before any arena is built (≥ 2).
// CheckEvery    – relaxations between cancellation checks (≥ 1).
type Options struct {
	TopK          int
	Mode          Mode
	MaxExactStops int
	CheckEvery    int
}

// DefaultOptions returns TopK 1, Exact mode, MaxExactStops 12 and
// CheckEvery 1024.
func DefaultOptions() Options {
	return Options{
		TopK:          DefaultTopK,
		Mode:          Exact,
		MaxExactStops: DefaultMaxExactStops,
		CheckEvery:    DefaultCheckEvery,
	}
}

func (o Options) validate() error {
	switch {
	case o.TopK < 1:
		return fmt.Errorf("%w: got %d", ErrBadTopK, o.TopK)
	case o.Mode != Exact && o.Mode != Bounded:
		return fmt.Errorf("%w: %s", ErrBadMode, o.Mode)
	case o.CheckEvery < 1 || o.MaxExactStops < 2:
		return fmt.Errorf("%w: CheckEvery=%d MaxExactStops=%d", ErrBadCheckEvery, o.CheckEvery, o.MaxExactStops)
	}

	return nil
}
