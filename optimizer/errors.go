// SPDX-License-Identifier: MIT

package optimizer

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/routesolver/routegraph"
)

// Sentinel errors.
var (
	// ErrInfeasible indicates that no itinerary satisfies every constraint.
	ErrInfeasible = errors.New("optimizer: no feasible itinerary")

	// ErrNilGraph indicates a nil *routegraph.Graph.
	ErrNilGraph = errors.New("optimizer: graph is nil")

	// ErrBadTopK indicates Options.TopK < 1.
	ErrBadTopK = errors.New("optimizer: TopK must be at least 1")

	// ErrBadMode indicates an unknown Options.Mode.
	ErrBadMode = errors.New("optimizer: unknown search mode")

	// ErrBadCheckEvery indicates Options.CheckEvery < 1 or MaxExactStops < 2.
	ErrBadCheckEvery = errors.New("optimizer: CheckEvery and MaxExactStops must be positive")
)

// InfeasibleError reports an empty search and the deepest partial route
// reached before every branch died.
type InfeasibleError struct {
	// Cause is the structural reason when one is known, typically a
	// *routegraph.DeadEndError; nil when the search simply ran dry.
	Cause   error
	Partial routegraph.Trace
}

// Error implements error.
func (e *InfeasibleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", ErrInfeasible, e.Cause)
	}

	return fmt.Sprintf("%s: stuck at %s after %d legs", ErrInfeasible, e.Partial.Location, len(e.Partial.Legs))
}

// Is makes errors.Is(err, ErrInfeasible) report true.
func (e *InfeasibleError) Is(target error) bool { return target == ErrInfeasible }

// Unwrap exposes Cause, so errors.Is(err, routegraph.ErrNoFeasibleGraph)
// also holds for structural failures.
func (e *InfeasibleError) Unwrap() error { return e.Cause }
