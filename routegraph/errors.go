// SPDX-License-Identifier: MIT

package routegraph

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNoFeasibleGraph indicates that no itinerary can satisfy the request
	// with the available legs.
	ErrNoFeasibleGraph = errors.New("routegraph: no feasible graph")

	// ErrGraphTooLarge indicates that materialization would exceed the node limit.
	ErrGraphTooLarge = errors.New("routegraph: graph too large")
)

// DeadEndError explains an ErrNoFeasibleGraph outcome and carries the
// deepest partial route that was still reachable.
type DeadEndError struct {
	Reason  string
	Deepest Trace
}

// Error implements error.
func (e *DeadEndError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNoFeasibleGraph, e.Reason)
}

// Is makes errors.Is(err, ErrNoFeasibleGraph) report true.
func (e *DeadEndError) Is(target error) bool { return target == ErrNoFeasibleGraph }
