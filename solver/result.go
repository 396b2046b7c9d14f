// SPDX-License-Identifier: MIT

package solver

import (
	"time"

	"github.com/katalvlaran/routesolver/optimizer"
	"github.com/katalvlaran/routesolver/planner"
	"github.com/katalvlaran/routesolver/routegraph"
	"github.com/katalvlaran/routesolver/trip"
)

// Status is the outcome class of a solve.
type Status string

const (
	StatusOK         Status = "ok"
	StatusInfeasible Status = "infeasible"
)

// Failure kinds reported in Report.Kind.
const (
	// KindNoFeasibleGraph: routegraph.New rejected the stop-level graph.
	// The fetched legs leave some stop unreachable from the origin, or the
	// final stop unreachable from some stop. Leg times are not considered.
	KindNoFeasibleGraph = "no_feasible_graph"

	// KindInfeasible: the stop-level graph is connected, but the search
	// found no timed sequence of legs meeting the layover, window and
	// duration constraints. In Exact mode the dead end is found while
	// materializing the arena, so Cause also matches
	// routegraph.ErrNoFeasibleGraph; Kind stays KindInfeasible because the
	// failure is about timing, not connectivity.
	KindInfeasible = "infeasible"
)

// Report explains an infeasible solve.
type Report struct {
	Kind    string           `json:"kind"`
	Message string           `json:"message"`
	Partial routegraph.Trace `json:"partial"`

	// Cause is the underlying error, for errors.Is/As.
	Cause error `json:"-"`
}

// Result is the answer to one request.
type Result struct {
	SessionID   string           `json:"session_id"`
	Status      Status           `json:"status"`
	Itineraries []trip.Itinerary `json:"itineraries,omitempty"`
	Report      *Report          `json:"report,omitempty"`

	Mode     optimizer.Mode  `json:"mode"`
	Prefetch planner.Summary `json:"prefetch"`
	Search   optimizer.Stats `json:"search"`
	Elapsed  time.Duration   `json:"elapsed"`
}

// Best returns the cheapest itinerary, if any.
func (r *Result) Best() (trip.Itinerary, bool) {
	if r == nil || len(r.Itineraries) == 0 {
		return trip.Itinerary{}, false
	}

	return r.Itineraries[0], true
}
