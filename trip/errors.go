// SPDX-License-Identifier: MIT

package trip

import "errors"

var (
	// ErrInvalidLeg indicates a leg violating its invariants
	// (empty or equal endpoints, Departure ≥ Arrival, negative price).
	ErrInvalidLeg = errors.New("trip: invalid leg")

	// ErrInvalidRequest indicates a caller-contract violation in a Request.
	// It is never retried; the wrapped message names the offending field.
	ErrInvalidRequest = errors.New("trip: invalid request")
)
