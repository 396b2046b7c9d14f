// SPDX-License-Identifier: MIT

package legrepo

import (
	"context"
	"errors"
)

var (
	// ErrDataUnavailable indicates that no legs exist (or could be obtained)
	// for a key. It is a normal outcome: the graph builder reads it as
	// "no edge", never as a failure to surface.
	ErrDataUnavailable = errors.New("legrepo: data unavailable")

	// ErrFetchTimeout indicates a Source call exceeded the per-fetch timeout.
	ErrFetchTimeout = errors.New("legrepo: fetch timeout")

	// ErrFetchFailed indicates a Source I/O fault.
	ErrFetchFailed = errors.New("legrepo: fetch failed")

	// ErrRateLimited indicates the Source refused the call for rate reasons;
	// it is always retryable.
	ErrRateLimited = errors.New("legrepo: rate limited")
)

// retryable reports whether err is worth another attempt.
// Everything except ErrDataUnavailable and caller cancellation is.
func retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrDataUnavailable):
		return false
	case errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}
