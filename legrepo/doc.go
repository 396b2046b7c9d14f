// SPDX-License-Identifier: MIT

// Package legrepo is the Leg Repository: the per-session store of flight
// legs and the sole consumer of the external pricing source.
//
// Cache model:
//
//   - Legs are bucketed by Key{Origin, Destination, Day}, Day being the UTC
//     departure day. A date-range lookup is split into day buckets.
//   - Each key is fetched from the Source at most once per Repository:
//     concurrent misses on the same key share one in-flight call
//     (golang.org/x/sync/singleflight) and every later lookup is a hit.
//   - A key whose fetch yields no legs, times out, or keeps failing is cached
//     as "no legs" (ErrDataUnavailable) and is not retried in the session.
//   - Entries are only ever added or replaced whole under the lock; readers
//     never observe a partially written entry.
//
// Fetch policy:
//
//   - Each Source call runs under its own timeout (WithFetchTimeout); an
//     expired call is classified ErrFetchTimeout.
//   - Retryable failures (ErrFetchTimeout, ErrFetchFailed, ErrRateLimited,
//     any unclassified error) are retried WithRetries times with exponential
//     backoff, then downgraded to ErrDataUnavailable.
//   - Source calls are detached from the caller's cancellation, so a caller
//     giving up never leaves a key half-fetched; the caller itself returns
//     ctx.Err() immediately.
//   - WithMaxInFlight caps concurrent Source calls.
//
// Legs returned by the repository are shared, read-only values.
package legrepo
