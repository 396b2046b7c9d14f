// SPDX-License-Identifier: MIT

// Package trip defines the data model shared by every stage of the
// itinerary solver: flight legs, calendar days and date windows, trip
// requests and the itineraries produced for them.
//
// Values in this package are immutable once constructed and safe to share
// between goroutines. Validation never panics; it returns sentinel errors
// wrapped with context (%w), so callers branch with errors.Is:
//
//	ErrInvalidLeg     - a leg violates Departure < Arrival, Price ≥ 0, …
//	ErrInvalidRequest - a request violates the caller contract
//
// Time model:
//
//   - Day is a civil date in UTC (days since the Unix epoch). Every date
//     window and every cache bucket is expressed in Days.
//   - The first stop's window bounds the departure day of the first leg;
//     every other stop's window bounds the arrival day of the leg entering it.
//
// Ordering rule (Compare):
//
//  1. total price, ascending;
//  2. total duration (first departure → final arrival), ascending;
//  3. leg sequences compared leg by leg with CompareLegs.
//
// The rule is total, so ranking is deterministic for any input.
package trip
