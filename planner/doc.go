// SPDX-License-Identifier: MIT

// Package planner decides which leg lookups a request needs and drives
// them through the leg repository with bounded concurrency.
//
// Plan enumerates one Query per (origin, destination, departure day) that
// any valid itinerary could use: for every ordered stop pair allowed to be
// consecutive, every day of the pair's departure window (trip.Request.LegWindow).
// Queries are deduplicated and returned in a deterministic order, earliest
// day first.
//
// Prefetch issues the queries with at most MaxConcurrent in flight; the rest
// wait for a free slot. An unavailable route is an expected answer and is
// only counted. Cancellation stops dispatch and is returned to the caller.
package planner
