// SPDX-License-Identifier: MIT

// Package source provides legrepo.Source implementations: pricing
// collaborators the leg repository fetches from.
//
//   - Static serves an in-memory leg pool and counts calls; LoadFile fills
//     one from a JSON array of legs.
//   - SQLite reads legs from a local database (modernc.org/sqlite), the
//     persistent "cache file" form of a pricing source.
//   - RateLimited spaces calls to a wrapped Source with golang.org/x/time/rate.
//
// Every implementation reports a route with no legs as
// legrepo.ErrDataUnavailable.
package source
