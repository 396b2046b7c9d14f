// SPDX-License-Identifier: MIT

package legrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/katalvlaran/routesolver/trip"
)

// Source is the external pricing collaborator. Implementations may scrape,
// call an API or read a cache file; the repository relies only on this
// contract. FetchLegs returns the legs from origin to destination departing
// on a day in dr, or an error. Returning ErrDataUnavailable (or no legs)
// means the route does not exist; any other error is treated as an I/O fault.
type Source interface {
	FetchLegs(ctx context.Context, origin, destination string, dr trip.DateRange) ([]trip.Leg, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, origin, destination string, dr trip.DateRange) ([]trip.Leg, error)

// FetchLegs calls f.
func (f SourceFunc) FetchLegs(ctx context.Context, origin, destination string, dr trip.DateRange) ([]trip.Leg, error) {
	return f(ctx, origin, destination, dr)
}

// Key identifies one cache bucket: legs from Origin to Destination departing
// on Day (UTC). Codes are upper-cased by NewKey.
type Key struct {
	Origin      string
	Destination string
	Day         trip.Day
}

// NewKey builds a normalized Key.
func NewKey(origin, destination string, day trip.Day) Key {
	return Key{
		Origin:      strings.ToUpper(strings.TrimSpace(origin)),
		Destination: strings.ToUpper(strings.TrimSpace(destination)),
		Day:         day,
	}
}

// KeyOf returns the bucket a leg belongs to.
func KeyOf(l trip.Leg) Key { return NewKey(l.Origin, l.Destination, l.DepartureDay()) }

// String formats the key as "ORG-DST@2006-01-02"; it is also the
// singleflight key.
func (k Key) String() string {
	return fmt.Sprintf("%s-%s@%s", k.Origin, k.Destination, k.Day)
}
