// SPDX-License-Identifier: MIT

package trip

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// Leg is one bookable flight segment as quoted by the pricing source.
// A Leg is a value: once fetched it is never mutated.
type Leg struct {
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	Departure    time.Time `json:"departure"`
	Arrival      time.Time `json:"arrival"`
	Price        Money     `json:"price"`
	Currency     string    `json:"currency,omitempty"`
	Carrier      string    `json:"carrier,omitempty"`
	FlightNumber string    `json:"flight_number,omitempty"`
	FareClass    string    `json:"fare_class,omitempty"`
}

// Validate checks the leg invariants.
func (l Leg) Validate() error {
	switch {
	case l.Origin == "" || l.Destination == "":
		return fmt.Errorf("%w: empty airport code", ErrInvalidLeg)
	case strings.EqualFold(l.Origin, l.Destination):
		return fmt.Errorf("%w: origin equals destination %s", ErrInvalidLeg, l.Origin)
	case !l.Departure.Before(l.Arrival):
		return fmt.Errorf("%w: %s→%s departs %s, not before arrival %s",
			ErrInvalidLeg, l.Origin, l.Destination, l.Departure.Format(time.RFC3339), l.Arrival.Format(time.RFC3339))
	case l.Price < 0:
		return fmt.Errorf("%w: %s→%s negative price %s", ErrInvalidLeg, l.Origin, l.Destination, l.Price)
	}

	return nil
}

// Duration is the block time of the leg.
func (l Leg) Duration() time.Duration { return l.Arrival.Sub(l.Departure) }

// DepartureDay is the UTC day the leg departs; it is the leg's cache bucket.
func (l Leg) DepartureDay() Day { return DayOf(l.Departure) }

// String renders a compact human-readable form.
func (l Leg) String() string {
	code := l.Carrier + l.FlightNumber
	if code != "" {
		code = " " + code
	}

	return fmt.Sprintf("%s→%s%s %s→%s %s",
		l.Origin, l.Destination, code,
		l.Departure.UTC().Format("2006-01-02T15:04"), l.Arrival.UTC().Format("2006-01-02T15:04"),
		l.Price)
}

// CompareLegs is the total order on legs used to break ties between
// otherwise equal itineraries. Fields are compared in this order:
// departure, arrival, origin, destination, carrier, flight number,
// fare class, currency, price. Quotes of one flight in two currencies are
// therefore distinct legs. It returns -1, 0 or +1.
func CompareLegs(a, b Leg) int {
	if c := a.Departure.Compare(b.Departure); c != 0 {
		return c
	}
	if c := a.Arrival.Compare(b.Arrival); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Origin, b.Origin); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Destination, b.Destination); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Carrier, b.Carrier); c != 0 {
		return c
	}
	if c := cmp.Compare(a.FlightNumber, b.FlightNumber); c != 0 {
		return c
	}
	if c := cmp.Compare(a.FareClass, b.FareClass); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Currency, b.Currency); c != 0 {
		return c
	}

	return cmp.Compare(a.Price, b.Price)
}
