// SPDX-License-Identifier: MIT

package trip

import (
	"fmt"
	"time"
)

const (
	dayLayout  = "2006-01-02"
	secPerDay  = 24 * 60 * 60
	hoursInDay = 24 * time.Hour
)

// Day is a civil calendar date in UTC, counted in days since 1970-01-01.
type Day int32

// DayOf returns the UTC calendar day containing t.
func DayOf(t time.Time) Day {
	s := t.Unix()
	d := s / secPerDay
	if s%secPerDay < 0 {
		d-- // floor for instants before the epoch
	}

	return Day(d)
}

// NewDay returns the Day for the given UTC year, month and day of month.
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDay parses a "2006-01-02" date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return 0, fmt.Errorf("trip: parse day %q: %w", s, err)
	}

	return DayOf(t), nil
}

// Start returns midnight UTC at the beginning of d.
func (d Day) Start() time.Time { return time.Unix(int64(d)*secPerDay, 0).UTC() }

// End returns the first instant of the following day (exclusive bound).
func (d Day) End() time.Time { return d.Start().Add(hoursInDay) }

// AddDays returns d shifted by n days.
func (d Day) AddDays(n int) Day { return d + Day(n) }

// String formats d as "2006-01-02".
func (d Day) String() string { return d.Start().Format(dayLayout) }

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(b []byte) error {
	v, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = v

	return nil
}

// DateRange is an inclusive range of days [From, To].
// A range with To < From is empty.
type DateRange struct {
	From Day `json:"from"`
	To   Day `json:"to"`
}

// SingleDay returns the range containing only d.
func SingleDay(d Day) DateRange { return DateRange{From: d, To: d} }

// Empty reports whether r contains no day.
func (r DateRange) Empty() bool { return r.To < r.From }

// Len returns the number of days in r.
func (r DateRange) Len() int {
	if r.Empty() {
		return 0
	}

	return int(r.To-r.From) + 1
}

// Contains reports whether d lies in r.
func (r DateRange) Contains(d Day) bool { return d >= r.From && d <= r.To }

// ContainsTime reports whether the UTC day of t lies in r.
func (r DateRange) ContainsTime(t time.Time) bool { return r.Contains(DayOf(t)) }

// Intersect returns the overlap of r and o (possibly empty).
func (r DateRange) Intersect(o DateRange) DateRange {
	return DateRange{From: max(r.From, o.From), To: min(r.To, o.To)}
}

// Days lists every day of r in ascending order.
func (r DateRange) Days() []Day {
	out := make([]Day, 0, r.Len())
	var d Day
	for d = r.From; d <= r.To; d++ {
		out = append(out, d)
	}

	return out
}

// String formats r as "from..to".
func (r DateRange) String() string {
	if r.From == r.To {
		return r.From.String()
	}

	return r.From.String() + ".." + r.To.String()
}
