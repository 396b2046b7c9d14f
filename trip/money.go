// SPDX-License-Identifier: MIT

package trip

import (
	"encoding/json"
	"fmt"
	"math"
)

// Money is a currency amount in minor units (cents). Integer arithmetic
// keeps sums exact, so equal prices compare equal and ties are real ties.
type Money int64

// Amount converts a major-unit value (e.g. 549.99) to Money, rounding half
// away from zero to the nearest minor unit.
func Amount(major float64) Money { return Money(math.Round(major * 100)) }

// Major returns m in major units.
func (m Money) Major() float64 { return float64(m) / 100 }

// String formats m with two decimals, e.g. "820.00".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign, v = "-", -v
	}

	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON encodes m as a decimal number of major units.
func (m Money) MarshalJSON() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalJSON accepts a decimal number of major units.
func (m *Money) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("trip: money: %w", err)
	}
	*m = Amount(f)

	return nil
}
