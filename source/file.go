// SPDX-License-Identifier: MIT

package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/routesolver/trip"
)

// DecodeLegs reads a JSON array of legs and validates each one.
func DecodeLegs(r io.Reader) ([]trip.Leg, error) {
	var legs []trip.Leg
	if err := json.NewDecoder(r).Decode(&legs); err != nil {
		return nil, fmt.Errorf("source: decode legs: %w", err)
	}
	for i, l := range legs {
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("source: leg %d: %w", i, err)
		}
	}

	return legs, nil
}

// ReadFile reads and validates the JSON leg file at path.
func ReadFile(path string) ([]trip.Leg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer f.Close()

	return DecodeLegs(f)
}

// LoadFile reads the JSON leg file at path into a Static source.
func LoadFile(path string) (*Static, error) {
	legs, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	return NewStatic(legs...), nil
}
