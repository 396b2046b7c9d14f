// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/katalvlaran/routesolver/trip"
)

// requestFile is the on-disk form of a trip.Request. Durations use Go
// syntax ("2h", "90m"); empty means zero.
//
//	{
//	  "stops": [
//	    {"location": "JFK", "window": {"from": "2024-06-01", "to": "2024-06-01"}},
//	    {"location": "CDG", "window": {"from": "2024-06-02", "to": "2024-06-04"}},
//	    {"location": "JFK", "window": {"from": "2024-06-07", "to": "2024-06-07"}}
//	  ],
//	  "min_layover": "2h",
//	  "max_layover": "48h",
//	  "currency": "USD"
//	}
type requestFile struct {
	Stops           []trip.Stop `json:"stops"`
	MinLayover      string      `json:"min_layover,omitempty"`
	MaxLayover      string      `json:"max_layover,omitempty"`
	MaxTripDuration string      `json:"max_trip_duration,omitempty"`
	Currency        string      `json:"currency,omitempty"`
}

func decodeRequest(r io.Reader) (*trip.Request, error) {
	var f requestFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}

	req := &trip.Request{Stops: f.Stops, Currency: f.Currency}
	for _, d := range []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"min_layover", f.MinLayover, &req.MinLayover},
		{"max_layover", f.MaxLayover, &req.MaxLayover},
		{"max_trip_duration", f.MaxTripDuration, &req.MaxTripDuration},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("decode request: %s: %w", d.name, err)
		}
		*d.dst = v
	}

	return req, nil
}

func loadRequest(path string) (*trip.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decodeRequest(f)
}
