// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routesolver/config"
	"github.com/katalvlaran/routesolver/optimizer"
	"github.com/katalvlaran/routesolver/routegraph"
	"github.com/katalvlaran/routesolver/solver"
	"github.com/katalvlaran/routesolver/trip"
)

const requestJSON = `{
  "stops": [
    {"location": "JFK", "window": {"from": "2024-06-01", "to": "2024-06-01"}},
    {"location": "CDG", "window": {"from": "2024-06-02", "to": "2024-06-04"}},
    {"location": "FCO", "window": {"from": "2024-06-03", "to": "2024-06-06"}},
    {"location": "JFK", "window": {"from": "2024-06-07", "to": "2024-06-07"}}
  ],
  "min_layover": "2h",
  "max_layover": "120h",
  "currency": "usd"
}`

const legsJSON = `[
  {"origin": "JFK", "destination": "CDG", "departure": "2024-06-01T18:00:00Z", "arrival": "2024-06-02T02:00:00Z", "price": 300, "currency": "USD"},
  {"origin": "CDG", "destination": "FCO", "departure": "2024-06-03T09:00:00Z", "arrival": "2024-06-03T11:00:00Z", "price": 120, "currency": "USD"},
  {"origin": "FCO", "destination": "JFK", "departure": "2024-06-07T09:00:00Z", "arrival": "2024-06-07T19:00:00Z", "price": 400, "currency": "USD"},
  {"origin": "JFK", "destination": "FCO", "departure": "2024-06-01T18:00:00Z", "arrival": "2024-06-02T03:00:00Z", "price": 280, "currency": "USD"}
]`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// quietEnv pins every setting the command reads.
func quietEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvMetricsAddr, "")
	t.Setenv(config.EnvSQLitePath, "")
	t.Setenv(config.EnvSearchMode, "exact")
	t.Setenv(config.EnvTopK, "1")
	t.Setenv(config.EnvSourceInterval, "")
}

func TestDecodeRequest(t *testing.T) {
	req, err := decodeRequest(strings.NewReader(requestJSON))
	require.NoError(t, err)
	require.Len(t, req.Stops, 4)
	require.Equal(t, 2*time.Hour, req.MinLayover)
	require.Equal(t, 120*time.Hour, req.MaxLayover)
	require.Zero(t, req.MaxTripDuration)
	require.Equal(t, trip.NewDay(2024, time.June, 2), req.Stops[1].Window.From)
	require.NoError(t, req.Validate())

	_, err = decodeRequest(strings.NewReader(`{"stops": [], "min_layover": "soon"}`))
	require.ErrorContains(t, err, "min_layover")

	_, err = decodeRequest(strings.NewReader(`{"stopz": []}`))
	require.Error(t, err)
}

func TestRun_JSONLegs(t *testing.T) {
	quietEnv(t)
	code := run([]string{
		"-request", writeFile(t, "trip.json", requestJSON),
		"-legs", writeFile(t, "legs.json", legsJSON),
	})
	require.Equal(t, 0, code)
}

func TestRun_SQLiteSeededFromJSON(t *testing.T) {
	quietEnv(t)
	db := filepath.Join(t.TempDir(), "legs.db")
	reqPath := writeFile(t, "trip.json", requestJSON)

	require.Equal(t, 0, run([]string{"-request", reqPath, "-sqlite", db, "-legs", writeFile(t, "legs.json", legsJSON), "-json"}))
	// The store keeps the legs for later runs.
	require.Equal(t, 0, run([]string{"-request", reqPath, "-sqlite", db}))
}

func TestRun_InfeasibleAndErrors(t *testing.T) {
	quietEnv(t)
	reqPath := writeFile(t, "trip.json", requestJSON)

	onlyOut := `[{"origin": "JFK", "destination": "CDG", "departure": "2024-06-01T18:00:00Z", "arrival": "2024-06-02T02:00:00Z", "price": 300}]`
	require.Equal(t, 2, run([]string{"-request", reqPath, "-legs", writeFile(t, "legs.json", onlyOut)}))

	require.Equal(t, 1, run([]string{"-legs", writeFile(t, "legs.json", legsJSON)}), "missing -request")
	require.Equal(t, 1, run([]string{"-request", reqPath}), "no leg source")
	require.Equal(t, 1, run([]string{"-request", filepath.Join(t.TempDir(), "none.json"), "-legs", "x"}))

	t.Setenv(config.EnvTopK, "0")
	require.Equal(t, 1, run([]string{"-request", reqPath, "-legs", writeFile(t, "legs.json", legsJSON)}))
}

func TestWriteText(t *testing.T) {
	it := trip.NewItinerary([]trip.Leg{{
		Origin: "JFK", Destination: "CDG",
		Departure: time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC),
		Arrival:   time.Date(2024, 6, 2, 2, 0, 0, 0, time.UTC),
		Price:     trip.Amount(300), Currency: "USD",
	}})
	var buf bytes.Buffer
	writeText(&buf, &solver.Result{
		SessionID:   "s-1",
		Status:      solver.StatusOK,
		Itineraries: []trip.Itinerary{it},
		Mode:        optimizer.Bounded,
	})
	out := buf.String()
	require.Contains(t, out, "session s-1: ok (bounded search")
	require.Contains(t, out, "#1 JFK → CDG  300.00 USD  8h0m0s")
	require.Contains(t, out, "JFK→CDG 2024-06-01T18:00→2024-06-02T02:00 300.00")

	buf.Reset()
	writeText(&buf, &solver.Result{
		SessionID: "s-2",
		Status:    solver.StatusInfeasible,
		Report: &solver.Report{
			Kind:    solver.KindInfeasible,
			Message: "optimizer: no feasible itinerary",
			Partial: routegraph.Trace{Location: "CDG", Visited: []string{"JFK", "CDG"}, Price: trip.Amount(300)},
		},
	})
	require.Contains(t, buf.String(), "stuck at CDG after JFK → CDG, 300.00 spent")

	buf.Reset()
	require.NoError(t, writeJSON(&buf, &solver.Result{SessionID: "s-3", Status: solver.StatusOK, Mode: optimizer.Exact}))
	require.Contains(t, buf.String(), `"mode": "exact"`)
}
