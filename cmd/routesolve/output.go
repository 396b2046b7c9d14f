// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/katalvlaran/routesolver/solver"
)

func writeJSON(w io.Writer, res *solver.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(res)
}

func writeText(w io.Writer, res *solver.Result) {
	fmt.Fprintf(w, "session %s: %s (%s search, %d queries, %s)\n",
		res.SessionID, res.Status, res.Mode, res.Prefetch.Queries, res.Elapsed.Round(time.Millisecond))

	if res.Status != solver.StatusOK {
		r := res.Report
		fmt.Fprintf(w, "%s: %s\n", r.Kind, r.Message)
		fmt.Fprintf(w, "stuck at %s after %s, %s spent\n",
			r.Partial.Location, strings.Join(r.Partial.Visited, " → "), r.Partial.Price)
		for _, l := range r.Partial.Legs {
			fmt.Fprintf(w, "    %s\n", l)
		}
		return
	}

	for i, it := range res.Itineraries {
		fmt.Fprintf(w, "#%d %s  %s %s  %s\n", i+1, it.Route(), it.TotalPrice, it.Currency, it.TotalDuration)
		for _, l := range it.Legs {
			fmt.Fprintf(w, "    %s\n", l)
		}
	}
}
