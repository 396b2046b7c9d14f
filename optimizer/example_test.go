// SPDX-License-Identifier: MIT

package optimizer_test

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/routesolver/legrepo"
	"github.com/katalvlaran/routesolver/optimizer"
	"github.com/katalvlaran/routesolver/routegraph"
	"github.com/katalvlaran/routesolver/trip"
)

// ExampleOptimize plans New York → Paris → Rome → New York, where Paris
// and Rome may be visited in either order.
func ExampleOptimize() {
	day := trip.NewDay(2024, time.June, 1)
	leg := func(org, dst string, dep time.Time, hours int, price float64) trip.Leg {
		return trip.Leg{
			Origin: org, Destination: dst,
			Departure: dep, Arrival: dep.Add(time.Duration(hours) * time.Hour),
			Price: trip.Amount(price), Currency: "USD",
		}
	}
	evening := func(d int) time.Time { return day.AddDays(d).Start().Add(18 * time.Hour) }
	morning := func(d int) time.Time { return day.AddDays(d).Start().Add(9 * time.Hour) }

	repo := legrepo.New(nil)
	repo.Ingest([]trip.Leg{
		leg("JFK", "CDG", evening(0), 8, 300),
		leg("JFK", "CDG", evening(0), 9, 410),
		leg("CDG", "FCO", morning(2), 2, 120),
		leg("FCO", "JFK", morning(6), 10, 400),
		leg("JFK", "FCO", evening(0), 9, 280),
		leg("FCO", "CDG", morning(3), 2, 90),
	})

	req := &trip.Request{
		Stops: []trip.Stop{
			{Location: "JFK", Window: trip.SingleDay(day)},
			{Location: "CDG", Window: trip.DateRange{From: day.AddDays(1), To: day.AddDays(3)}},
			{Location: "FCO", Window: trip.DateRange{From: day.AddDays(2), To: day.AddDays(5)}},
			{Location: "JFK", Window: trip.SingleDay(day.AddDays(6))},
		},
		MinLayover: 2 * time.Hour,
	}

	g, err := routegraph.New(req, repo)
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := optimizer.Optimize(context.Background(), g, optimizer.DefaultOptions())
	if err != nil {
		fmt.Println(err)
		return
	}
	best := res.Itineraries[0]
	fmt.Println(best.Route(), best.TotalPrice)
	for _, l := range best.Legs {
		fmt.Println(l)
	}
	// Output:
	// JFK → CDG → FCO → JFK 820.00
	// JFK→CDG 2024-06-01T18:00→2024-06-02T02:00 300.00
	// CDG→FCO 2024-06-03T09:00→2024-06-03T11:00 120.00
	// FCO→JFK 2024-06-07T09:00→2024-06-07T19:00 400.00
}
