// SPDX-License-Identifier: MIT

// Command routesolve finds the cheapest multi-stop itinerary for a request
// file against a JSON or SQLite leg store.
//
//	routesolve -request trip.json -legs legs.json
//	routesolve -request trip.json -sqlite legs.db [-legs seed.json]
//
// Settings come from the environment (and an optional .env file); see
// package config. Exit status is 0 when an itinerary was found, 2 when the
// request is infeasible and 1 on error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/routesolver/config"
	"github.com/katalvlaran/routesolver/legrepo"
	"github.com/katalvlaran/routesolver/logger"
	"github.com/katalvlaran/routesolver/metrics"
	"github.com/katalvlaran/routesolver/solver"
	"github.com/katalvlaran/routesolver/source"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("routesolve", flag.ContinueOnError)
	var (
		requestPath = fs.String("request", "", "request JSON file (required)")
		legsPath    = fs.String("legs", "", "legs JSON file; seeds -sqlite when both are given")
		sqlitePath  = fs.String("sqlite", "", "SQLite leg store (default $SQLITE_PATH)")
		envFile     = fs.String("env", "", "env file to read instead of .env")
		asJSON      = fs.Bool("json", false, "print the result as JSON")
	)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *requestPath == "" {
		fmt.Fprintln(os.Stderr, "routesolve: -request is required")
		fs.Usage()
		return 1
	}

	var (
		cfg *config.Config
		err error
	)
	if *envFile != "" {
		cfg, err = config.LoadFrom(*envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "routesolve:", err)
		return 1
	}
	if *sqlitePath != "" {
		cfg.SQLitePath = *sqlitePath
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "routesolve:", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req, err := loadRequest(*requestPath)
	if err != nil {
		log.Error("Failed to load request", "path", *requestPath, "error", err)
		return 1
	}

	src, closeSrc, err := openSource(ctx, cfg, *legsPath, log)
	if err != nil {
		log.Error("Failed to open leg source", "error", err)
		return 1
	}
	defer closeSrc()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, "routesolver")
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	opts, err := solver.ConfigOptions(cfg)
	if err != nil {
		log.Error("Invalid configuration", "error", err)
		return 1
	}
	opts = append(opts, solver.WithLogger(log), solver.WithMetrics(m))
	session := solver.New(src, opts...)

	res, err := session.Solve(ctx, req)
	if err != nil {
		log.Error("Solve failed", "error", err)
		return 1
	}

	if *asJSON {
		if err = writeJSON(os.Stdout, res); err != nil {
			log.Error("Failed to write result", "error", err)
			return 1
		}
	} else {
		writeText(os.Stdout, res)
	}
	if res.Status != solver.StatusOK {
		return 2
	}

	return 0
}

// openSource builds the leg source from flags and configuration.
func openSource(ctx context.Context, cfg *config.Config, legsPath string, log logger.Logger) (legrepo.Source, func(), error) {
	var (
		src     legrepo.Source
		closeFn = func() {}
	)
	switch {
	case cfg.SQLitePath != "":
		db, err := source.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		closeFn = func() { _ = db.Close() }
		if legsPath != "" {
			legs, err := source.ReadFile(legsPath)
			if err != nil {
				closeFn()
				return nil, nil, err
			}
			n, err := db.SaveLegs(ctx, legs)
			if err != nil {
				closeFn()
				return nil, nil, err
			}
			log.Info("Seeded leg store", "path", cfg.SQLitePath, "inserted", n)
		}
		src = db
	case legsPath != "":
		s, err := source.LoadFile(legsPath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Loaded leg file", "path", legsPath, "legs", s.Len())
		src = s
	default:
		return nil, nil, errors.New("no leg source: pass -legs or -sqlite, or set SQLITE_PATH")
	}

	if cfg.SourceInterval > 0 {
		src = source.NewRateLimited(src, cfg.SourceInterval, 1)
	}

	return src, closeFn, nil
}

func serveMetrics(addr string, reg *prometheus.Registry, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", "error", err)
		}
	}()

	return srv
}
