// SPDX-License-Identifier: MIT

// Package config loads routesolver settings from the environment, after
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig wraps every validation and parse failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment variable names.
const (
	EnvTopK                 = "ROUTESOLVER_TOP_K"
	EnvMaxConcurrentFetches = "ROUTESOLVER_MAX_CONCURRENT_FETCHES"
	EnvSearchMode           = "ROUTESOLVER_SEARCH_MODE"
	EnvMaxExactStops        = "ROUTESOLVER_MAX_EXACT_STOPS"
	EnvMaxNodes             = "ROUTESOLVER_MAX_NODES"
	EnvFetchTimeout         = "ROUTESOLVER_FETCH_TIMEOUT"
	EnvFetchRetries         = "ROUTESOLVER_FETCH_RETRIES"
	EnvRetryBackoff         = "ROUTESOLVER_RETRY_BACKOFF"
	EnvSourceInterval       = "ROUTESOLVER_SOURCE_INTERVAL"
	EnvLogLevel             = "LOG_LEVEL"
	EnvMetricsAddr          = "METRICS_ADDR"
	EnvSQLitePath           = "SQLITE_PATH"
)

// Config holds all configuration for a solver process.
type Config struct {
	// Search
	TopK                 int
	MaxConcurrentFetches int
	SearchMode           string // "exact" or "bounded"
	MaxExactStops        int
	MaxNodes             int

	// Pricing source
	FetchTimeout   time.Duration
	FetchRetries   int
	RetryBackoff   time.Duration
	SourceInterval time.Duration // minimum spacing between source calls; 0 disables
	SQLitePath     string

	// Observability
	LogLevel    string
	MetricsAddr string
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		TopK:                 1,
		MaxConcurrentFetches: 4,
		SearchMode:           "exact",
		MaxExactStops:        12,
		MaxNodes:             1 << 20,
		FetchTimeout:         10 * time.Second,
		FetchRetries:         2,
		RetryBackoff:         100 * time.Millisecond,
		LogLevel:             "info",
	}
}

// Load reads .env (if present) into the process environment and then
// builds the configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	return build(os.LookupEnv)
}

// LoadFrom builds the configuration from the given env files without
// touching the process environment. Variables already set in the
// environment take precedence over the files.
func LoadFrom(files ...string) (*Config, error) {
	vars, err := godotenv.Read(files...)
	if err != nil {
		return nil, fmt.Errorf("config: read env files: %w", err)
	}

	return build(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]

		return v, ok
	})
}

func build(lookup func(string) (string, bool)) (*Config, error) {
	e := env{lookup: lookup}
	def := Default()
	cfg := &Config{
		TopK:                 e.integer(EnvTopK, def.TopK),
		MaxConcurrentFetches: e.integer(EnvMaxConcurrentFetches, def.MaxConcurrentFetches),
		SearchMode:           strings.ToLower(e.str(EnvSearchMode, def.SearchMode)),
		MaxExactStops:        e.integer(EnvMaxExactStops, def.MaxExactStops),
		MaxNodes:             e.integer(EnvMaxNodes, def.MaxNodes),

		FetchTimeout:   e.duration(EnvFetchTimeout, def.FetchTimeout),
		FetchRetries:   e.integer(EnvFetchRetries, def.FetchRetries),
		RetryBackoff:   e.duration(EnvRetryBackoff, def.RetryBackoff),
		SourceInterval: e.duration(EnvSourceInterval, def.SourceInterval),
		SQLitePath:     e.str(EnvSQLitePath, def.SQLitePath),

		LogLevel:    e.str(EnvLogLevel, def.LogLevel),
		MetricsAddr: e.str(EnvMetricsAddr, def.MetricsAddr),
	}
	if len(e.errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(e.errs...))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects out-of-range values.
func (c *Config) Validate() error {
	var problems []string
	if c.TopK < 1 {
		problems = append(problems, "top_k must be at least 1")
	}
	if c.MaxConcurrentFetches < 1 {
		problems = append(problems, "max_concurrent_fetches must be at least 1")
	}
	if c.SearchMode != "exact" && c.SearchMode != "bounded" {
		problems = append(problems, fmt.Sprintf("search_mode %q is neither exact nor bounded", c.SearchMode))
	}
	if c.MaxExactStops < 2 {
		problems = append(problems, "max_exact_stops must be at least 2")
	}
	if c.MaxNodes < 1 {
		problems = append(problems, "max_nodes must be at least 1")
	}
	if c.FetchTimeout < 0 || c.RetryBackoff < 0 || c.SourceInterval < 0 {
		problems = append(problems, "durations must not be negative")
	}
	if c.FetchRetries < 0 {
		problems = append(problems, "fetch_retries must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

// env reads typed values and collects parse errors.
type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) str(key, defaultValue string) string {
	v, ok := e.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return defaultValue
	}

	return strings.TrimSpace(v)
}

func (e *env) integer(key string, defaultValue int) int {
	s := e.str(key, "")
	if s == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}

	return v
}

// duration accepts Go duration syntax ("250ms", "10s") or a bare integer
// number of milliseconds.
func (e *env) duration(key string, defaultValue time.Duration) time.Duration {
	s := e.str(key, "")
	if s == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}

	return v
}
