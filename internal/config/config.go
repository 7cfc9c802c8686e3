// Package config loads cmd/shmq-host's runtime configuration from the
// environment (and an optional .env file), the way operators expect to
// tune a long-running host process without recompiling it.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full set of environment-tunable knobs for the demo
// host binary. Field tags follow caarlos0/env conventions.
type Config struct {
	// RegionSizeBytes is the size of the backing region the host maps
	// (via an anonymous shared mmap in this demo) before calling lgmp.Init.
	RegionSizeBytes int `env:"LGMP_REGION_SIZE_BYTES" envDefault:"16777216"`

	// ProcessIntervalMS is how often the GC/liveness pass (Process)
	// runs, driven by a ticker in the host's main loop.
	ProcessIntervalMS int `env:"LGMP_PROCESS_INTERVAL_MS" envDefault:"25"`

	// LogLevel is one of debug|info|warn|error.
	LogLevel string `env:"LGMP_LOG_LEVEL" envDefault:"info"`

	// LogPretty switches the console writer on for interactive runs.
	LogPretty bool `env:"LGMP_LOG_PRETTY" envDefault:"false"`

	// MetricsAddr, if non-empty, serves Prometheus metrics at :addr/metrics.
	MetricsAddr string `env:"LGMP_METRICS_ADDR" envDefault:""`
}

// Load reads a .env file if present (ignoring its absence) and then
// parses the process environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: loading .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}
	return cfg, nil
}
