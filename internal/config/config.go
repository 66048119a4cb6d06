// Package config resolves the CLI defaults from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvWorkers   = "TEXEL_WORKERS"
	EnvLogLevel  = "TEXEL_LOG_LEVEL"
	EnvOutputDir = "TEXEL_OUTPUT_DIR"
	EnvSeed      = "TEXEL_SEED"
)

// MaxWorkers sets the maximum number of concurrently running workers.
const MaxWorkers = 20

// Config holds the defaults the command line flags start from.
type Config struct {
	Workers   int
	LogLevel  string
	OutputDir string
	// Seed is nil when noise should be seeded from the clock.
	Seed *uint64
}

// Load reads the given .env files (".env" when none is given) into the process
// environment without overriding already set variables, then resolves the Config.
// A missing .env file is not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("could not load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv resolves the Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Workers:   runtime.NumCPU(),
		LogLevel:  getEnv(EnvLogLevel, "info"),
		OutputDir: getEnv(EnvOutputDir, "output"),
	}

	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", EnvWorkers, v)
		}
		cfg.Workers = n
	}
	cfg.Workers = ClampWorkers(cfg.Workers)

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an unsigned number", EnvSeed, v)
		}
		cfg.Seed = &seed
	}

	return cfg, nil
}

// ClampWorkers falls back to the number of CPUs for worker counts outside [1, MaxWorkers].
func ClampWorkers(n int) int {
	if n <= 0 || n > MaxWorkers {
		return min(runtime.NumCPU(), MaxWorkers)
	}
	return n
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
