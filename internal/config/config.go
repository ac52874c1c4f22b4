// Package config loads analysis defaults from the environment. A .env
// file, when present, is read first; real environment variables win.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"expdes/internal/errors"
)

// Config holds the application defaults.
type Config struct {
	// Alpha is the significance level used where none is given.
	Alpha float64
	// PostHoc names the default pairwise comparison test.
	PostHoc string
	// LogLevel is the logger verbosity name (ERROR, WARN, INFO, DEBUG).
	LogLevel string
}

// Load reads configuration from a .env file and the environment and
// validates it.
func Load() (*Config, error) {
	// Missing .env is fine, the environment alone is enough.
	_ = godotenv.Load()

	config := &Config{
		Alpha:    0.05,
		PostHoc:  "tukey",
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if raw := os.Getenv("EXPDES_ALPHA"); raw != "" {
		alpha, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse EXPDES_ALPHA")
		}
		if alpha <= 0 || alpha >= 1 {
			return nil, errors.ConfigInvalid("EXPDES_ALPHA must be in (0, 1)")
		}
		config.Alpha = alpha
	}

	if name := os.Getenv("EXPDES_POSTHOC"); name != "" {
		config.PostHoc = name
	}

	return config, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
