// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"splitbridge/internal/resolver"
	"splitbridge/internal/splitwise"
)

// Config holds everything the binaries need to start.
type Config struct {
	ListenAddr       string
	SplitwiseBaseURL string
	SplitwiseToken   string
	MatchThreshold   float64
	DefaultCurrency  string
}

// Default returns the configuration used when no environment overrides
// are set. The access token has no default.
func Default() Config {
	return Config{
		ListenAddr:       ":8080",
		SplitwiseBaseURL: splitwise.DefaultBaseURL,
		MatchThreshold:   resolver.DefaultThreshold,
	}
}

// FromEnv builds a Config from environment variables, keeping defaults
// for anything unset.
func FromEnv() (Config, error) {
	cfg := Default()
	if v := os.Getenv("PORT"); v != "" {
		cfg.ListenAddr = ":" + v
	}
	if v := os.Getenv("SPLITWISE_BASE_URL"); v != "" {
		cfg.SplitwiseBaseURL = v
	}
	cfg.SplitwiseToken = os.Getenv("SPLITWISE_ACCESS_TOKEN")
	if v := os.Getenv("MATCH_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MATCH_THRESHOLD %q: %w", v, err)
		}
		cfg.MatchThreshold = threshold
	}
	if v := os.Getenv("DEFAULT_CURRENCY"); v != "" {
		cfg.DefaultCurrency = v
	}
	return cfg, nil
}

// Validate checks that the configuration can actually run a server.
func (c Config) Validate() error {
	if c.SplitwiseToken == "" {
		return fmt.Errorf("SPLITWISE_ACCESS_TOKEN is required")
	}
	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("MATCH_THRESHOLD must be between 0 and 1, got %v", c.MatchThreshold)
	}
	return nil
}
