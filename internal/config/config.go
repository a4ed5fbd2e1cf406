// Package config loads runtime settings from the environment, with optional
// .env support for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the service layer needs to wire the engine to
// its collaborators. Zero values are filled with documented defaults.
type Config struct {
	EbayAppID       string        // EBAY_APP_ID; empty disables the live client
	Marketplace     string        // EBAY_MARKETPLACE, e.g. "ebay.com"
	CachePath       string        // CACHE_PATH
	CacheTTL        time.Duration // CACHE_TTL_MINUTES
	RefreshSchedule string        // REFRESH_CRON, cron spec for keyword refresh
	MaxResults      int           // MAX_RESULTS per keyword query
	RequestTimeout  time.Duration // REQUEST_TIMEOUT_SECONDS
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; a missing .env is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		EbayAppID:       os.Getenv("EBAY_APP_ID"),
		Marketplace:     os.Getenv("EBAY_MARKETPLACE"),
		CachePath:       os.Getenv("CACHE_PATH"),
		RefreshSchedule: os.Getenv("REFRESH_CRON"),
	}

	ttlMin, err := envInt("CACHE_TTL_MINUTES", 60)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = time.Duration(ttlMin) * time.Minute

	cfg.MaxResults, err = envInt("MAX_RESULTS", 50)
	if err != nil {
		return nil, err
	}

	timeoutSec, err := envInt("REQUEST_TIMEOUT_SECONDS", 15)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = time.Duration(timeoutSec) * time.Second

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Marketplace == "" {
		c.Marketplace = "ebay.com"
	}
	if c.CachePath == "" {
		c.CachePath = filepath.Join(os.TempDir(), "ebaypulse_cache.json")
	}
	if c.RefreshSchedule == "" {
		c.RefreshSchedule = "@every 6h"
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 50
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 15 * time.Second
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = time.Hour
	}
}

func envInt(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", name, raw, err)
	}
	return v, nil
}
