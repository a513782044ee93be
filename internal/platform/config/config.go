// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first (best effort) through 'joho/godotenv', so variables already present
in the process environment always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (store, cache, server) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/pokedex/pkg/convert"
)

// envFiles are loaded in order. godotenv never overrides variables that are
// already set, so the first file to define a key wins.
var envFiles = []string{".env.local", ".env"}

// # Configuration Schema

// Config holds all runtime configuration for the Pokédex API server and seeder.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Catalog document and asset directories
	DBPath    string `env:"DB_PATH"    envDefault:"db.json"`
	ImagesDir string `env:"IMAGES_DIR" envDefault:"images"`
	PublicDir string `env:"PUBLIC_DIR" envDefault:"public"`

	// Optional read-through cache (Redis). Empty disables caching.
	RedisURL        string        `env:"REDIS_URL"`
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Missing dotenv files are not an error.
	for _, file := range envFiles {
		_ = godotenv.Load(file)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// PORT is the conventional variable on most PaaS hosts.
	if cfg.ServerPort == "" {
		cfg.ServerPort = os.Getenv("PORT")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8000"
	}

	if cfg.CatalogCacheTTL <= 0 {
		return nil, fmt.Errorf("config: CATALOG_CACHE_TTL must be positive, got %s", cfg.CatalogCacheTTL)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the trimmed, non-empty entries of EXTRA_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	return convert.List(c.ExtraOrigins)
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
