// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

// Package config loads and validates service configuration.
//
// Configuration is layered: struct defaults, then an optional YAML file,
// then REELRANK_-prefixed environment variables (highest priority).
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host"`

	// Port is the listen port.
	Port int `koanf:"port"`

	// ReadTimeout bounds request read time.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds response write time.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimitPerMinute caps requests per client IP per minute.
	// Zero disables rate limiting.
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// DatabaseConfig holds catalog store (DuckDB) settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file path. ":memory:" opens an
	// in-memory database.
	Path string `koanf:"path"`

	// Threads is the DuckDB worker thread count. Zero uses NumCPU.
	Threads int `koanf:"threads"`

	// MaxMemory is the DuckDB memory cap (e.g. "1GB").
	MaxMemory string `koanf:"max_memory"`

	// QueryTimeout bounds individual catalog queries.
	QueryTimeout time.Duration `koanf:"query_timeout"`

	// Seed loads the development seed data into an empty catalog.
	Seed bool `koanf:"seed"`
}

// CacheConfig holds result cache (Badger) settings.
type CacheConfig struct {
	// Enabled toggles the result cache. When disabled the engine
	// computes every request from scratch.
	Enabled bool `koanf:"enabled"`

	// Path is the Badger data directory. Empty uses an in-memory cache.
	Path string `koanf:"path"`

	// GCInterval is how often the Badger value-log GC sweep runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// RecommendConfig holds recommendation engine tunables.
type RecommendConfig struct {
	// ItemTTL is the result cache lifetime for item-based entries.
	ItemTTL time.Duration `koanf:"item_ttl"`

	// GenreTTL is the result cache lifetime for genre-preference
	// entries spanning both kinds.
	GenreTTL time.Duration `koanf:"genre_ttl"`

	// GenreSingleKindTTL is the result cache lifetime for
	// genre-preference entries restricted to one kind. Those queries
	// are more ad hoc per caller, so they expire sooner.
	GenreSingleKindTTL time.Duration `koanf:"genre_single_kind_ttl"`

	// DefaultItemLimit is the default result count for item mode.
	DefaultItemLimit int `koanf:"default_item_limit"`

	// DefaultGenreLimit is the default result count for genre mode.
	DefaultGenreLimit int `koanf:"default_genre_limit"`

	// MaxLimit caps the requested result count in both modes.
	MaxLimit int `koanf:"max_limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file/line in log output.
	Caller bool `koanf:"caller"`
}

// Default returns a Config with all default values applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8480,
			ReadTimeout:        15 * time.Second,
			WriteTimeout:       30 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			RateLimitPerMinute: 300,
			CORSOrigins:        []string{"*"},
		},
		Database: DatabaseConfig{
			Path:         "/data/reelrank.db",
			Threads:      0,
			MaxMemory:    "1GB",
			QueryTimeout: 30 * time.Second,
			Seed:         false,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Path:       "/data/cache",
			GCInterval: 10 * time.Minute,
		},
		Recommend: RecommendConfig{
			ItemTTL:            24 * time.Hour,
			GenreTTL:           12 * time.Hour,
			GenreSingleKindTTL: 6 * time.Hour,
			DefaultItemLimit:   10,
			DefaultGenreLimit:  20,
			MaxLimit:           100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0, got %d", c.Server.RateLimitPerMinute)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("database.query_timeout must be positive, got %v", c.Database.QueryTimeout)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.ItemTTL <= 0 || r.GenreTTL <= 0 || r.GenreSingleKindTTL <= 0 {
		return fmt.Errorf("recommend TTLs must be positive")
	}
	if r.DefaultItemLimit < 1 || r.DefaultGenreLimit < 1 {
		return fmt.Errorf("recommend default limits must be >= 1")
	}
	if r.MaxLimit < r.DefaultItemLimit || r.MaxLimit < r.DefaultGenreLimit {
		return fmt.Errorf("recommend.max_limit %d is below a default limit", r.MaxLimit)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
