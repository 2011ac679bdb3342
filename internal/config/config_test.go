// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package config

import (
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"negative rate limit", func(c *Config) { c.Server.RateLimitPerMinute = -1 }},
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }},
		{"zero item ttl", func(c *Config) { c.Recommend.ItemTTL = 0 }},
		{"negative genre ttl", func(c *Config) { c.Recommend.GenreTTL = -time.Hour }},
		{"zero default limit", func(c *Config) { c.Recommend.DefaultItemLimit = 0 }},
		{"max below default", func(c *Config) { c.Recommend.MaxLimit = 5 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"REELRANK_SERVER_PORT", "server.port"},
		{"REELRANK_DATABASE_PATH", "database.path"},
		{"REELRANK_RECOMMEND_ITEM_TTL", "recommend.item_ttl"},
		{"REELRANK_CACHE_GC_INTERVAL", "cache.gc_interval"},
		{"REELRANK_LOGGING_LEVEL", "logging.level"},
	}

	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REELRANK_SERVER_PORT", "9000")
	t.Setenv("REELRANK_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched fields keep defaults.
	if cfg.Recommend.ItemTTL != 24*time.Hour {
		t.Errorf("Recommend.ItemTTL = %v, want 24h", cfg.Recommend.ItemTTL)
	}
}

func TestAddr(t *testing.T) {
	cfg := Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8480
	if got := cfg.Addr(); got != "127.0.0.1:8480" {
		t.Errorf("Addr() = %q", got)
	}
}
