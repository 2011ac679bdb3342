// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

// Package catalog is the DuckDB-backed catalog store: titles, genres, and
// the title-genre junction, with the read queries the recommendation
// engine and the browse API consume.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/reelrank/reelrank/internal/config"
)

// Store wraps the DuckDB connection and provides catalog data access.
type Store struct {
	conn   *sql.DB
	cfg    *config.DatabaseConfig
	logger zerolog.Logger
}

// New opens the catalog database and initializes the schema.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *config.DatabaseConfig, logger zerolog.Logger) (*Store, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	if cfg.Path != ":memory:" {
		dir := filepath.Dir(cfg.Path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create database directory %s: %w", dir, err)
			}
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, threads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}

	store := &Store{
		conn:   conn,
		cfg:    cfg,
		logger: logger.With().Str("component", "catalog").Logger(),
	}

	if err := store.createSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	store.logger.Info().Str("path", cfg.Path).Msg("catalog store ready")
	return store, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Ping verifies database connectivity, for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// queryContext derives a context bounded by the configured query timeout.
func (s *Store) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
