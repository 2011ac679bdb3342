// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package catalog

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with a generous timeout for schema
// operations, which may replay a WAL on startup.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createSchema creates the catalog tables and indexes if they don't exist.
func (s *Store) createSchema() error {
	ctx, cancel := schemaContext()
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS titles (
			id          VARCHAR PRIMARY KEY,
			name        VARCHAR NOT NULL,
			kind        VARCHAR NOT NULL CHECK (kind IN ('movie', 'series')),
			year        INTEGER NOT NULL DEFAULT 0,
			popularity  DOUBLE NOT NULL DEFAULT 0 CHECK (popularity >= 0),
			rating      DOUBLE NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 10)
		)`,
		`CREATE SEQUENCE IF NOT EXISTS genre_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS genres (
			id    INTEGER PRIMARY KEY DEFAULT nextval('genre_id_seq'),
			name  VARCHAR NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS title_genres (
			title_id  VARCHAR NOT NULL REFERENCES titles(id),
			genre_id  INTEGER NOT NULL REFERENCES genres(id),
			PRIMARY KEY (title_id, genre_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_titles_kind_popularity ON titles(kind, popularity)`,
		`CREATE INDEX IF NOT EXISTS idx_title_genres_genre ON title_genres(genre_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}

	return nil
}
