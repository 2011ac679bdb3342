// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/reelrank/reelrank/internal/models"
)

// UpsertTitle inserts or replaces a title row and its genre associations.
// Used by the seed loader and by import tooling; the recommendation core
// itself never writes.
func (s *Store) UpsertTitle(ctx context.Context, title models.Title) error {
	if title.ID == "" {
		return fmt.Errorf("title id is required")
	}
	if !title.Kind.Valid() {
		return fmt.Errorf("unknown item kind %q", title.Kind)
	}
	for _, g := range title.Genres {
		if strings.Contains(g, genreSeparator) {
			return fmt.Errorf("genre %q contains reserved separator %q", g, genreSeparator)
		}
	}

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO titles (id, name, kind, year, popularity, rating)
		VALUES (?, ?, ?, ?, ?, ?)`,
		title.ID, title.Name, string(title.Kind), title.Year, title.Popularity, title.Rating)
	if err != nil {
		return fmt.Errorf("upsert title: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM title_genres WHERE title_id = ?`, title.ID); err != nil {
		return fmt.Errorf("clear title genres: %w", err)
	}

	for _, genre := range title.Genres {
		genre = strings.TrimSpace(genre)
		if genre == "" {
			continue
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO genres (name) VALUES (?)
			ON CONFLICT (name) DO NOTHING`, genre); err != nil {
			return fmt.Errorf("upsert genre %q: %w", genre, err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO title_genres (title_id, genre_id)
			SELECT ?, id FROM genres WHERE name = ?`, title.ID, genre); err != nil {
			return fmt.Errorf("link genre %q: %w", genre, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit title upsert: %w", err)
	}
	return nil
}

// DeleteTitle removes a title and its genre associations. Genres left
// with no titles simply drop out of the universe on the next request.
func (s *Store) DeleteTitle(ctx context.Context, id string) error {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM title_genres WHERE title_id = ?`, id); err != nil {
		return fmt.Errorf("delete title genres: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM titles WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete title: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit title delete: %w", err)
	}
	return nil
}
