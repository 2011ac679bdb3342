// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/reelrank/reelrank/internal/models"
	"github.com/reelrank/reelrank/internal/recommend"
)

// genreSeparator joins aggregated genre names in candidate queries. Genre
// names never contain it (enforced on write).
const genreSeparator = "|"

// TitleGenres returns the genre labels of one title, ordered by name.
// A missing title reports an error wrapping recommend.ErrNotFound; a title
// with no genres returns an empty slice.
func (s *Store) TitleGenres(ctx context.Context, id string) ([]string, error) {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	var exists bool
	err := s.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM titles WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check title existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("title %s: %w", id, recommend.ErrNotFound)
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT g.name
		FROM title_genres tg
		JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = ?
		ORDER BY g.name`, id)
	if err != nil {
		return nil, fmt.Errorf("query title genres: %w", err)
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}

	return genres, nil
}

// AllGenres returns every genre currently attached to at least one title,
// ordered by name. The alphabetical ordering is what makes indicator
// vectors built in the same request comparable.
func (s *Store) AllGenres(ctx context.Context) ([]string, error) {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	rows, err := s.conn.QueryContext(ctx, `
		SELECT DISTINCT g.name
		FROM genres g
		JOIN title_genres tg ON tg.genre_id = g.id
		ORDER BY g.name`)
	if err != nil {
		return nil, fmt.Errorf("query genre universe: %w", err)
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre universe: %w", err)
	}

	return genres, nil
}

// candidateColumns is the select list shared by the candidate queries: the
// title row plus its genre names aggregated into one column. The inner
// join restricts results to titles with at least one genre.
const candidateColumns = `
	SELECT t.id, t.name, t.kind, t.year, t.popularity, t.rating,
	       string_agg(g.name, '|' ORDER BY g.name) AS genres
	FROM titles t
	JOIN title_genres tg ON tg.title_id = t.id
	JOIN genres g ON g.id = tg.genre_id`

// CandidatesByKind returns up to limit rated titles of the given kind,
// excluding excludeID, ordered by popularity descending.
func (s *Store) CandidatesByKind(ctx context.Context, kind models.ItemKind, excludeID string, limit int) ([]models.Title, error) {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	query := candidateColumns + `
	WHERE t.kind = ? AND t.id <> ? AND t.rating > 0
	GROUP BY t.id, t.name, t.kind, t.year, t.popularity, t.rating
	ORDER BY t.popularity DESC
	LIMIT ?`

	rows, err := s.conn.QueryContext(ctx, query, string(kind), excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("query candidates by kind: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

// CandidatesByGenres returns up to limit rated titles of the given kind
// having at least one genre in the set (case-insensitive), ordered by
// popularity descending.
func (s *Store) CandidatesByGenres(ctx context.Context, kind models.ItemKind, genres []string, limit int) ([]models.Title, error) {
	if len(genres) == 0 {
		return nil, fmt.Errorf("genre set is empty")
	}

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(genres)), ",")
	query := candidateColumns + `
	WHERE t.kind = ? AND t.rating > 0
	  AND EXISTS (
		SELECT 1
		FROM title_genres tg2
		JOIN genres g2 ON g2.id = tg2.genre_id
		WHERE tg2.title_id = t.id AND lower(g2.name) IN (` + placeholders + `)
	  )
	GROUP BY t.id, t.name, t.kind, t.year, t.popularity, t.rating
	ORDER BY t.popularity DESC
	LIMIT ?`

	args := make([]interface{}, 0, len(genres)+2)
	args = append(args, string(kind))
	for _, g := range genres {
		args = append(args, strings.ToLower(strings.TrimSpace(g)))
	}
	args = append(args, limit)

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates by genres: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

// scanCandidates reads candidate rows, splitting the aggregated genre
// column back into a slice.
func scanCandidates(rows *sql.Rows) ([]models.Title, error) {
	var titles []models.Title
	for rows.Next() {
		var (
			title  models.Title
			kind   string
			joined string
		)
		if err := rows.Scan(&title.ID, &title.Name, &kind, &title.Year,
			&title.Popularity, &title.Rating, &joined); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		title.Kind = models.ItemKind(kind)
		title.Genres = strings.Split(joined, genreSeparator)
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return titles, nil
}

// GetTitle returns one title with its genres. Reports an error wrapping
// recommend.ErrNotFound if the title doesn't exist.
func (s *Store) GetTitle(ctx context.Context, id string) (models.Title, error) {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	var (
		title models.Title
		kind  string
	)
	err := s.conn.QueryRowContext(ctx, `
		SELECT id, name, kind, year, popularity, rating
		FROM titles WHERE id = ?`, id).
		Scan(&title.ID, &title.Name, &kind, &title.Year, &title.Popularity, &title.Rating)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Title{}, fmt.Errorf("title %s: %w", id, recommend.ErrNotFound)
	}
	if err != nil {
		return models.Title{}, fmt.Errorf("query title: %w", err)
	}
	title.Kind = models.ItemKind(kind)

	genres, err := s.TitleGenres(ctx, id)
	if err != nil {
		return models.Title{}, err
	}
	title.Genres = genres

	return title, nil
}

// GenreCount is one genre with its title usage count.
type GenreCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GenresWithCounts returns all in-use genres with the number of titles
// carrying each, ordered by count descending then name.
func (s *Store) GenresWithCounts(ctx context.Context) ([]GenreCount, error) {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	rows, err := s.conn.QueryContext(ctx, `
		SELECT g.name, COUNT(tg.title_id) AS title_count
		FROM genres g
		JOIN title_genres tg ON tg.genre_id = g.id
		GROUP BY g.name
		ORDER BY title_count DESC, g.name`)
	if err != nil {
		return nil, fmt.Errorf("query genre counts: %w", err)
	}
	defer rows.Close()

	var counts []GenreCount
	for rows.Next() {
		var gc GenreCount
		if err := rows.Scan(&gc.Name, &gc.Count); err != nil {
			return nil, fmt.Errorf("scan genre count: %w", err)
		}
		counts = append(counts, gc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre counts: %w", err)
	}

	return counts, nil
}

var _ recommend.CatalogStore = (*Store)(nil)
