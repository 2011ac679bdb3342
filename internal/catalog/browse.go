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

// TitleFilter selects and orders a page of catalog titles.
type TitleFilter struct {
	// Kind restricts to one item kind; empty means both.
	Kind models.ItemKind

	// Genre restricts to titles carrying the genre (case-insensitive).
	Genre string

	// Search matches a case-insensitive substring of the display name.
	Search string

	// YearFrom/YearTo bound the release year; zero means unbounded.
	YearFrom int
	YearTo   int

	// Sort is one of popularity, rating, year, name. Empty sorts by
	// popularity.
	Sort string

	// Limit/Offset page the results. Limit <= 0 defaults to 20.
	Limit  int
	Offset int
}

// sortColumn maps a filter sort key to its ORDER BY clause. Popularity and
// rating sort descending (best first), name and year ascending.
func (f TitleFilter) sortColumn() (string, error) {
	switch f.Sort {
	case "", "popularity":
		return "t.popularity DESC, t.id", nil
	case "rating":
		return "t.rating DESC, t.id", nil
	case "year":
		return "t.year, t.id", nil
	case "name":
		return "t.name, t.id", nil
	default:
		return "", fmt.Errorf("unknown sort key %q", f.Sort)
	}
}

// TitlePage is one page of browse results.
type TitlePage struct {
	Titles []models.Title `json:"titles"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ListTitles returns a filtered, sorted page of titles with their genres,
// plus the total match count for pagination.
func (s *Store) ListTitles(ctx context.Context, filter TitleFilter) (*TitlePage, error) {
	order, err := filter.sortColumn()
	if err != nil {
		return nil, err
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	where, args := filter.whereClause()

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	var total int
	countQuery := `SELECT COUNT(*) FROM titles t` + where
	if err := s.conn.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count titles: %w", err)
	}

	query := `
	SELECT t.id, t.name, t.kind, t.year, t.popularity, t.rating,
	       COALESCE((
		SELECT string_agg(g.name, '|' ORDER BY g.name)
		FROM title_genres tg
		JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = t.id
	       ), '') AS genres
	FROM titles t` + where + `
	ORDER BY ` + order + `
	LIMIT ? OFFSET ?`

	rows, err := s.conn.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("query titles: %w", err)
	}
	defer rows.Close()

	titles := []models.Title{}
	for rows.Next() {
		var (
			title  models.Title
			kind   string
			joined string
		)
		if err := rows.Scan(&title.ID, &title.Name, &kind, &title.Year,
			&title.Popularity, &title.Rating, &joined); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		title.Kind = models.ItemKind(kind)
		if joined == "" {
			title.Genres = []string{}
		} else {
			title.Genres = strings.Split(joined, genreSeparator)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate titles: %w", err)
	}

	return &TitlePage{Titles: titles, Total: total, Limit: limit, Offset: offset}, nil
}

// whereClause builds the WHERE fragment and arguments for the filter.
func (f TitleFilter) whereClause() (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if f.Kind != "" {
		conds = append(conds, "t.kind = ?")
		args = append(args, string(f.Kind))
	}
	if f.Genre != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM title_genres tg
			JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND lower(g.name) = ?
		)`)
		args = append(args, strings.ToLower(f.Genre))
	}
	if f.Search != "" {
		conds = append(conds, "lower(t.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
	}
	if f.YearFrom > 0 {
		conds = append(conds, "t.year >= ?")
		args = append(args, f.YearFrom)
	}
	if f.YearTo > 0 {
		conds = append(conds, "t.year <= ?")
		args = append(args, f.YearTo)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
