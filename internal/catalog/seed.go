// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package catalog

import (
	"context"
	"fmt"

	"github.com/reelrank/reelrank/internal/models"
)

// Seed loads a small development catalog into an empty store. A non-empty
// store is left untouched.
func (s *Store) Seed(ctx context.Context) error {
	queryCtx, cancel := s.queryContext(ctx)
	defer cancel()

	var count int
	if err := s.conn.QueryRowContext(queryCtx, `SELECT COUNT(*) FROM titles`).Scan(&count); err != nil {
		return fmt.Errorf("count titles: %w", err)
	}
	if count > 0 {
		s.logger.Debug().Int("titles", count).Msg("catalog not empty, skipping seed")
		return nil
	}

	for _, title := range seedTitles {
		if err := s.UpsertTitle(ctx, title); err != nil {
			return fmt.Errorf("seed title %s: %w", title.ID, err)
		}
	}

	s.logger.Info().Int("titles", len(seedTitles)).Msg("seeded development catalog")
	return nil
}

var seedTitles = []models.Title{
	{ID: "mv-001", Name: "Event Horizon Run", Kind: models.KindMovie, Year: 2019, Popularity: 88.4, Rating: 7.6, Genres: []string{"Action", "Sci-Fi"}},
	{ID: "mv-002", Name: "Starfall Protocol", Kind: models.KindMovie, Year: 2021, Popularity: 92.1, Rating: 8.1, Genres: []string{"Action", "Sci-Fi", "Thriller"}},
	{ID: "mv-003", Name: "The Quiet Orchard", Kind: models.KindMovie, Year: 2018, Popularity: 54.3, Rating: 7.9, Genres: []string{"Drama"}},
	{ID: "mv-004", Name: "Midnight Ledger", Kind: models.KindMovie, Year: 2020, Popularity: 71.0, Rating: 6.8, Genres: []string{"Crime", "Thriller"}},
	{ID: "mv-005", Name: "Paper Lanterns", Kind: models.KindMovie, Year: 2017, Popularity: 47.5, Rating: 7.2, Genres: []string{"Drama", "Romance"}},
	{ID: "mv-006", Name: "Gag Reflex", Kind: models.KindMovie, Year: 2022, Popularity: 66.9, Rating: 6.4, Genres: []string{"Comedy"}},
	{ID: "mv-007", Name: "Orbital Debris", Kind: models.KindMovie, Year: 2023, Popularity: 81.2, Rating: 7.0, Genres: []string{"Sci-Fi", "Thriller"}},
	{ID: "mv-008", Name: "The Last Matinee", Kind: models.KindMovie, Year: 2016, Popularity: 38.7, Rating: 0, Genres: []string{"Horror"}},
	{ID: "sr-001", Name: "Meridian Station", Kind: models.KindSeries, Year: 2020, Popularity: 94.8, Rating: 8.6, Genres: []string{"Action", "Sci-Fi", "Drama"}},
	{ID: "sr-002", Name: "Cold Harbor", Kind: models.KindSeries, Year: 2019, Popularity: 76.3, Rating: 8.2, Genres: []string{"Crime", "Drama", "Thriller"}},
	{ID: "sr-003", Name: "Flatshare", Kind: models.KindSeries, Year: 2021, Popularity: 58.9, Rating: 7.1, Genres: []string{"Comedy", "Romance"}},
	{ID: "sr-004", Name: "The Archivists", Kind: models.KindSeries, Year: 2022, Popularity: 63.4, Rating: 7.8, Genres: []string{"Drama", "Mystery"}},
	{ID: "sr-005", Name: "Signal Lost", Kind: models.KindSeries, Year: 2023, Popularity: 85.0, Rating: 7.4, Genres: []string{"Sci-Fi", "Horror", "Mystery"}},
}
