// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelrank/reelrank/internal/config"
	"github.com/reelrank/reelrank/internal/models"
	"github.com/reelrank/reelrank/internal/recommend"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(&config.DatabaseConfig{
		Path:         ":memory:",
		MaxMemory:    "256MB",
		QueryTimeout: 10 * time.Second,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return store
}

func mustUpsert(t *testing.T, store *Store, titles ...models.Title) {
	t.Helper()
	for _, title := range titles {
		if err := store.UpsertTitle(context.Background(), title); err != nil {
			t.Fatalf("UpsertTitle(%s) error = %v", title.ID, err)
		}
	}
}

func fixtureTitles() []models.Title {
	return []models.Title{
		{ID: "m1", Name: "Alpha Strike", Kind: models.KindMovie, Year: 2020, Popularity: 90, Rating: 8.0, Genres: []string{"Sci-Fi", "Action"}},
		{ID: "m2", Name: "Beta Wave", Kind: models.KindMovie, Year: 2021, Popularity: 80, Rating: 7.0, Genres: []string{"Action", "Comedy"}},
		{ID: "m3", Name: "Gamma Ray", Kind: models.KindMovie, Year: 2019, Popularity: 70, Rating: 0, Genres: []string{"Action"}},
		{ID: "m4", Name: "Delta Blues", Kind: models.KindMovie, Year: 2018, Popularity: 60, Rating: 6.5, Genres: nil},
		{ID: "s1", Name: "Epsilon Files", Kind: models.KindSeries, Year: 2022, Popularity: 95, Rating: 8.5, Genres: []string{"Drama", "Sci-Fi"}},
	}
}

func TestTitleGenres(t *testing.T) {
	store := newTestStore(t)
	mustUpsert(t, store, fixtureTitles()...)
	ctx := context.Background()

	genres, err := store.TitleGenres(ctx, "m1")
	if err != nil {
		t.Fatalf("TitleGenres() error = %v", err)
	}
	// Alphabetical ordering regardless of insert order.
	if !reflect.DeepEqual(genres, []string{"Action", "Sci-Fi"}) {
		t.Errorf("genres = %v, want [Action Sci-Fi]", genres)
	}

	// Genre-less title: empty slice, no error.
	genres, err = store.TitleGenres(ctx, "m4")
	if err != nil {
		t.Fatalf("TitleGenres(genre-less) error = %v", err)
	}
	if len(genres) != 0 {
		t.Errorf("genres = %v, want empty", genres)
	}

	// Missing title: ErrNotFound.
	if _, err := store.TitleGenres(ctx, "nope"); !errors.Is(err, recommend.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestAllGenres(t *testing.T) {
	store := newTestStore(t)
	mustUpsert(t, store, fixtureTitles()...)

	genres, err := store.AllGenres(context.Background())
	if err != nil {
		t.Fatalf("AllGenres() error = %v", err)
	}
	want := []string{"Action", "Comedy", "Drama", "Sci-Fi"}
	if !reflect.DeepEqual(genres, want) {
		t.Errorf("universe = %v, want %v", genres, want)
	}
}

func TestAllGenresDropsOrphans(t *testing.T) {
	store := newTestStore(t)
	mustUpsert(t, store, fixtureTitles()...)
	ctx := context.Background()

	// Removing the only Comedy title drops Comedy from the universe.
	if err := store.DeleteTitle(ctx, "m2"); err != nil {
		t.Fatalf("DeleteTitle() error = %v", err)
	}

	genres, err := store.AllGenres(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range genres {
		if g == "Comedy" {
			t.Error("orphaned genre still in universe")
		}
	}
}

func TestCandidatesByKind(t *testing.T) {
	store := newTestStore(t)
	mustUpsert(t, store, fixtureTitles()...)

	candidates, err := store.CandidatesByKind(context.Background(), models.KindMovie, "m1", 10)
	if err != nil {
		t.Fatalf("CandidatesByKind() error = %v", err)
	}

	// m1 excluded as source, m3 unrated, m4 genre-less, s1 wrong kind.
	if len(candidates) != 1 || candidates[0].ID != "m2" {
		t.Fatalf("candidates = %+v, want just m2", candidates)
	}
	if !reflect.DeepEqual(candidates[0].Genres, []string{"Action", "Comedy"}) {
		t.Errorf("candidate genres = %v", candidates[0].Genres)
	}
	if candidates[0].Kind != models.KindMovie {
		t.Errorf("candidate kind = %q", candidates[0].Kind)
	}
}

func TestCandidatesByKindPopularityOrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	var titles []models.Title
	for i := 0; i < 5; i++ {
		titles = append(titles, models.Title{
			ID: string(rune('a' + i)), Name: "T", Kind: models.KindMovie,
			Popularity: float64(10 * (i + 1)), Rating: 7, Genres: []string{"Action"},
		})
	}
	mustUpsert(t, store, titles...)

	candidates, err := store.CandidatesByKind(context.Background(), models.KindMovie, "zz", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates, want 3", len(candidates))
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i-1].Popularity < candidates[i].Popularity {
			t.Errorf("not ordered by popularity desc at %d", i)
		}
	}
	if candidates[0].ID != "e" {
		t.Errorf("top candidate = %s, want e", candidates[0].ID)
	}
}

func TestCandidatesByGenres(t *testing.T) {
	store := newTestStore(t)
	mustUpsert(t, store, fixtureTitles()...)
	ctx := context.Background()

	// Case-insensitive genre matching.
	candidates, err := store.CandidatesByGenres(ctx, models.KindSeries, []string{"sci-fi"}, 10)
	if err != nil {
		t.Fatalf("CandidatesByGenres() error = %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != "s1" {
		t.Fatalf("candidates = %+v, want just s1", candidates)
	}

	// Unrated titles excluded even when the genre matches.
	candidates, err = store.CandidatesByGenres(ctx, models.KindMovie, []string{"Action"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range candidates {
		if c.ID == "m3" {
			t.Error("unrated title in candidates")
		}
		if c.Rating <= 0 {
			t.Errorf("candidate %s has rating %v", c.ID, c.Rating)
		}
	}

	// Empty genre set is a caller bug.
	if _, err := store.CandidatesByGenres(ctx, models.KindMovie, nil, 10); err == nil {
		t.Error("expected error for empty genre set")
	}
}

func TestGetTitle(t *testing.T) {
	store := newTestStore(t)
	mustUpsert(t, store, fixtureTitles()...)
	ctx := context.Background()

	title, err := store.GetTitle(ctx, "m1")
	if err != nil {
		t.Fatalf("GetTitle() error = %v", err)
	}
	if title.Name != "Alpha Strike" || title.Kind != models.KindMovie || title.Year != 2020 {
		t.Errorf("title = %+v", title)
	}
	if !reflect.DeepEqual(title.Genres, []string{"Action", "Sci-Fi"}) {
		t.Errorf("genres = %v", title.Genres)
	}

	if _, err := store.GetTitle(ctx, "nope"); !errors.Is(err, recommend.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpsertTitleReplacesGenres(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	title := models.Title{ID: "x", Name: "X", Kind: models.KindMovie, Rating: 7, Genres: []string{"Action"}}
	mustUpsert(t, store, title)

	title.Genres = []string{"Drama", "Mystery"}
	title.Rating = 8.2
	mustUpsert(t, store, title)

	got, err := store.GetTitle(ctx, "x")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Genres, []string{"Drama", "Mystery"}) {
		t.Errorf("genres = %v, want replaced set", got.Genres)
	}
	if got.Rating != 8.2 {
		t.Errorf("rating = %v, want 8.2", got.Rating)
	}
}

func TestUpsertTitleValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.UpsertTitle(ctx, models.Title{Name: "No ID", Kind: models.KindMovie}); err == nil {
		t.Error("expected error for missing id")
	}
	if err := store.UpsertTitle(ctx, models.Title{ID: "x", Kind: "episode"}); err == nil {
		t.Error("expected error for bad kind")
	}
	if err := store.UpsertTitle(ctx, models.Title{ID: "x", Name: "X", Kind: models.KindMovie, Genres: []string{"Sci|Fi"}}); err == nil {
		t.Error("expected error for genre containing separator")
	}
}

func TestListTitles(t *testing.T) {
	store := newTestStore(t)
	mustUpsert(t, store, fixtureTitles()...)
	ctx := context.Background()

	t.Run("filter by kind", func(t *testing.T) {
		page, err := store.ListTitles(ctx, TitleFilter{Kind: models.KindSeries})
		if err != nil {
			t.Fatal(err)
		}
		if page.Total != 1 || len(page.Titles) != 1 || page.Titles[0].ID != "s1" {
			t.Errorf("page = %+v", page)
		}
	})

	t.Run("filter by genre", func(t *testing.T) {
		page, err := store.ListTitles(ctx, TitleFilter{Genre: "action"})
		if err != nil {
			t.Fatal(err)
		}
		if page.Total != 3 {
			t.Errorf("total = %d, want 3", page.Total)
		}
	})

	t.Run("search by name", func(t *testing.T) {
		page, err := store.ListTitles(ctx, TitleFilter{Search: "alpha"})
		if err != nil {
			t.Fatal(err)
		}
		if page.Total != 1 || page.Titles[0].ID != "m1" {
			t.Errorf("page = %+v", page)
		}
	})

	t.Run("year range", func(t *testing.T) {
		page, err := store.ListTitles(ctx, TitleFilter{YearFrom: 2020, YearTo: 2021})
		if err != nil {
			t.Fatal(err)
		}
		if page.Total != 2 {
			t.Errorf("total = %d, want 2", page.Total)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := store.ListTitles(ctx, TitleFilter{Limit: 2, Offset: 2})
		if err != nil {
			t.Fatal(err)
		}
		if page.Total != 5 || len(page.Titles) != 2 || page.Offset != 2 {
			t.Errorf("page = %+v", page)
		}
	})

	t.Run("sort by rating", func(t *testing.T) {
		page, err := store.ListTitles(ctx, TitleFilter{Sort: "rating"})
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(page.Titles); i++ {
			if page.Titles[i-1].Rating < page.Titles[i].Rating {
				t.Error("not sorted by rating desc")
			}
		}
	})

	t.Run("genre-less title has empty slice", func(t *testing.T) {
		page, err := store.ListTitles(ctx, TitleFilter{Search: "delta"})
		if err != nil {
			t.Fatal(err)
		}
		if len(page.Titles) != 1 || page.Titles[0].Genres == nil || len(page.Titles[0].Genres) != 0 {
			t.Errorf("page = %+v", page)
		}
	})

	t.Run("unknown sort key", func(t *testing.T) {
		if _, err := store.ListTitles(ctx, TitleFilter{Sort: "price"}); err == nil {
			t.Error("expected error for unknown sort key")
		}
	})
}

func TestGenresWithCounts(t *testing.T) {
	store := newTestStore(t)
	mustUpsert(t, store, fixtureTitles()...)

	counts, err := store.GenresWithCounts(context.Background())
	if err != nil {
		t.Fatalf("GenresWithCounts() error = %v", err)
	}
	if len(counts) != 4 {
		t.Fatalf("got %d genres, want 4", len(counts))
	}
	if counts[0].Name != "Action" || counts[0].Count != 3 {
		t.Errorf("top genre = %+v, want Action x3", counts[0])
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Seed(ctx); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	first, err := store.ListTitles(ctx, TitleFilter{Limit: 100})
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Seed(ctx); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	second, err := store.ListTitles(ctx, TitleFilter{Limit: 100})
	if err != nil {
		t.Fatal(err)
	}

	if first.Total != second.Total {
		t.Errorf("seed is not idempotent: %d vs %d titles", first.Total, second.Total)
	}
	if first.Total == 0 {
		t.Error("seed loaded no titles")
	}
}
