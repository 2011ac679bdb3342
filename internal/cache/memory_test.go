// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/reelrank/reelrank/internal/models"
	"github.com/reelrank/reelrank/internal/recommend"
)

func sampleResult() recommend.CachedResult {
	return recommend.CachedResult{
		Algorithm: recommend.AlgorithmID,
		Results: []models.Recommendation{
			{
				Title: models.Title{
					ID: "tt1", Name: "Sample", Kind: models.KindMovie,
					Year: 2020, Popularity: 42, Rating: 7.5,
					Genres: []string{"Action", "Sci-Fi"},
				},
				Score:   0.817,
				Tier:    models.TierHigh,
				Reasons: []string{"Same Action and Sci-Fi genres"},
			},
		},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, "k", sampleResult(), time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("expected hit before ttl elapsed")
	}
	if got.Algorithm != recommend.AlgorithmID {
		t.Errorf("algorithm = %q", got.Algorithm)
	}
	if len(got.Results) != 1 || got.Results[0].Title.ID != "tt1" {
		t.Errorf("results = %+v", got.Results)
	}
	if got.Results[0].Score != 0.817 {
		t.Errorf("score = %v, want 0.817", got.Results[0].Score)
	}
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("expected miss for absent key")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, "k", sampleResult(), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Error("expected miss after ttl elapsed")
	}

	stats := store.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("evictions = %d, want 1 (lazy removal on read)", stats.Evictions)
	}
}

func TestMemoryStoreUpsertReplaces(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := sampleResult()
	if err := store.Put(ctx, "k", first, time.Minute); err != nil {
		t.Fatal(err)
	}

	second := sampleResult()
	second.Results[0].Title.ID = "tt2"
	if err := store.Put(ctx, "k", second, time.Minute); err != nil {
		t.Fatal(err)
	}

	got, ok, _ := store.Get(ctx, "k")
	if !ok || got.Results[0].Title.ID != "tt2" {
		t.Errorf("upsert did not replace: %+v", got.Results)
	}
}

func TestMemoryStorePurge(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, "live", sampleResult(), time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, "dead", sampleResult(), time.Millisecond); err != nil {
		t.Fatal(err)
	}

	time.Sleep(5 * time.Millisecond)

	if removed := store.Purge(); removed != 1 {
		t.Errorf("Purge() = %d, want 1", removed)
	}
	if _, ok, _ := store.Get(ctx, "live"); !ok {
		t.Error("live entry removed by purge")
	}
}

func TestMemoryStoreStats(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Get(ctx, "a")
	if err := store.Put(ctx, "a", sampleResult(), time.Minute); err != nil {
		t.Fatal(err)
	}
	store.Get(ctx, "a")

	stats := store.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Keys != 1 {
		t.Errorf("stats = %+v, want 1 hit / 1 miss / 1 key", stats)
	}
}
