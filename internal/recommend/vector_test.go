// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package recommend

import (
	"math"
	"reflect"
	"testing"

	"github.com/reelrank/reelrank/internal/models"
)

func TestVectorizeLength(t *testing.T) {
	universe := []string{"Action", "Comedy", "Drama", "Horror", "Romance", "Sci-Fi"}

	tests := []struct {
		name   string
		labels []string
		want   []float64
	}{
		{"two genres", []string{"Action", "Sci-Fi"}, []float64{1, 0, 0, 0, 0, 1}},
		{"no genres", nil, []float64{0, 0, 0, 0, 0, 0}},
		{"all genres", universe, []float64{1, 1, 1, 1, 1, 1}},
		{"case insensitive", []string{"action", "SCI-FI"}, []float64{1, 0, 0, 0, 0, 1}},
		{"unknown label ignored", []string{"Western"}, []float64{0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Vectorize(tt.labels, universe)
			if len(got) != len(universe) {
				t.Fatalf("len = %d, want %d", len(got), len(universe))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Vectorize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVectorizeEmptyUniverse(t *testing.T) {
	got := Vectorize([]string{"Action"}, nil)
	if len(got) != 0 {
		t.Errorf("expected empty vector, got %v", got)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0, 0, 0, 0, 1}, []float64{1, 0, 0, 0, 0, 1}, 1.0},
		{"disjoint", []float64{1, 0, 0, 0, 0, 1}, []float64{0, 0, 1, 0, 1, 0}, 0.0},
		{"partial overlap", []float64{1, 1, 0, 0}, []float64{1, 0, 1, 0}, 0.5},
		{"zero vector", []float64{0, 0, 0}, []float64{1, 1, 0}, 0.0},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0.0},
		{"length mismatch", []float64{1, 0}, []float64{1, 0, 1}, 0.0},
		{"empty vectors", []float64{}, []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.IsNaN(got) {
				t.Fatal("similarity is NaN")
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityBounds(t *testing.T) {
	// Normalized genre overlap: |shared| / sqrt(|a|*|b|).
	a := Vectorize([]string{"Action", "Sci-Fi", "Thriller"}, []string{"Action", "Comedy", "Sci-Fi", "Thriller"})
	b := Vectorize([]string{"Action", "Comedy"}, []string{"Action", "Comedy", "Sci-Fi", "Thriller"})

	got := CosineSimilarity(a, b)
	want := 1.0 / math.Sqrt(3*2)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("similarity = %v, want %v", got, want)
	}
	if got < 0 || got > 1 {
		t.Errorf("similarity %v out of [0,1]", got)
	}
}

func TestSelfSimilarity(t *testing.T) {
	v := Vectorize([]string{"Drama", "Romance"}, []string{"Action", "Drama", "Romance"})
	if got := CosineSimilarity(v, v); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("self-similarity = %v, want 1.0", got)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score float64
		want  models.ConfidenceTier
	}{
		{1.0, models.TierHigh},
		{0.7, models.TierHigh},
		{0.69, models.TierMedium},
		{0.4, models.TierMedium},
		{0.39, models.TierLow},
		{0.0, models.TierLow},
	}

	for _, tt := range tests {
		if got := TierFor(tt.score); got != tt.want {
			t.Errorf("TierFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestRoundScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.12345, 0.123},
		{0.9995, 1.0},
		{1.0 / 3.0, 0.333},
		{0, 0},
	}

	for _, tt := range tests {
		if got := RoundScore(tt.in); got != tt.want {
			t.Errorf("RoundScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMatchReasons(t *testing.T) {
	tests := []struct {
		name           string
		source, target []string
		want           []string
	}{
		{
			"no shared genres",
			[]string{"Action"}, []string{"Drama"},
			[]string{"Similar content style"},
		},
		{
			"one shared genre",
			[]string{"Action", "Thriller"}, []string{"Action", "Drama"},
			[]string{"Same Action genre"},
		},
		{
			"two shared genres",
			[]string{"Action", "Sci-Fi"}, []string{"Action", "Sci-Fi"},
			[]string{"Same Action and Sci-Fi genres"},
		},
		{
			"three shared genres",
			[]string{"Action", "Sci-Fi", "Thriller"}, []string{"Thriller", "Sci-Fi", "Action"},
			[]string{"Multiple shared genres: Action, Sci-Fi, Thriller"},
		},
		{
			"four shared genres lists first three",
			[]string{"Action", "Comedy", "Drama", "Horror"}, []string{"Horror", "Drama", "Comedy", "Action"},
			[]string{"Multiple shared genres: Action, Comedy, Drama"},
		},
		{
			"case insensitive intersection keeps source casing",
			[]string{"Sci-Fi"}, []string{"sci-fi"},
			[]string{"Same Sci-Fi genre"},
		},
		{
			"duplicate source labels counted once",
			[]string{"Action", "action"}, []string{"Action"},
			[]string{"Same Action genre"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchReasons(tt.source, tt.target)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MatchReasons() = %v, want %v", got, tt.want)
			}
		})
	}
}
