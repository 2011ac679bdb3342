// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

// Package models defines the shared domain types for the catalog and
// recommendation subsystems.
package models

import "fmt"

// ItemKind discriminates the two kinds of catalog titles. The kind is always
// carried explicitly alongside a title, never inferred from which metadata
// fields happen to be populated.
type ItemKind string

const (
	// KindMovie is a movie-like title (single feature).
	KindMovie ItemKind = "movie"
	// KindSeries is a series-like title (episodic content).
	KindSeries ItemKind = "series"
)

// Valid reports whether k is a known item kind.
func (k ItemKind) Valid() bool {
	return k == KindMovie || k == KindSeries
}

// ParseItemKind converts a string into an ItemKind.
func ParseItemKind(s string) (ItemKind, error) {
	switch ItemKind(s) {
	case KindMovie:
		return KindMovie, nil
	case KindSeries:
		return KindSeries, nil
	default:
		return "", fmt.Errorf("unknown item kind %q", s)
	}
}

// ContentKind selects which item kinds a genre-preference query spans.
type ContentKind string

const (
	// ContentMovies restricts results to movie-like titles.
	ContentMovies ContentKind = "movie"
	// ContentSeries restricts results to series-like titles.
	ContentSeries ContentKind = "series"
	// ContentBoth spans both item kinds.
	ContentBoth ContentKind = "both"
)

// Valid reports whether c is a known content kind.
func (c ContentKind) Valid() bool {
	return c == ContentMovies || c == ContentSeries || c == ContentBoth
}

// IncludesMovies reports whether movie-like titles are in scope.
func (c ContentKind) IncludesMovies() bool {
	return c == ContentMovies || c == ContentBoth
}

// IncludesSeries reports whether series-like titles are in scope.
func (c ContentKind) IncludesSeries() bool {
	return c == ContentSeries || c == ContentBoth
}

// ParseContentKind converts a string into a ContentKind. An empty string
// defaults to ContentBoth.
func ParseContentKind(s string) (ContentKind, error) {
	switch ContentKind(s) {
	case "":
		return ContentBoth, nil
	case ContentMovies:
		return ContentMovies, nil
	case ContentSeries:
		return ContentSeries, nil
	case ContentBoth:
		return ContentBoth, nil
	default:
		return "", fmt.Errorf("unknown content kind %q", s)
	}
}

// Title is a catalog entry. The recommendation core treats titles as
// read-only; they are owned by the catalog store.
type Title struct {
	// ID is the stable string identifier of the title.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Kind discriminates movie-like from series-like titles.
	Kind ItemKind `json:"kind"`

	// Year is the release year.
	Year int `json:"year,omitempty"`

	// Popularity is a non-negative popularity metric.
	Popularity float64 `json:"popularity"`

	// Rating is the average rating on a 0-10 scale; 0 means unrated.
	Rating float64 `json:"rating"`

	// Genres is the set of genre labels attached to the title.
	Genres []string `json:"genres"`
}

// ConfidenceTier buckets a similarity score for display purposes only.
type ConfidenceTier string

const (
	// TierHigh indicates similarity >= 0.7.
	TierHigh ConfidenceTier = "high"
	// TierMedium indicates similarity in [0.4, 0.7).
	TierMedium ConfidenceTier = "medium"
	// TierLow indicates similarity < 0.4.
	TierLow ConfidenceTier = "low"
)

// Recommendation is one scored candidate returned by the engine.
type Recommendation struct {
	// Title is the recommended catalog entry.
	Title Title `json:"title"`

	// Score is the cosine similarity in [0,1], rounded to 3 decimals.
	Score float64 `json:"score"`

	// Tier is the display confidence bucket derived from Score.
	Tier ConfidenceTier `json:"tier"`

	// Reasons is a short list of human-readable match explanations.
	// Presentation hints only, never used in ranking.
	Reasons []string `json:"reasons"`
}
