// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package recommend

import (
	"fmt"
	"time"
)

// Config contains the recommendation engine tunables.
type Config struct {
	// MinSimilarity is the item-mode relevance floor. Candidates scoring
	// at or below it are dropped as noise. Genre-preference mode applies
	// no floor.
	MinSimilarity float64 `json:"min_similarity"`

	// OverfetchFactor multiplies the requested limit when fetching the
	// candidate pool. A bounded pool trades recall for bounded cost.
	OverfetchFactor int `json:"overfetch_factor"`

	// ItemTTL is the cache lifetime for item-based entries.
	ItemTTL time.Duration `json:"item_ttl"`

	// GenreTTL is the cache lifetime for genre-preference entries
	// spanning both kinds.
	GenreTTL time.Duration `json:"genre_ttl"`

	// GenreSingleKindTTL is the cache lifetime for genre-preference
	// entries restricted to one kind.
	GenreSingleKindTTL time.Duration `json:"genre_single_kind_ttl"`

	// DefaultItemLimit is used when an item-mode request omits limit.
	DefaultItemLimit int `json:"default_item_limit"`

	// DefaultGenreLimit is used when a genre-mode request omits limit.
	DefaultGenreLimit int `json:"default_genre_limit"`

	// MaxLimit caps the requested result count in both modes.
	MaxLimit int `json:"max_limit"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		MinSimilarity:      0.1,
		OverfetchFactor:    3,
		ItemTTL:            24 * time.Hour,
		GenreTTL:           12 * time.Hour,
		GenreSingleKindTTL: 6 * time.Hour,
		DefaultItemLimit:   10,
		DefaultGenreLimit:  20,
		MaxLimit:           100,
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.MinSimilarity < 0 || c.MinSimilarity >= 1 {
		return fmt.Errorf("min_similarity must be in [0,1), got %v", c.MinSimilarity)
	}
	if c.OverfetchFactor < 1 {
		return fmt.Errorf("overfetch_factor must be >= 1, got %d", c.OverfetchFactor)
	}
	if c.ItemTTL <= 0 || c.GenreTTL <= 0 || c.GenreSingleKindTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.DefaultItemLimit < 1 || c.DefaultGenreLimit < 1 {
		return fmt.Errorf("default limits must be >= 1")
	}
	if c.MaxLimit < c.DefaultItemLimit || c.MaxLimit < c.DefaultGenreLimit {
		return fmt.Errorf("max_limit %d is below a default limit", c.MaxLimit)
	}
	return nil
}
