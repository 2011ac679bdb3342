// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reelrank/reelrank/internal/models"
)

// AlgorithmID identifies the scoring algorithm in responses and cache
// entries. Bump the version suffix when the scoring semantics change so
// stale cache entries are distinguishable.
const AlgorithmID = "content-cosine-v1"

// AlgorithmDescription is the human-readable algorithm summary returned
// with genre-preference responses.
const AlgorithmDescription = "cosine similarity over one-hot genre vectors"

// AlgorithmLabel is the full identifier carried in genre-preference
// responses and cache entries. Composed once so cached and freshly
// computed responses always report the same string.
const AlgorithmLabel = AlgorithmID + ": " + AlgorithmDescription

var (
	// ErrInvalidRequest indicates the caller supplied an empty or
	// malformed required input. Never retried.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound indicates the source title does not exist in the
	// catalog. Distinct from "exists but has no genres", which yields an
	// empty recommendation list and no error.
	ErrNotFound = errors.New("not found")
)

// DependencyError wraps a catalog store or result cache failure. The engine
// never retries; the wrapped error propagates to the caller with context.
type DependencyError struct {
	// Op names the failing operation, e.g. "fetch candidates".
	Op string

	// Err is the underlying store or cache error.
	Err error
}

// Error implements the error interface.
func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency failure: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *DependencyError) Unwrap() error {
	return e.Err
}

// CatalogStore is the read-only boundary to the catalog. Implemented by the
// database layer; the engine never mutates catalog state.
type CatalogStore interface {
	// TitleGenres returns the genre labels of one title. A missing title
	// is reported with an error wrapping ErrNotFound; a title with no
	// genres returns an empty slice and no error.
	TitleGenres(ctx context.Context, id string) ([]string, error)

	// AllGenres returns every distinct genre label currently attached to
	// at least one title, ordered deterministically. This is the genre
	// universe; it is fetched fresh per request so both vectors of a
	// comparison are always built against the same ordering.
	AllGenres(ctx context.Context) ([]string, error)

	// CandidatesByKind returns up to limit titles of the given kind,
	// excluding excludeID, restricted to rated titles (rating > 0) with
	// at least one genre, ordered by popularity descending.
	CandidatesByKind(ctx context.Context, kind models.ItemKind, excludeID string, limit int) ([]models.Title, error)

	// CandidatesByGenres returns up to limit titles of the given kind
	// having at least one genre in the set, restricted to rated titles,
	// ordered by popularity descending.
	CandidatesByGenres(ctx context.Context, kind models.ItemKind, genres []string, limit int) ([]models.Title, error)
}

// CachedResult is the value stored in the result cache: the ranked list
// plus the algorithm that produced it.
type CachedResult struct {
	// Algorithm records which scorer produced the list.
	Algorithm string `json:"algorithm"`

	// Results is the full ranked list. It may hold more entries than a
	// later caller asks for; readers truncate to their own limit.
	Results []models.Recommendation `json:"results"`
}

// ResultCache is the boundary to the result cache. Entries expire by TTL;
// an expired entry behaves identically to a missing one.
type ResultCache interface {
	// Get returns the live entry for key, or ok=false when the entry is
	// missing or expired.
	Get(ctx context.Context, key string) (result CachedResult, ok bool, err error)

	// Put upserts the entry for key with expiry now+ttl.
	Put(ctx context.Context, key string, result CachedResult, ttl time.Duration) error
}

// GenreResponse is the result of a genre-preference recommendation,
// carrying the algorithm identifier alongside the ranked list.
type GenreResponse struct {
	// Algorithm is the fixed algorithm identifier and description.
	Algorithm string `json:"algorithm"`

	// Results is the ranked recommendation list.
	Results []models.Recommendation `json:"results"`
}
