// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelrank/reelrank/internal/metrics"
	"github.com/reelrank/reelrank/internal/models"
)

// Engine produces genre-similarity recommendations. It is safe for
// concurrent use: every request computes from its own snapshot of the
// catalog, and the only shared mutable state is the result cache, whose
// per-key upsert is atomic in the backing store. Two concurrent misses on
// the same key may both compute; the computation is deterministic, so the
// duplicate work is benign and the last put wins.
type Engine struct {
	store  CatalogStore
	cache  ResultCache // nil disables caching
	config *Config
	logger zerolog.Logger

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
}

// NewEngine creates a recommendation engine. The cache may be nil, in which
// case every request computes from scratch.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(store CatalogStore, cache ResultCache, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		store:  store,
		cache:  cache,
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
	}
}

// ForItem recommends titles similar to the given source title. The returned
// list is ranked by similarity descending and holds at most limit entries.
// An empty list is a valid outcome: the source has no genres, or no
// candidate cleared the similarity floor.
func (e *Engine) ForItem(ctx context.Context, itemID string, kind models.ItemKind, limit int) ([]models.Recommendation, error) {
	e.requestCount.Add(1)
	start := time.Now()

	if itemID == "" {
		return nil, fmt.Errorf("%w: item id is required", ErrInvalidRequest)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown item kind %q", ErrInvalidRequest, kind)
	}
	limit = e.clampLimit(limit, e.config.DefaultItemLimit)

	logger := e.logger.With().Str("item_id", itemID).Str("kind", string(kind)).Logger()

	key := ItemKey(itemID, kind)
	if cached, ok, err := e.cacheGet(ctx, key); err != nil {
		return nil, err
	} else if ok {
		logger.Debug().Msg("cache hit")
		metrics.RecordRecommendation("item", "cache", time.Since(start))
		return truncate(cached.Results, limit), nil
	}

	sourceGenres, err := e.store.TitleGenres(ctx, itemID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("title %s: %w", itemID, ErrNotFound)
		}
		return nil, &DependencyError{Op: "fetch source genres", Err: err}
	}
	if len(sourceGenres) == 0 {
		// A genre-less source cannot be scored; "no recommendations",
		// not an error.
		logger.Debug().Msg("source has no genres")
		return []models.Recommendation{}, nil
	}

	universe, err := e.store.AllGenres(ctx)
	if err != nil {
		return nil, &DependencyError{Op: "fetch genre universe", Err: err}
	}
	sourceVec := Vectorize(sourceGenres, universe)

	candidates, err := e.store.CandidatesByKind(ctx, kind, itemID, limit*e.config.OverfetchFactor)
	if err != nil {
		return nil, &DependencyError{Op: "fetch candidates", Err: err}
	}

	scored := e.scoreCandidates(sourceGenres, sourceVec, universe, candidates, e.config.MinSimilarity)
	sortByScoreThenPopularity(scored)
	results := truncate(scored, limit)

	if len(results) > 0 {
		e.cachePut(ctx, key, CachedResult{Algorithm: AlgorithmLabel, Results: scored}, e.config.ItemTTL)
	}

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(results)).
		Msg("item recommendations computed")

	metrics.CandidatesScored.Observe(float64(len(candidates)))
	metrics.RecordRecommendation("item", "computed", time.Since(start))

	return results, nil
}

// ForGenres recommends titles matching a caller-supplied genre preference
// list. Unlike item mode there is no similarity floor: every fetched
// candidate is scored and kept, so a result with similarity 0 is
// legitimate when the pool is shallow.
func (e *Engine) ForGenres(ctx context.Context, preferred []string, kind models.ContentKind, limit int) (*GenreResponse, error) {
	e.requestCount.Add(1)
	start := time.Now()

	preferred = normalizeGenres(preferred)
	if len(preferred) == 0 {
		return nil, fmt.Errorf("%w: at least one preferred genre is required", ErrInvalidRequest)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown content kind %q", ErrInvalidRequest, kind)
	}
	limit = e.clampLimit(limit, e.config.DefaultGenreLimit)

	logger := e.logger.With().Strs("genres", preferred).Str("kind", string(kind)).Logger()

	key := GenreKey(preferred, kind)
	if cached, ok, err := e.cacheGet(ctx, key); err != nil {
		return nil, err
	} else if ok {
		logger.Debug().Msg("cache hit")
		metrics.RecordRecommendation("genres", "cache", time.Since(start))
		return &GenreResponse{Algorithm: cached.Algorithm, Results: truncate(cached.Results, limit)}, nil
	}

	universe, err := e.store.AllGenres(ctx)
	if err != nil {
		return nil, &DependencyError{Op: "fetch genre universe", Err: err}
	}
	prefVec := Vectorize(preferred, universe)

	candidates, err := e.gatherGenreCandidates(ctx, preferred, kind, limit*e.config.OverfetchFactor)
	if err != nil {
		return nil, err
	}

	// No similarity floor in this mode: the pool is already restricted
	// to titles sharing at least one preferred genre.
	scored := e.scoreCandidates(preferred, prefVec, universe, candidates, -1)
	sortByScoreThenRating(scored)
	results := truncate(scored, limit)

	if len(results) > 0 {
		e.cachePut(ctx, key, CachedResult{Algorithm: AlgorithmLabel, Results: scored}, e.genreTTL(kind))
	}

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(results)).
		Msg("genre recommendations computed")

	metrics.CandidatesScored.Observe(float64(len(candidates)))
	metrics.RecordRecommendation("genres", "computed", time.Since(start))

	return &GenreResponse{
		Algorithm: AlgorithmLabel,
		Results:   results,
	}, nil
}

// gatherGenreCandidates fetches per-kind candidate pools for a genre
// preference query.
func (e *Engine) gatherGenreCandidates(ctx context.Context, preferred []string, kind models.ContentKind, perKind int) ([]models.Title, error) {
	var candidates []models.Title

	if kind.IncludesMovies() {
		movies, err := e.store.CandidatesByGenres(ctx, models.KindMovie, preferred, perKind)
		if err != nil {
			return nil, &DependencyError{Op: "fetch movie candidates", Err: err}
		}
		candidates = append(candidates, movies...)
	}

	if kind.IncludesSeries() {
		series, err := e.store.CandidatesByGenres(ctx, models.KindSeries, preferred, perKind)
		if err != nil {
			return nil, &DependencyError{Op: "fetch series candidates", Err: err}
		}
		candidates = append(candidates, series...)
	}

	return candidates, nil
}

// scoreCandidates vectorizes and scores each candidate against the source
// vector, keeping those scoring strictly above minScore. Pass a negative
// minScore to keep everything.
func (e *Engine) scoreCandidates(sourceGenres []string, sourceVec []float64, universe []string, candidates []models.Title, minScore float64) []models.Recommendation {
	scored := make([]models.Recommendation, 0, len(candidates))
	for i := range candidates {
		title := candidates[i]
		score := CosineSimilarity(sourceVec, Vectorize(title.Genres, universe))
		if score <= minScore {
			continue
		}
		scored = append(scored, models.Recommendation{
			Title:   title,
			Score:   RoundScore(score),
			Tier:    TierFor(score),
			Reasons: MatchReasons(sourceGenres, title.Genres),
		})
	}
	return scored
}

// cacheGet reads the result cache, tracking hit/miss counters. A nil cache
// always misses.
func (e *Engine) cacheGet(ctx context.Context, key string) (CachedResult, bool, error) {
	if e.cache == nil {
		return CachedResult{}, false, nil
	}

	cached, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		return CachedResult{}, false, &DependencyError{Op: "cache read", Err: err}
	}
	if ok {
		e.cacheHits.Add(1)
		metrics.RecordCacheHit("result")
		return cached, true, nil
	}
	e.cacheMisses.Add(1)
	metrics.RecordCacheMiss("result")
	return CachedResult{}, false, nil
}

// cachePut writes the result cache. A failed put is logged and swallowed:
// the computed results are still valid and returnable, so a cache failure
// must never fail the request.
func (e *Engine) cachePut(ctx context.Context, key string, result CachedResult, ttl time.Duration) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Put(ctx, key, result, ttl); err != nil {
		metrics.RecordCacheWriteError("result")
		e.logger.Warn().Err(err).Str("key", key).Msg("result cache write failed")
	}
}

// genreTTL picks the cache lifetime for a genre-preference entry.
func (e *Engine) genreTTL(kind models.ContentKind) time.Duration {
	if kind == models.ContentBoth {
		return e.config.GenreTTL
	}
	return e.config.GenreSingleKindTTL
}

// clampLimit applies the default and maximum bounds to a requested limit.
func (e *Engine) clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > e.config.MaxLimit {
		return e.config.MaxLimit
	}
	return limit
}

// normalizeGenres trims whitespace and drops empty labels.
func normalizeGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if trimmed := strings.TrimSpace(g); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// sortByScoreThenPopularity ranks item-mode results: similarity descending,
// ties broken by popularity descending, then ID ascending for stability.
func sortByScoreThenPopularity(results []models.Recommendation) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Title.Popularity != results[j].Title.Popularity {
			return results[i].Title.Popularity > results[j].Title.Popularity
		}
		return results[i].Title.ID < results[j].Title.ID
	})
}

// sortByScoreThenRating ranks genre-mode results: similarity descending,
// ties broken by average rating descending.
func sortByScoreThenRating(results []models.Recommendation) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Title.Rating > results[j].Title.Rating
	})
}

func truncate(results []models.Recommendation, limit int) []models.Recommendation {
	if len(results) <= limit {
		return results
	}
	return results[:limit]
}
