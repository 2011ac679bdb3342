// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)

	// Recommendation Metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation computations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"mode"}, // "item", "genres"
	)

	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation requests served",
		},
		[]string{"mode", "source"}, // source: "cache", "computed"
	)

	RecommendationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_errors_total",
			Help: "Total number of failed recommendation requests",
		},
		[]string{"mode", "error_type"}, // "invalid_request", "not_found", "dependency", "internal"
	)

	CandidatesScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates_scored",
			Help:    "Number of candidates scored per recommendation request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "result", "memory"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheWriteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_write_errors_total",
			Help: "Total number of failed cache writes",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// Catalog Metrics
	CatalogTitles = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_titles",
			Help: "Current number of titles in the catalog",
		},
		[]string{"kind"},
	)

	CatalogGenres = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_genres",
			Help: "Current number of genres attached to at least one title",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordRecommendation records one served recommendation request. Source
// is "cache" when the result came from the result cache, "computed" when
// it was scored fresh.
func RecordRecommendation(mode, source string, duration time.Duration) {
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendationsServed.WithLabelValues(mode, source).Inc()
}

// RecordRecommendationError records a failed recommendation request
func RecordRecommendationError(mode, errorType string) {
	RecommendationErrors.WithLabelValues(mode, errorType).Inc()
}

// RecordCacheHit records a hit for the given cache type
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a miss for the given cache type
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCacheWriteError records a failed cache write
func RecordCacheWriteError(cacheType string) {
	CacheWriteErrors.WithLabelValues(cacheType).Inc()
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// UpdateCatalogGauges refreshes the catalog size gauges, typically after
// startup seeding or an import.
func UpdateCatalogGauges(movieCount, seriesCount, genreCount int) {
	CatalogTitles.WithLabelValues("movie").Set(float64(movieCount))
	CatalogTitles.WithLabelValues("series").Set(float64(seriesCount))
	CatalogGenres.Set(float64(genreCount))
}
