// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reelrank/reelrank/internal/config"
	"github.com/reelrank/reelrank/internal/metrics"
	"github.com/reelrank/reelrank/internal/middleware"
)

// NewRouter builds the full HTTP handler tree: global middleware, the
// versioned API routes, and the Prometheus scrape endpoint.
func NewRouter(cfg *config.ServerConfig, handler *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		if cfg.RateLimitPerMinute > 0 {
			r.Use(httprate.Limit(
				cfg.RateLimitPerMinute,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByRealIP),
				httprate.WithLimitHandler(rateLimited),
			))
		}

		r.Route("/health", func(r chi.Router) {
			r.Get("/", handler.Health)
			r.Get("/live", handler.HealthLive)
			r.Get("/ready", handler.HealthReady)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/title/{id}", handler.TitleRecommendations)
			r.Post("/genres", handler.GenreRecommendations)
		})

		r.Get("/titles", handler.ListTitles)
		r.Get("/titles/{id}", handler.GetTitle)
		r.Get("/genres", handler.ListGenres)
		r.Get("/stats", handler.Stats)
	})

	return r
}

// rateLimited answers rejected requests with the standard error envelope.
func rateLimited(w http.ResponseWriter, r *http.Request) {
	metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
	NewResponseWriter(w, r).Error(http.StatusTooManyRequests, ErrCodeTooManyRequests, "Rate limit exceeded, slow down")
}
