// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/reelrank/reelrank/internal/catalog"
	"github.com/reelrank/reelrank/internal/logging"
	"github.com/reelrank/reelrank/internal/models"
	"github.com/reelrank/reelrank/internal/recommend"
)

// handlerTimeout bounds each request's downstream work.
const handlerTimeout = 10 * time.Second

// Handler serves the recommendation and catalog endpoints.
type Handler struct {
	catalog   *catalog.Store
	engine    *recommend.Engine
	version   string
	startTime time.Time
}

// NewHandler creates the API handler.
func NewHandler(store *catalog.Store, engine *recommend.Engine, version string) *Handler {
	return &Handler{
		catalog:   store,
		engine:    engine,
		version:   version,
		startTime: time.Now(),
	}
}

// TitleRecommendations handles GET /api/v1/recommendations/title/{id}.
// Returns titles of the same kind ranked by genre similarity to the source.
func (h *Handler) TitleRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := TitleRecommendationsRequest{
		ID:    chi.URLParam(r, "id"),
		Kind:  r.URL.Query().Get("kind"),
		Limit: getIntParam(r, "limit", 0),
	}
	if req.Kind == "" {
		req.Kind = string(models.KindMovie)
	}
	if details := validateRequest(&req); details != nil {
		rw.ValidationError("Invalid recommendation request", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	results, err := h.engine.ForItem(ctx, req.ID, models.ItemKind(req.Kind), req.Limit)
	if err != nil {
		writeRecommendError(rw, "item", err)
		return
	}

	rw.Success(map[string]interface{}{
		"item_id":         req.ID,
		"kind":            req.Kind,
		"recommendations": results,
		"count":           len(results),
	})
}

// GenreRecommendations handles POST /api/v1/recommendations/genres.
// Scores titles against the caller's preferred genre list.
func (h *Handler) GenreRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req GenreRecommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("Invalid JSON body")
		return
	}
	if details := validateRequest(&req); details != nil {
		rw.ValidationError("Invalid genre recommendation request", details)
		return
	}

	kind, err := models.ParseContentKind(req.Kind)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	resp, err := h.engine.ForGenres(ctx, req.Genres, kind, req.Limit)
	if err != nil {
		writeRecommendError(rw, "genres", err)
		return
	}

	rw.Success(map[string]interface{}{
		"algorithm":       resp.Algorithm,
		"genres":          req.Genres,
		"kind":            string(kind),
		"recommendations": resp.Results,
		"count":           len(resp.Results),
	})
}

// ListTitles handles GET /api/v1/titles. Supports filtering by kind,
// genre, name search, and year range, with sorting and pagination.
func (h *Handler) ListTitles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := ListTitlesRequest{
		Kind:     r.URL.Query().Get("kind"),
		Genre:    r.URL.Query().Get("genre"),
		Search:   r.URL.Query().Get("search"),
		YearFrom: getIntParam(r, "year_from", 0),
		YearTo:   getIntParam(r, "year_to", 0),
		Sort:     r.URL.Query().Get("sort"),
		Limit:    getIntParam(r, "limit", 0),
		Offset:   getIntParam(r, "offset", 0),
	}
	if details := validateRequest(&req); details != nil {
		rw.ValidationError("Invalid title listing request", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	page, err := h.catalog.ListTitles(ctx, catalog.TitleFilter{
		Kind:     models.ItemKind(req.Kind),
		Genre:    req.Genre,
		Search:   req.Search,
		YearFrom: req.YearFrom,
		YearTo:   req.YearTo,
		Sort:     req.Sort,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		writeCatalogError(rw, err)
		return
	}

	rw.SuccessWithPagination(page.Titles, &PaginationMeta{
		Total:   page.Total,
		Count:   len(page.Titles),
		Offset:  page.Offset,
		Limit:   page.Limit,
		HasMore: page.Offset+len(page.Titles) < page.Total,
	})
}

// GetTitle handles GET /api/v1/titles/{id}.
func (h *Handler) GetTitle(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	if id == "" {
		rw.BadRequest("Title ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	title, err := h.catalog.GetTitle(ctx, id)
	if err != nil {
		writeCatalogError(rw, err)
		return
	}

	rw.Success(title)
}

// ListGenres handles GET /api/v1/genres. Returns every in-use genre with
// its title count, most used first.
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	genres, err := h.catalog.GenresWithCounts(ctx)
	if err != nil {
		writeCatalogError(rw, err)
		return
	}
	if genres == nil {
		genres = []catalog.GenreCount{}
	}

	rw.Success(map[string]interface{}{
		"genres": genres,
		"count":  len(genres),
	})
}

// Stats handles GET /api/v1/stats. Returns engine counters for
// operational visibility.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	rw.Success(map[string]interface{}{
		"engine":         h.engine.Stats(),
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	})
}

// Health handles GET /api/v1/health. Reports overall service health
// including the catalog store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "healthy"
	dbStatus := "up"
	if err := h.catalog.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("health check: catalog ping failed")
		status = "degraded"
		dbStatus = "down"
	}

	data := map[string]interface{}{
		"status":         status,
		"version":        h.version,
		"go_version":     runtime.Version(),
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"checks": map[string]string{
			"database": dbStatus,
		},
	}

	if status != "healthy" {
		rw.writeJSON(http.StatusServiceUnavailable, APIResponse{Success: false, Data: data})
		return
	}
	rw.Success(data)
}

// HealthLive handles GET /api/v1/health/live. Always returns 200 while
// the process is running.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/v1/health/ready. Returns 200 only when
// the catalog store answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.catalog.Ping(ctx); err != nil {
		rw.ServiceUnavailable("Catalog store is not ready")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}
