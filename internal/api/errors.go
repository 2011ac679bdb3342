// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package api

import (
	"errors"

	"github.com/reelrank/reelrank/internal/logging"
	"github.com/reelrank/reelrank/internal/metrics"
	"github.com/reelrank/reelrank/internal/recommend"
)

// writeRecommendError maps an engine error onto an HTTP error response and
// records the failure. Invalid input and unknown titles are the caller's
// fault; dependency failures surface as 503 so clients know to retry.
func writeRecommendError(rw *ResponseWriter, mode string, err error) {
	var depErr *recommend.DependencyError

	switch {
	case errors.Is(err, recommend.ErrInvalidRequest):
		metrics.RecordRecommendationError(mode, "invalid_request")
		rw.BadRequest(err.Error())

	case errors.Is(err, recommend.ErrNotFound):
		metrics.RecordRecommendationError(mode, "not_found")
		rw.NotFound(err.Error())

	case errors.As(err, &depErr):
		metrics.RecordRecommendationError(mode, "dependency")
		logging.Ctx(rw.r.Context()).Error().Err(err).Str("op", depErr.Op).Msg("recommendation dependency failure")
		rw.ServiceUnavailable("A backing service is unavailable, please retry")

	default:
		metrics.RecordRecommendationError(mode, "internal")
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("recommendation failed")
		rw.InternalError("Failed to generate recommendations")
	}
}

// writeCatalogError maps a catalog read error onto an HTTP error response.
func writeCatalogError(rw *ResponseWriter, err error) {
	if errors.Is(err, recommend.ErrNotFound) {
		rw.NotFound(err.Error())
		return
	}
	logging.Ctx(rw.r.Context()).Error().Err(err).Msg("catalog query failed")
	rw.ServiceUnavailable("Catalog is unavailable, please retry")
}
