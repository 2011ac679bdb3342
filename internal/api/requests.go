// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

// Package api provides the HTTP surface of the recommendation service.
//
// Request parameters are validated with go-playground/validator tags
// before any handler logic runs. Validation failures produce a 400 with
// a VALIDATION_FAILED code and per-field details.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// TitleRecommendationsRequest holds the validated parameters for
// GET /api/v1/recommendations/title/{id}.
type TitleRecommendationsRequest struct {
	ID    string `validate:"required,min=1,max=128"`
	Kind  string `validate:"required,oneof=movie series"`
	Limit int    `validate:"min=0,max=100"`
}

// GenreRecommendationsRequest is the request body for
// POST /api/v1/recommendations/genres.
type GenreRecommendationsRequest struct {
	// Genres is the caller's preferred genre list.
	Genres []string `json:"genres" validate:"required,min=1,max=25,dive,min=1,max=64"`

	// Kind restricts results to movies, series, or both. Empty means both.
	Kind string `json:"kind" validate:"omitempty,oneof=movie series both"`

	// Limit caps the result count. Zero applies the server default.
	Limit int `json:"limit" validate:"min=0,max=100"`
}

// ListTitlesRequest holds the validated query parameters for
// GET /api/v1/titles.
type ListTitlesRequest struct {
	Kind     string `validate:"omitempty,oneof=movie series"`
	Genre    string `validate:"omitempty,max=64"`
	Search   string `validate:"omitempty,max=256"`
	YearFrom int    `validate:"min=0,max=3000"`
	YearTo   int    `validate:"min=0,max=3000"`
	Sort     string `validate:"omitempty,oneof=popularity rating year name"`
	Limit    int    `validate:"min=0,max=500"`
	Offset   int    `validate:"min=0"`
}

// fieldError is one entry in the validation error details.
type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// validateRequest validates a struct using go-playground/validator and
// converts failures to per-field details for the error response.
func validateRequest(v interface{}) []fieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldError{
				Field:  strings.ToLower(fe.Field()),
				Reason: fmt.Sprintf("failed %q constraint", fe.Tag()),
			})
		}
		return details
	}

	return []fieldError{{Field: "request", Reason: err.Error()}}
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}
