// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

// Package middleware provides HTTP middleware shared across the API:
// request ID propagation for log correlation and Prometheus request
// instrumentation. Rate limiting and CORS come from the chi ecosystem
// (go-chi/httprate, go-chi/cors) and are wired in the router.
package middleware
