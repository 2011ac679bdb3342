// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

/*
Package metrics provides Prometheus metrics collection and export.

Metrics are registered on the default registry via promauto and exposed
at the /metrics endpoint in Prometheus text format.

The package instruments:
  - API request latency, throughput, and rate limit rejections
  - DuckDB query performance and errors
  - Recommendation computation latency, cache vs computed split, and
    candidate pool sizes
  - Result cache hit/miss/eviction rates
  - Catalog size (titles per kind, in-use genres)

Example PromQL:

	# API request rate
	rate(api_requests_total[5m])

	# Result cache hit rate
	sum(rate(cache_hits_total{cache_type="result"}[5m]))
	/
	(sum(rate(cache_hits_total{cache_type="result"}[5m]))
	 + sum(rate(cache_misses_total{cache_type="result"}[5m])))

	# p95 recommendation latency by mode
	histogram_quantile(0.95, rate(recommendation_duration_seconds_bucket[5m]))

All recording functions are safe for concurrent use; the Prometheus
client library handles synchronization internally. Label values are
drawn from small fixed sets to keep cardinality bounded.
*/
package metrics
