// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

// Package cache provides result cache backends for the recommendation
// engine: a durable BadgerDB document store and an in-memory TTL map.
//
// Both implement recommend.ResultCache. Entries are bounded by TTL only;
// an expired entry behaves identically to a missing one regardless of
// whether it has been physically removed yet. There is no size-based
// eviction: periodic GC/purge loops reclaim space as housekeeping, never
// as a correctness requirement.
package cache
