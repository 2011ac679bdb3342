// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

// Package recommend implements the content-based recommendation engine.
//
// The engine scores catalog titles by cosine similarity of one-hot genre
// indicator vectors. Each request derives the genre universe (every genre
// currently in use) fresh from the catalog store, so the two vectors of a
// comparison are always built against the same ordering; the universe is
// deliberately never cached long-term because the genre vocabulary changes
// as titles come and go.
//
// Two modes are supported:
//
//   - Item mode (ForItem): rank titles of the same kind against one source
//     title. Candidates are over-fetched by a configurable factor, scored,
//     and filtered by a minimum-similarity floor.
//   - Genre-preference mode (ForGenres): rank titles against a
//     caller-supplied genre list, optionally across both item kinds. No
//     similarity floor applies.
//
// Computed lists are written to a TTL-bound result cache keyed by
// (itemID, kind) or by the sorted genre set plus content kind. A cache
// write failure is logged and swallowed; a computed result is always
// returned to the caller.
//
// This package has no dependency on the database or cache packages. The
// CatalogStore and ResultCache interfaces are implemented by those layers,
// keeping the engine testable with in-memory doubles.
package recommend
