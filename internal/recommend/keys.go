// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package recommend

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/reelrank/reelrank/internal/models"
)

// ItemKey builds the result cache key for an item-based lookup.
func ItemKey(id string, kind models.ItemKind) string {
	return fmt.Sprintf("item:%s:%s", kind, id)
}

// GenreKey builds the result cache key for a genre-preference lookup.
// The genre list is lowercased and sorted before hashing, so the key is a
// function of the genre SET: ["Action","Comedy"] and ["Comedy","Action"]
// always map to the same entry.
func GenreKey(genres []string, kind models.ContentKind) string {
	normalized := make([]string, 0, len(genres))
	for _, g := range genres {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(g)))
	}
	sort.Strings(normalized)

	sum := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return fmt.Sprintf("genres:%s:%x", kind, sum[:16])
}
