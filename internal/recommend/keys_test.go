// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package recommend

import (
	"strings"
	"testing"

	"github.com/reelrank/reelrank/internal/models"
)

func TestItemKey(t *testing.T) {
	key := ItemKey("tt0133093", models.KindMovie)
	if key != "item:movie:tt0133093" {
		t.Errorf("ItemKey() = %q", key)
	}

	if ItemKey("tt0133093", models.KindMovie) == ItemKey("tt0133093", models.KindSeries) {
		t.Error("keys for different kinds must differ")
	}
}

func TestGenreKeyOrderIndependent(t *testing.T) {
	a := GenreKey([]string{"Action", "Drama"}, models.ContentBoth)
	b := GenreKey([]string{"Drama", "Action"}, models.ContentBoth)
	if a != b {
		t.Errorf("key depends on genre order: %q vs %q", a, b)
	}
}

func TestGenreKeyCaseAndWhitespaceInsensitive(t *testing.T) {
	a := GenreKey([]string{"Action", "Drama"}, models.ContentBoth)
	b := GenreKey([]string{" drama ", "ACTION"}, models.ContentBoth)
	if a != b {
		t.Errorf("key depends on casing/whitespace: %q vs %q", a, b)
	}
}

func TestGenreKeyVariesByKindAndSet(t *testing.T) {
	base := GenreKey([]string{"Action"}, models.ContentBoth)

	if base == GenreKey([]string{"Action"}, models.ContentMovies) {
		t.Error("keys for different content kinds must differ")
	}
	if base == GenreKey([]string{"Action", "Drama"}, models.ContentBoth) {
		t.Error("keys for different genre sets must differ")
	}
	if !strings.HasPrefix(base, "genres:both:") {
		t.Errorf("unexpected key shape %q", base)
	}
}
