// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/reelrank/reelrank/internal/models"
)

// Confidence tier thresholds. Tiers are a display bucket only; they never
// influence filtering or ranking.
const (
	tierHighThreshold   = 0.7
	tierMediumThreshold = 0.4
)

// Vectorize converts a set of genre labels into a 0/1 indicator vector over
// the given universe. The output length always equals len(universe). Label
// matching is case-insensitive. An empty label set yields an all-zero
// vector; an empty universe yields an empty vector.
func Vectorize(labels []string, universe []string) []float64 {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[strings.ToLower(l)] = struct{}{}
	}

	vec := make([]float64, len(universe))
	for i, genre := range universe {
		if _, ok := set[strings.ToLower(genre)]; ok {
			vec[i] = 1
		}
	}
	return vec
}

// CosineSimilarity returns the cosine similarity of two vectors in [0,1].
// Mismatched lengths return 0 (vectors built against different universes
// are not comparable). A zero-magnitude vector returns 0 rather than NaN:
// a title with no genres can never be similar to anything.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// TierFor buckets a similarity score into a display confidence tier.
func TierFor(score float64) models.ConfidenceTier {
	switch {
	case score >= tierHighThreshold:
		return models.TierHigh
	case score >= tierMediumThreshold:
		return models.TierMedium
	default:
		return models.TierLow
	}
}

// RoundScore rounds a similarity score to 3 decimals for presentation.
func RoundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}

// MatchReasons derives human-readable match explanations from the shared
// genres of a source set and a target set. Intersection is case-insensitive;
// the source's stored casing and ordering are preserved in the output.
func MatchReasons(sourceGenres, targetGenres []string) []string {
	targetSet := make(map[string]struct{}, len(targetGenres))
	for _, g := range targetGenres {
		targetSet[strings.ToLower(g)] = struct{}{}
	}

	var shared []string
	seen := make(map[string]struct{})
	for _, g := range sourceGenres {
		lower := strings.ToLower(g)
		if _, dup := seen[lower]; dup {
			continue
		}
		if _, ok := targetSet[lower]; ok {
			shared = append(shared, g)
			seen[lower] = struct{}{}
		}
	}

	switch len(shared) {
	case 0:
		return []string{"Similar content style"}
	case 1:
		return []string{fmt.Sprintf("Same %s genre", shared[0])}
	case 2:
		return []string{fmt.Sprintf("Same %s and %s genres", shared[0], shared[1])}
	default:
		return []string{fmt.Sprintf("Multiple shared genres: %s", strings.Join(shared[:3], ", "))}
	}
}
