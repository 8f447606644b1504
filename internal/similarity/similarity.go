// Package similarity scores content similarity between enriched songs across
// genre, theme, and keyword facets.
package similarity

import "tunesage/internal/models"

// Weights combines the per-facet Jaccard scores. Callers are responsible for
// weights summing to 1; no internal renormalization happens.
type Weights struct {
	Genre   float64
	Theme   float64
	Keyword float64
}

// DefaultWeights matches the tuning the recommender ships with
func DefaultWeights() Weights {
	return Weights{Genre: 0.3, Theme: 0.4, Keyword: 0.3}
}

// Score computes the weighted content similarity between two enriched songs,
// in [0,1]. Missing insights on either side count as empty facet sets.
func Score(a, b *models.EnrichedSong, w Weights) float64 {
	genre := jaccard(a.ArtistGenres, b.ArtistGenres)
	theme := jaccard(a.Themes(), b.Themes())
	keyword := jaccard(a.Keywords(), b.Keywords())

	return genre*w.Genre + theme*w.Theme + keyword*w.Keyword
}

// Matrix computes pairwise similarity scores for a set of songs. The result
// is symmetric with 1.0 on the diagonal only when facets are populated.
func Matrix(songs []*models.EnrichedSong, w Weights) [][]float64 {
	matrix := make([][]float64, len(songs))
	for i := range songs {
		matrix[i] = make([]float64, len(songs))
	}
	for i := range songs {
		for j := i; j < len(songs); j++ {
			score := Score(songs[i], songs[j], w)
			matrix[i][j] = score
			matrix[j][i] = score
		}
	}
	return matrix
}

// jaccard computes |intersection| / |union| over two string slices treated as
// sets, defined as 0.0 when both are empty
func jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for item := range setA {
		if _, ok := setB[item]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
