package vector

import "math"

// DefaultSimilarityScale is the distance scale used when converting squared
// Euclidean distance to a similarity score.
const DefaultSimilarityScale = 10.0

// SquaredDistance returns the squared Euclidean distance between a and b.
// The slices must have equal length.
func SquaredDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return sum
}

// DistanceToSimilarity maps a non-negative distance to a similarity score in
// (0, 1] via exp(-distance/scale). The mapping is strictly decreasing:
// distance 0 gives similarity 1, larger distances approach 0. A scale <= 0
// falls back to DefaultSimilarityScale.
func DistanceToSimilarity(distance, scale float64) float64 {
	if scale <= 0 {
		scale = DefaultSimilarityScale
	}
	return math.Exp(-distance / scale)
}
