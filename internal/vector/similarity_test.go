package vector

import (
	"math"
	"testing"
)

func TestSquaredDistance(t *testing.T) {
	d := SquaredDistance([]float32{0, 0}, []float32{3, 4})
	if math.Abs(d-25) > 1e-9 {
		t.Errorf("SquaredDistance=%f, want 25", d)
	}
	if SquaredDistance([]float32{1, 2}, []float32{1, 2}) != 0 {
		t.Error("identical vectors should have distance 0")
	}
}

func TestDistanceToSimilarity(t *testing.T) {
	if s := DistanceToSimilarity(0, 10); s != 1 {
		t.Errorf("distance 0 should give similarity 1, got %f", s)
	}
	s := DistanceToSimilarity(10, 10)
	if math.Abs(s-math.Exp(-1)) > 1e-12 {
		t.Errorf("similarity=%f, want e^-1", s)
	}
}

func TestDistanceToSimilarity_Monotonic(t *testing.T) {
	prev := 2.0 // above the (0,1] range, so any valid similarity is smaller
	for _, d := range []float64{0, 0.5, 1, 5, 10, 100, 1000} {
		s := DistanceToSimilarity(d, 10)
		if s <= 0 || s > 1 {
			t.Errorf("similarity %f out of (0,1] for distance %f", s, d)
		}
		if s >= prev {
			t.Errorf("similarity not strictly decreasing at distance %f", d)
		}
		prev = s
	}
}

func TestDistanceToSimilarity_ScaleFallback(t *testing.T) {
	if got, want := DistanceToSimilarity(10, 0), DistanceToSimilarity(10, DefaultSimilarityScale); got != want {
		t.Errorf("zero scale should use default: got %f, want %f", got, want)
	}
}
