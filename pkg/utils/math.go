// Package utils provides shared utilities for math, text, and logging.
package utils

import "math"

// NormalizeL2 normalizes the slice in place to unit L2 norm.
// A zero vector is left unchanged.
func NormalizeL2(x []float32) {
	var sum float32
	for _, v := range x {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range x {
		x[i] *= norm
	}
}

// HashString returns a non-negative FNV-style hash of s.
func HashString(s string) int {
	h := 2166136261
	for _, c := range s {
		h = (h * 16777619) ^ int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
