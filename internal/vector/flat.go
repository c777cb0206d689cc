package vector

import (
	"context"
	"fmt"
	"sort"
)

// entry pairs an identifier with its vector. Keeping them in one structure
// (rather than two parallel slices) rules out silent misalignment.
type entry struct {
	name   string
	vector []float32
}

// FlatIndex is a brute-force exact nearest-neighbor index over squared
// Euclidean distance. It is immutable after construction and therefore safe
// for concurrent Search calls without locking.
type FlatIndex struct {
	dimensions int
	entries    []entry
}

// NewFlatIndex builds an index from paired names and vectors. The two slices
// must have equal length and every vector must share the dimension of the
// first. Vectors are copied; the caller may reuse its slices.
func NewFlatIndex(names []string, vectors [][]float32) (*FlatIndex, error) {
	if len(names) != len(vectors) {
		return nil, fmt.Errorf("names and vectors length mismatch: %d vs %d", len(names), len(vectors))
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("cannot build an empty index")
	}
	dimensions := len(vectors[0])
	if dimensions == 0 {
		return nil, fmt.Errorf("vectors must have positive dimension")
	}
	entries := make([]entry, len(names))
	for i, name := range names {
		if len(vectors[i]) != dimensions {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, expected %d",
				ErrDimensionMismatch, i, len(vectors[i]), dimensions)
		}
		vec := make([]float32, dimensions)
		copy(vec, vectors[i])
		entries[i] = entry{name: name, vector: vec}
	}
	return &FlatIndex{dimensions: dimensions, entries: entries}, nil
}

// Search returns the k entries nearest to query by squared Euclidean
// distance, ascending. Ties are broken by ascending insertion position.
// Returns min(k, Size()) results.
func (f *FlatIndex) Search(ctx context.Context, query []float32, k int) ([]*Result, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}
	if len(query) != f.dimensions {
		return nil, fmt.Errorf("%w: query has dimension %d, index expects %d",
			ErrDimensionMismatch, len(query), f.dimensions)
	}

	results := make([]*Result, len(f.entries))
	for i := range f.entries {
		results[i] = &Result{
			Name:     f.entries[i].name,
			Position: i,
			Distance: SquaredDistance(query, f.entries[i].vector),
		}
	}
	// Stable sort keeps insertion order for equal distances.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Names returns the identifiers in insertion order.
func (f *FlatIndex) Names() []string {
	names := make([]string, len(f.entries))
	for i := range f.entries {
		names[i] = f.entries[i].name
	}
	return names
}

// Dimensions returns the vector dimension.
func (f *FlatIndex) Dimensions() int {
	return f.dimensions
}

// Size returns the number of entries.
func (f *FlatIndex) Size() int {
	return len(f.entries)
}

// Save writes the vector blob to path. Identifiers are not part of the blob;
// the owning store persists them separately.
func (f *FlatIndex) Save(path string) error {
	vectors := make([][]float32, len(f.entries))
	for i := range f.entries {
		vectors[i] = f.entries[i].vector
	}
	return WriteVectorBlob(path, f.dimensions, vectors)
}

// Close is a no-op for FlatIndex.
func (f *FlatIndex) Close() error {
	return nil
}
