// Package vector provides exact nearest-neighbor indexes over embedding vectors.
package vector

import (
	"context"
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when a query or stored vector does not
// match the index dimension.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Result is a single nearest-neighbor hit. Position is the insertion ordinal
// of the entry (0-based build order); Distance is squared Euclidean.
type Result struct {
	Name     string
	Position int
	Distance float64
}

// Index defines exact k-nearest-neighbor retrieval by squared Euclidean
// distance. Indexes are immutable once constructed: a rebuild constructs a
// new index and the owner swaps it in atomically.
type Index interface {
	Search(ctx context.Context, query []float32, k int) ([]*Result, error)
	Names() []string
	Dimensions() int
	Size() int
	Save(path string) error
	Close() error
}

// IndexType selects the index implementation.
type IndexType string

const (
	// IndexTypeFlat is the pure-Go brute-force index. Exact, no
	// dependencies, right for small candidate sets.
	IndexTypeFlat IndexType = "flat"
	// IndexTypeFAISS uses FAISS IndexFlatL2. Requires the faiss build tag
	// and the FAISS C library.
	IndexTypeFAISS IndexType = "faiss"
)

// NewIndex builds an index of the given type from paired names and vectors.
// An empty type selects flat.
func NewIndex(indexType string, names []string, vectors [][]float32) (Index, error) {
	switch IndexType(indexType) {
	case IndexTypeFlat, "":
		return NewFlatIndex(names, vectors)
	case IndexTypeFAISS:
		return NewFAISSIndex(names, vectors)
	default:
		return nil, fmt.Errorf("unknown index type: %s (supported: flat, faiss)", indexType)
	}
}
