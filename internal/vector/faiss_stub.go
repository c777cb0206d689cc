//go:build !faiss || !cgo
// +build !faiss !cgo

package vector

import (
	"context"
	"fmt"
)

// FAISSIndex is a stub when the faiss build tag is not set.
// Build with -tags=faiss to enable FAISS support.
type FAISSIndex struct{}

// NewFAISSIndex returns an error because FAISS is not available.
func NewFAISSIndex(_ []string, _ [][]float32) (*FAISSIndex, error) {
	return nil, fmt.Errorf("FAISS not available: build with -tags=faiss and install the FAISS library")
}

// Search is not implemented without FAISS.
func (f *FAISSIndex) Search(_ context.Context, _ []float32, _ int) ([]*Result, error) {
	return nil, fmt.Errorf("FAISS not available")
}

// Names returns nil without FAISS.
func (f *FAISSIndex) Names() []string {
	return nil
}

// Dimensions returns 0 without FAISS.
func (f *FAISSIndex) Dimensions() int {
	return 0
}

// Size returns 0 without FAISS.
func (f *FAISSIndex) Size() int {
	return 0
}

// Save is not implemented without FAISS.
func (f *FAISSIndex) Save(_ string) error {
	return fmt.Errorf("FAISS not available")
}

// Close is a no-op without FAISS.
func (f *FAISSIndex) Close() error {
	return nil
}
