//go:build faiss && cgo
// +build faiss,cgo

package vector

/*
#cgo CFLAGS: -I/opt/homebrew/include -I/usr/local/include
#cgo LDFLAGS: -L/opt/homebrew/lib -L/usr/local/lib -lfaiss_c

#include <stdlib.h>
#include <faiss/c_api/Index_c.h>
#include <faiss/c_api/IndexFlat_c.h>
#include <faiss/c_api/index_io_c.h>
#include <faiss/c_api/error_c.h>
*/
import "C"

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unsafe"
)

// FAISSIndex wraps a FAISS IndexFlatL2. Like FlatIndex it is populated once
// at construction and then read-only, so searches need no locking. FAISS
// returns squared L2 distances in ascending order, which matches the Result
// contract directly.
type FAISSIndex struct {
	index      *C.FaissIndexFlatL2
	names      []string
	dimensions int
}

// NewFAISSIndex builds a FAISS flat L2 index from paired names and vectors.
func NewFAISSIndex(names []string, vectors [][]float32) (*FAISSIndex, error) {
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

	var index *C.FaissIndexFlatL2
	if ret := C.faiss_IndexFlatL2_new_with(&index, C.idx_t(dimensions)); ret != 0 {
		return nil, fmt.Errorf("failed to create FAISS index: %s", faissLastError())
	}

	flat := make([]float32, len(vectors)*dimensions)
	for i, vec := range vectors {
		if len(vec) != dimensions {
			C.faiss_Index_free((*C.FaissIndex)(unsafe.Pointer(index)))
			return nil, fmt.Errorf("%w: vector %d has dimension %d, expected %d",
				ErrDimensionMismatch, i, len(vec), dimensions)
		}
		copy(flat[i*dimensions:(i+1)*dimensions], vec)
	}
	ret := C.faiss_Index_add(
		(*C.FaissIndex)(unsafe.Pointer(index)),
		C.idx_t(len(vectors)),
		(*C.float)(unsafe.Pointer(&flat[0])),
	)
	if ret != 0 {
		C.faiss_Index_free((*C.FaissIndex)(unsafe.Pointer(index)))
		return nil, fmt.Errorf("failed to add vectors to FAISS index: %s", faissLastError())
	}

	stored := make([]string, len(names))
	copy(stored, names)
	return &FAISSIndex{index: index, names: stored, dimensions: dimensions}, nil
}

func faissLastError() string {
	cErr := C.faiss_get_last_error()
	if cErr == nil {
		return "unknown error"
	}
	return C.GoString(cErr)
}

// Search returns the k nearest entries by squared L2 distance, ascending.
func (f *FAISSIndex) Search(ctx context.Context, query []float32, k int) ([]*Result, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}
	if len(query) != f.dimensions {
		return nil, fmt.Errorf("%w: query has dimension %d, index expects %d",
			ErrDimensionMismatch, len(query), f.dimensions)
	}
	if k > len(f.names) {
		k = len(f.names)
	}

	distances := make([]float32, k)
	labels := make([]int64, k)
	ret := C.faiss_Index_search(
		(*C.FaissIndex)(unsafe.Pointer(f.index)),
		1,
		(*C.float)(unsafe.Pointer(&query[0])),
		C.idx_t(k),
		(*C.float)(unsafe.Pointer(&distances[0])),
		(*C.idx_t)(unsafe.Pointer(&labels[0])),
	)
	if ret != 0 {
		return nil, fmt.Errorf("FAISS search failed: %s", faissLastError())
	}

	results := make([]*Result, 0, k)
	for i := 0; i < k; i++ {
		label := int(labels[i])
		if label < 0 || label >= len(f.names) {
			continue
		}
		results = append(results, &Result{
			Name:     f.names[label],
			Position: label,
			Distance: float64(distances[i]),
		})
	}
	return results, nil
}

// Names returns the identifiers in insertion order.
func (f *FAISSIndex) Names() []string {
	names := make([]string, len(f.names))
	copy(names, f.names)
	return names
}

// Dimensions returns the vector dimension.
func (f *FAISSIndex) Dimensions() int {
	return f.dimensions
}

// Size returns the number of entries.
func (f *FAISSIndex) Size() int {
	return len(f.names)
}

// Save writes the FAISS index file to path.
func (f *FAISSIndex) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	if ret := C.faiss_write_index_fname((*C.FaissIndex)(unsafe.Pointer(f.index)), cPath); ret != 0 {
		return fmt.Errorf("failed to save FAISS index: %s", faissLastError())
	}
	return nil
}

// Close frees the FAISS index. Not safe to call concurrently with Search.
func (f *FAISSIndex) Close() error {
	if f.index != nil {
		C.faiss_Index_free((*C.FaissIndex)(unsafe.Pointer(f.index)))
		f.index = nil
	}
	return nil
}
