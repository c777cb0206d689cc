package vector

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// Vector blob layout (little endian): dimension (uint32), count (uint32),
// then count*dimension raw float32 values. Identifiers are deliberately not
// stored here; they live in a sibling plain-text artifact owned by the store.

// WriteVectorBlob writes vectors to path, creating parent directories as needed.
func WriteVectorBlob(path string, dimensions int, vectors [][]float32) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create blob file: %w", err)
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, uint32(dimensions)); err != nil {
		return fmt.Errorf("write dimensions: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(len(vectors))); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	buf := make([]byte, dimensions*4)
	for i, vec := range vectors {
		if len(vec) != dimensions {
			return fmt.Errorf("%w: vector %d has dimension %d, expected %d",
				ErrDimensionMismatch, i, len(vec), dimensions)
		}
		for j, v := range vec {
			binary.LittleEndian.PutUint32(buf[j*4:(j+1)*4], math.Float32bits(v))
		}
		if _, err := f.Write(buf); err != nil {
			return fmt.Errorf("write vector %d: %w", i, err)
		}
	}
	return nil
}

// ReadVectorBlob reads a vector blob from path and returns the dimension and
// the vectors in stored order. A truncated or malformed file is an error.
func ReadVectorBlob(path string) (int, [][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("open blob file: %w", err)
	}
	defer f.Close()

	var dim, count uint32
	if err := binary.Read(f, binary.LittleEndian, &dim); err != nil {
		return 0, nil, fmt.Errorf("read dimensions: %w", err)
	}
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return 0, nil, fmt.Errorf("read count: %w", err)
	}
	if dim == 0 {
		return 0, nil, fmt.Errorf("blob has zero dimension")
	}

	vectors := make([][]float32, 0, count)
	buf := make([]byte, int(dim)*4)
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(f, buf); err != nil {
			return 0, nil, fmt.Errorf("read vector %d: %w", i, err)
		}
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[j*4 : (j+1)*4]))
		}
		vectors = append(vectors, vec)
	}
	// Anything after the declared vectors is corruption.
	if n, _ := f.Read(make([]byte, 1)); n != 0 {
		return 0, nil, fmt.Errorf("blob has trailing data after %d vectors", count)
	}
	return int(dim), vectors, nil
}
