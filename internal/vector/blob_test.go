package vector

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVectorBlob_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.bin")
	vectors := [][]float32{
		{1.5, -2.25, 0},
		{0.125, 3, -1},
	}
	if err := WriteVectorBlob(path, 3, vectors); err != nil {
		t.Fatal(err)
	}
	dim, got, err := ReadVectorBlob(path)
	if err != nil {
		t.Fatal(err)
	}
	if dim != 3 {
		t.Fatalf("dim=%d", dim)
	}
	if len(got) != 2 {
		t.Fatalf("count=%d", len(got))
	}
	for i := range vectors {
		for j := range vectors[i] {
			if got[i][j] != vectors[i][j] {
				t.Errorf("vector[%d][%d]=%f, want %f", i, j, got[i][j], vectors[i][j])
			}
		}
	}
}

func TestReadVectorBlob_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.bin")
	if err := WriteVectorBlob(path, 4, [][]float32{{1, 2, 3, 4}}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)-5], 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ReadVectorBlob(path); err == nil {
		t.Error("truncated blob should fail to load")
	}
}

func TestReadVectorBlob_TrailingData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.bin")
	if err := WriteVectorBlob(path, 2, [][]float32{{1, 2}}); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte{0xde, 0xad}); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if _, _, err := ReadVectorBlob(path); err == nil {
		t.Error("trailing data should fail to load")
	}
}

func TestReadVectorBlob_Missing(t *testing.T) {
	if _, _, err := ReadVectorBlob(filepath.Join(t.TempDir(), "absent.bin")); err == nil {
		t.Error("missing blob should fail to load")
	}
}
