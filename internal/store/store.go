// Package store composes a text embedder with a vector index and owns the
// index lifecycle: uninitialized, built (read-only), atomically rebuilt.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hyperjump/annai/internal/embedding"
	"github.com/hyperjump/annai/internal/vector"
)

var (
	// ErrNotInitialized is returned by Search and Save before the first Build or Load.
	ErrNotInitialized = errors.New("embedding store not initialized")
	// ErrFormat is returned by Load when the persisted artifacts are corrupt
	// or their counts disagree.
	ErrFormat = errors.New("invalid index format")
)

// Persisted artifact names. A saved store is a directory holding exactly
// these two files: the opaque vector blob and the identifier list, one per
// line, in insertion order.
const (
	indexFile       = "index.bin"
	identifiersFile = "identifiers.txt"
)

// Match is a search hit: an identifier and its similarity score in (0, 1].
type Match struct {
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
}

// Store is an embedding store. The same embedder instance is used for build
// and query so both live in one vector space. Concurrent Search calls are
// safe; Build and Load replace the index wholesale under a write lock so
// readers see either the old or the new index, never a partial one.
type Store struct {
	embedder  embedding.Embedder
	indexType string
	scale     float64
	logger    *zap.Logger

	mu    sync.RWMutex
	index vector.Index // nil until the first Build or Load
}

// New creates an uninitialized store. scale is the distance-to-similarity
// scale constant; <= 0 selects the default. indexType selects the vector
// index implementation ("" means flat).
func New(embedder embedding.Embedder, indexType string, scale float64, logger *zap.Logger) *Store {
	if scale <= 0 {
		scale = vector.DefaultSimilarityScale
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		embedder:  embedder,
		indexType: indexType,
		scale:     scale,
		logger:    logger,
	}
}

// Build embeds every description and replaces the index atomically. The
// descriptions and identifiers must be in lockstep: identifiers[i] names the
// model described by descriptions[i], and that ordinal is how search results
// map back to identifiers.
func (s *Store) Build(ctx context.Context, descriptions, identifiers []string) error {
	if len(descriptions) != len(identifiers) {
		return fmt.Errorf("descriptions and identifiers length mismatch: %d vs %d",
			len(descriptions), len(identifiers))
	}
	if len(descriptions) == 0 {
		return fmt.Errorf("cannot build from an empty description list")
	}

	s.logger.Info("building embedding index", zap.Int("count", len(descriptions)))

	vectors, err := s.embedder.EmbedBatch(ctx, descriptions)
	if err != nil {
		return fmt.Errorf("embed descriptions: %w", err)
	}
	idx, err := vector.NewIndex(s.indexType, identifiers, vectors)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	s.swap(idx)
	s.logger.Info("embedding index built",
		zap.Int("vectors", idx.Size()),
		zap.Int("dimensions", idx.Dimensions()))
	return nil
}

// Search embeds the query and returns the k nearest identifiers with their
// similarity scores, best first. Returns min(k, Size()) matches.
func (s *Store) Search(ctx context.Context, query string, k int) ([]Match, error) {
	s.mu.RLock()
	idx := s.index
	s.mu.RUnlock()
	if idx == nil {
		return nil, ErrNotInitialized
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := idx.Search(ctx, queryVec, k)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Name:       r.Name,
			Similarity: vector.DistanceToSimilarity(r.Distance, s.scale),
		}
	}
	s.logger.Debug("embedding search",
		zap.String("query", query),
		zap.Int("k", k),
		zap.Int("results", len(matches)))
	return matches, nil
}

// Save persists the store to dir as its two artifacts.
func (s *Store) Save(dir string) error {
	s.mu.RLock()
	idx := s.index
	s.mu.RUnlock()
	if idx == nil {
		return ErrNotInitialized
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	if err := idx.Save(filepath.Join(dir, indexFile)); err != nil {
		return fmt.Errorf("save vector blob: %w", err)
	}
	names := idx.Names()
	data := strings.Join(names, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, identifiersFile), []byte(data), 0644); err != nil {
		return fmt.Errorf("save identifiers: %w", err)
	}
	s.logger.Info("embedding store saved", zap.String("dir", dir), zap.Int("vectors", idx.Size()))
	return nil
}

// Load restores a store saved by Save and replaces the index atomically.
// The identifier count must equal the vector count; any disagreement or
// corruption fails with ErrFormat.
func (s *Store) Load(dir string) error {
	identifiers, err := readIdentifiers(filepath.Join(dir, identifiersFile))
	if err != nil {
		return err
	}
	dim, vectors, err := vector.ReadVectorBlob(filepath.Join(dir, indexFile))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if len(identifiers) != len(vectors) {
		return fmt.Errorf("%w: %d identifiers but %d vectors",
			ErrFormat, len(identifiers), len(vectors))
	}
	if d := s.embedder.Dimensions(); d > 0 && d != dim {
		return fmt.Errorf("%w: blob dimension %d, embedder dimension %d",
			vector.ErrDimensionMismatch, dim, d)
	}

	idx, err := vector.NewIndex(s.indexType, identifiers, vectors)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	s.swap(idx)
	s.logger.Info("embedding store loaded",
		zap.String("dir", dir),
		zap.Int("vectors", idx.Size()),
		zap.Int("dimensions", dim))
	return nil
}

// Size returns the number of indexed vectors, 0 when uninitialized.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return 0
	}
	return s.index.Size()
}

// Dimensions returns the index dimension, 0 when uninitialized.
func (s *Store) Dimensions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return 0
	}
	return s.index.Dimensions()
}

// Names returns the indexed identifiers in insertion order, nil when uninitialized.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil
	}
	return s.index.Names()
}

// Close releases the index and the embedder.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index != nil {
		_ = s.index.Close()
		s.index = nil
	}
	return s.embedder.Close()
}

// swap installs a new index, closing the old one after the exchange.
func (s *Store) swap(idx vector.Index) {
	s.mu.Lock()
	old := s.index
	s.index = idx
	s.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
}

func readIdentifiers(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read identifiers: %v", ErrFormat, err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	identifiers := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			identifiers = append(identifiers, line)
		}
	}
	if len(identifiers) == 0 {
		return nil, fmt.Errorf("%w: identifiers file is empty", ErrFormat)
	}
	return identifiers, nil
}
