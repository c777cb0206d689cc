// Package keyword provides a Bleve index over the model catalog for
// text lookups against model names and descriptions. It serves catalog
// inspection only; routing itself is driven by embedding similarity.
package keyword

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/hyperjump/annai/internal/catalog"
)

// Hit is one keyword match against the catalog.
type Hit struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Index is a Bleve-backed lookup over catalog models.
type Index struct {
	mu    sync.RWMutex
	index bleve.Index
}

type modelDoc struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewIndex creates an in-memory Bleve index and indexes every model in cat.
func NewIndex(cat *catalog.Catalog) (*Index, error) {
	index, err := buildIndex(cat)
	if err != nil {
		return nil, err
	}
	return &Index{index: index}, nil
}

func buildIndex(cat *catalog.Catalog) (bleve.Index, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so a query like
	// "math" matches the indexed word exactly.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("description", textFieldMapping)
	docMapping.AddFieldMappingsAt("name", textFieldMapping)
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}

	batch := index.NewBatch()
	for _, m := range cat.Models() {
		doc := modelDoc{Name: m.Name, Description: m.Description}
		if err := batch.Index(m.Name, doc); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to index model %s: %w", m.Name, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to index catalog: %w", err)
	}
	return index, nil
}

// Rebuild replaces the index contents with the models from cat. Lookups see
// either the old or the new contents, never a mix.
func (i *Index) Rebuild(cat *catalog.Catalog) error {
	index, err := buildIndex(cat)
	if err != nil {
		return err
	}
	i.mu.Lock()
	old := i.index
	i.index = index
	i.mu.Unlock()
	return old.Close()
}

// Lookup runs a match query over model names and descriptions and returns up
// to limit hits, best score first.
func (i *Index) Lookup(query string, limit int) ([]*Hit, error) {
	if limit <= 0 {
		limit = 10
	}
	q := bleve.NewMatchQuery(query)
	search := bleve.NewSearchRequest(q)
	search.Size = limit
	i.mu.RLock()
	index := i.index
	i.mu.RUnlock()
	results, err := index.Search(search)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	hits := make([]*Hit, len(results.Hits))
	for n, hit := range results.Hits {
		hits[n] = &Hit{Name: hit.ID, Score: hit.Score}
	}
	return hits, nil
}

// Close releases the index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index.Close()
}
