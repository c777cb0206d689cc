package router

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hyperjump/annai/internal/catalog"
	"github.com/hyperjump/annai/internal/classify"
	"github.com/hyperjump/annai/internal/store"
	"github.com/hyperjump/annai/pkg/utils"
)

// Engine routes queries to models. It orchestrates the embedding store (which
// picks the model) and the classifier (which supplies narrative signals),
// then fuses both into a Decision.
type Engine struct {
	store    *store.Store
	analyzer *classify.Analyzer
	logger   *zap.Logger

	mu  sync.RWMutex
	cat *catalog.Catalog
}

// NewEngine creates an engine. The store may be unbuilt; call BuildIndex (or
// store.Load) before the first Route.
func NewEngine(s *store.Store, cat *catalog.Catalog, analyzer *classify.Analyzer, logger *zap.Logger) *Engine {
	if analyzer == nil {
		analyzer = classify.NewAnalyzer(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: s, analyzer: analyzer, logger: logger, cat: cat}
}

// BuildIndex (re)builds the embedding index from the current catalog.
func (e *Engine) BuildIndex(ctx context.Context) error {
	cat := e.Catalog()
	return e.store.Build(ctx, cat.Descriptions(), cat.Names())
}

// Reload replaces the catalog and rebuilds the index from it. The store swap
// is atomic, so concurrent Route calls see either the old or the new index.
func (e *Engine) Reload(ctx context.Context, cat *catalog.Catalog) error {
	if err := e.store.Build(ctx, cat.Descriptions(), cat.Names()); err != nil {
		return err
	}
	e.mu.Lock()
	e.cat = cat
	e.mu.Unlock()
	e.logger.Info("catalog reloaded", zap.Int("models", cat.Size()))
	return nil
}

// Catalog returns the current catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cat
}

// Store returns the underlying embedding store.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Route selects a model for the query and returns the full decision.
// Classification never fails; embedding or index errors abort the call with
// no partial decision.
func (e *Engine) Route(ctx context.Context, query string) (*Decision, error) {
	// Narrative signals only; these never influence selection.
	intent := e.analyzer.DetermineIntent(query)
	complexity := e.analyzer.AnalyzeComplexity(query)

	// Selection is the nearest neighbor over model descriptions, nothing else.
	matches, err := e.store.Search(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("embedding search returned no matches")
	}
	selected := matches[0]

	model, err := e.Catalog().ByName(selected.Name)
	if err != nil {
		// Catalog and index are built from the same list; reaching this
		// means they have drifted apart.
		return nil, fmt.Errorf("search result not in catalog: %w", err)
	}

	confidence := classify.ConfidenceBucket(selected.Similarity)
	decision := &Decision{
		Query:         query,
		SelectedModel: model.Name,
		Model:         model,
		Similarity:    selected.Similarity,
		Intent:        intent,
		Complexity:    complexity,
		Confidence:    confidence,
		Explanation:   buildExplanation(model.Name, intent, complexity, confidence),
	}

	e.logger.Debug("routed query",
		zap.String("query", utils.Truncate(query, 200)),
		zap.String("model", model.Name),
		zap.Float64("similarity", selected.Similarity),
		zap.String("intent", string(intent)),
		zap.String("complexity", string(complexity)),
		zap.String("confidence", string(confidence)))
	return decision, nil
}
