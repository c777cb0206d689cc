package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hyperjump/annai/internal/catalog"
	"github.com/hyperjump/annai/internal/classify"
	"github.com/hyperjump/annai/internal/embedding"
	"github.com/hyperjump/annai/internal/store"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	s := store.New(embedding.NewMockEmbedder(32), "", 0, nil)
	e := NewEngine(s, catalog.Default(), classify.NewAnalyzer(nil), nil)
	if err := e.BuildIndex(context.Background()); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestRoute_ExactDescriptionMatch(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	// Querying with a model's own description text embeds to distance 0
	// under the deterministic embedder, so that model must win with
	// similarity 1 and high confidence.
	m, err := e.Catalog().ByName("Research-GPT")
	if err != nil {
		t.Fatal(err)
	}
	d, err := e.Route(ctx, m.Description)
	if err != nil {
		t.Fatal(err)
	}
	if d.SelectedModel != "Research-GPT" {
		t.Errorf("SelectedModel=%s", d.SelectedModel)
	}
	if d.Similarity != 1 {
		t.Errorf("Similarity=%f, want 1", d.Similarity)
	}
	if d.Confidence != classify.ConfidenceHigh {
		t.Errorf("Confidence=%s", d.Confidence)
	}
	if d.Model == nil || d.Model.Complexity != catalog.LevelHigh {
		t.Errorf("Model metadata missing or wrong: %+v", d.Model)
	}
}

func TestRoute_ClassificationSignals(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	tests := []struct {
		query      string
		intent     classify.Intent
		complexity classify.Complexity
	}{
		{"2 + 3", classify.IntentArithmetic, classify.ComplexityLow},
		{"Solve the differential equation dy/dx = x^2", classify.IntentMathematical, classify.ComplexityHigh},
		{"Explain transformer architecture in detail", classify.IntentExplanatory, classify.ComplexityHigh},
		{"Roast me", classify.IntentCreative, classify.ComplexityLow},
	}
	for _, tt := range tests {
		d, err := e.Route(ctx, tt.query)
		if err != nil {
			t.Fatalf("Route(%q): %v", tt.query, err)
		}
		if d.Intent != tt.intent {
			t.Errorf("Route(%q).Intent=%s, want %s", tt.query, d.Intent, tt.intent)
		}
		if d.Complexity != tt.complexity {
			t.Errorf("Route(%q).Complexity=%s, want %s", tt.query, d.Complexity, tt.complexity)
		}
		if d.Similarity <= 0 || d.Similarity > 1 {
			t.Errorf("Route(%q).Similarity=%f out of (0,1]", tt.query, d.Similarity)
		}
		if d.SelectedModel == "" || d.Model == nil {
			t.Errorf("Route(%q) missing selection", tt.query)
		}
	}
}

func TestRoute_Explanation(t *testing.T) {
	e := newTestEngine(t)
	d, err := e.Route(context.Background(), "2 + 3")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		d.SelectedModel,
		"the query involves basic arithmetic operations",
		"it has low computational complexity",
		"confidence match",
	} {
		if !strings.Contains(d.Explanation, want) {
			t.Errorf("explanation missing %q: %s", want, d.Explanation)
		}
	}
}

func TestRoute_SelectionFollowsSearchOnly(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	// The top search hit and the routed model must agree: heuristics never
	// override the nearest neighbor.
	for _, query := range []string{"2 + 3", "Roast me", "explain calculus", "tell me a story"} {
		matches, err := e.Store().Search(ctx, query, 1)
		if err != nil {
			t.Fatal(err)
		}
		d, err := e.Route(ctx, query)
		if err != nil {
			t.Fatal(err)
		}
		if d.SelectedModel != matches[0].Name {
			t.Errorf("Route(%q) picked %s, search top hit is %s", query, d.SelectedModel, matches[0].Name)
		}
	}
}

func TestRoute_BeforeBuild(t *testing.T) {
	s := store.New(embedding.NewMockEmbedder(16), "", 0, nil)
	e := NewEngine(s, catalog.Default(), classify.NewAnalyzer(nil), nil)
	if _, err := e.Route(context.Background(), "hello"); !errors.Is(err, store.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestRoute_CatalogDrift(t *testing.T) {
	// An index whose identifiers are absent from the catalog must surface
	// ErrUnknownModel rather than a partial decision.
	s := store.New(embedding.NewMockEmbedder(16), "", 0, nil)
	ctx := context.Background()
	if err := s.Build(ctx, []string{"some capability"}, []string{"Ghost-Model"}); err != nil {
		t.Fatal(err)
	}
	e := NewEngine(s, catalog.Default(), classify.NewAnalyzer(nil), nil)
	_, err := e.Route(ctx, "anything")
	if !errors.Is(err, catalog.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestReload(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	small, err := catalog.New([]*catalog.Model{
		{Name: "Only", Description: "the only model left", Complexity: catalog.LevelLow, Cost: catalog.LevelLow, Latency: catalog.LevelLow},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Reload(ctx, small); err != nil {
		t.Fatal(err)
	}
	d, err := e.Route(ctx, "whatever you like")
	if err != nil {
		t.Fatal(err)
	}
	if d.SelectedModel != "Only" {
		t.Errorf("SelectedModel=%s after reload", d.SelectedModel)
	}
	if e.Catalog().Size() != 1 {
		t.Errorf("catalog not swapped")
	}
}
