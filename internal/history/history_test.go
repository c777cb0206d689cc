package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hyperjump/annai/internal/catalog"
	"github.com/hyperjump/annai/internal/classify"
	"github.com/hyperjump/annai/internal/router"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	log, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func sampleDecision() *router.Decision {
	return &router.Decision{
		Query:         "What is 2 + 3?",
		SelectedModel: "Small-Math",
		Model:         &catalog.Model{Name: "Small-Math"},
		Similarity:    0.82,
		Intent:        classify.IntentArithmetic,
		Complexity:    classify.ComplexityLow,
		Confidence:    classify.ConfidenceHigh,
	}
}

func TestRecordAndRecent(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()

	entry, err := log.Record(ctx, sampleDecision())
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.ID == "" {
		t.Error("entry has empty ID")
	}

	entries, err := log.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	got := entries[0]
	if got.SelectedModel != "Small-Math" || got.Intent != "arithmetic" || got.Similarity != 0.82 {
		t.Errorf("unexpected entry: %+v", got)
	}
}

func TestRecent_Limit(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := log.Record(ctx, sampleDecision()); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := log.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}

	n, err := log.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 5 {
		t.Errorf("Count = %d, want 5", n)
	}
}

func TestRecent_Empty(t *testing.T) {
	log := openTestLog(t)

	entries, err := log.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}
