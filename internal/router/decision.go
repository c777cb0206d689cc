// Package router selects a downstream model for a query and explains the choice.
package router

import (
	"github.com/hyperjump/annai/internal/catalog"
	"github.com/hyperjump/annai/internal/classify"
)

// Decision is the outcome of routing one query. Model selection is driven
// solely by embedding similarity against model descriptions; intent and
// complexity feed the explanation only. Decisions are produced fresh per
// query and never mutated afterwards.
type Decision struct {
	Query         string              `json:"query"`
	SelectedModel string              `json:"selected_model"`
	Model         *catalog.Model      `json:"model"`
	Similarity    float64             `json:"similarity_score"`
	Intent        classify.Intent     `json:"intent"`
	Complexity    classify.Complexity `json:"complexity"`
	Confidence    classify.Confidence `json:"confidence"`
	Explanation   string              `json:"explanation"`
}
