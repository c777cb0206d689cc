// Package cli provides CLI output helpers for Annai.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/annai/internal/catalog"
	"github.com/hyperjump/annai/internal/router"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteDecision writes a routing decision to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteDecision(w io.Writer, d *router.Decision, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	default:
		writeDecisionText(w, d)
		return nil
	}
}

func writeDecisionText(w io.Writer, d *router.Decision) {
	fmt.Fprintf(w, "\nQuery: %s\n", d.Query)
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Selected model: %s\n", d.SelectedModel)
	fmt.Fprintf(w, "Similarity: %.4f | Confidence: %s\n", d.Similarity, d.Confidence)
	fmt.Fprintf(w, "Intent: %s | Complexity: %s\n", d.Intent, d.Complexity)
	if d.Model != nil {
		fmt.Fprintf(w, "Cost: %s | Latency: %s\n", d.Model.Cost, d.Model.Latency)
	}
	fmt.Fprintf(w, "\n%s\n", d.Explanation)
}

// WriteModels writes the catalog model list to w in the given format.
func WriteModels(w io.Writer, models []*catalog.Model, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(models)
	default:
		for _, m := range models {
			fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
			fmt.Fprintf(w, "%s (complexity: %s, cost: %s, latency: %s)\n",
				m.Name, m.Complexity, m.Cost, m.Latency)
			fmt.Fprintf(w, "  %s\n", m.Description)
		}
		return nil
	}
}
