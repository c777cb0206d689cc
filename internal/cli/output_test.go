package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/annai/internal/catalog"
	"github.com/hyperjump/annai/internal/classify"
	"github.com/hyperjump/annai/internal/router"
)

func sampleDecision() *router.Decision {
	return &router.Decision{
		Query:         "What is 2 + 3?",
		SelectedModel: "Small-Math",
		Model: &catalog.Model{
			Name: "Small-Math", Complexity: catalog.LevelLow,
			Cost: catalog.LevelLow, Latency: catalog.LevelLow,
		},
		Similarity:  0.8452,
		Intent:      classify.IntentArithmetic,
		Complexity:  classify.ComplexityLow,
		Confidence:  classify.ConfidenceHigh,
		Explanation: "Selected Small-Math because the query involves basic arithmetic operations.",
	}
}

func TestWriteDecision_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDecision(&buf, sampleDecision(), OutputJSON); err != nil {
		t.Fatalf("WriteDecision(json): %v", err)
	}
	var decoded router.Decision
	if err := json.NewDecoder(strings.NewReader(buf.String())).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded.SelectedModel != "Small-Math" || decoded.Similarity != 0.8452 {
		t.Errorf("decoded decision: %+v", decoded)
	}
}

func TestWriteDecision_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDecision(&buf, sampleDecision(), OutputText); err != nil {
		t.Fatalf("WriteDecision(text): %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Small-Math", "0.8452", "arithmetic", "high"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteModels_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteModels(&buf, catalog.Default().Models(), OutputText); err != nil {
		t.Fatalf("WriteModels(text): %v", err)
	}
	out := buf.String()
	for _, name := range []string{"Small-Math", "DeepSeek-Math", "Research-GPT", "Roast-GPT"} {
		if !strings.Contains(out, name) {
			t.Errorf("text output missing %q", name)
		}
	}
}

func TestWriteModels_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteModels(&buf, catalog.Default().Models(), OutputJSON); err != nil {
		t.Fatalf("WriteModels(json): %v", err)
	}
	var decoded []*catalog.Model
	if err := json.NewDecoder(strings.NewReader(buf.String())).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 4 {
		t.Errorf("decoded %d models, want 4", len(decoded))
	}
}
