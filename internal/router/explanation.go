package router

import (
	"fmt"
	"strings"

	"github.com/hyperjump/annai/internal/classify"
)

// Fixed reason fragments keyed by classification labels. The explanation is
// narrative only; changing these strings never changes which model is chosen.
var intentReasons = map[classify.Intent]string{
	classify.IntentArithmetic:   "the query involves basic arithmetic operations",
	classify.IntentMathematical: "the query requires advanced mathematical reasoning",
	classify.IntentExplanatory:  "the query asks for detailed explanation or research-level content",
	classify.IntentCreative:     "the query is creative, humorous, or entertainment-focused",
}

var complexityReasons = map[classify.Complexity]string{
	classify.ComplexityLow:    "it has low computational complexity",
	classify.ComplexityMedium: "it involves multi-step reasoning",
	classify.ComplexityHigh:   "it requires deep analysis and comprehensive response",
}

// buildExplanation joins the reason fragments into one sentence naming the
// selected model.
func buildExplanation(model string, intent classify.Intent, complexity classify.Complexity, confidence classify.Confidence) string {
	reasons := []string{
		intentReasons[intent],
		complexityReasons[complexity],
		fmt.Sprintf("embedding similarity indicates %s confidence match", confidence),
	}
	return fmt.Sprintf("Selected %s because %s. This model is optimized for this type of query.",
		model, strings.Join(reasons, ", "))
}
