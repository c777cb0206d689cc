package classify

import (
	"regexp"
	"strings"
)

// arithmeticPattern matches "digits, optional space, one of + - * /, optional space, digits".
var arithmeticPattern = regexp.MustCompile(`\d+\s*[\+\-\*/]\s*\d+`)

// Analyzer classifies queries using fixed-priority keyword rules.
// It is stateless apart from its lexicons and safe for concurrent use.
type Analyzer struct {
	lexicons *Lexicons
}

// NewAnalyzer creates an Analyzer. A nil lexicons argument uses the defaults;
// a partial set is completed from the defaults.
func NewAnalyzer(lexicons *Lexicons) *Analyzer {
	if lexicons == nil {
		return &Analyzer{lexicons: DefaultLexicons()}
	}
	lexicons.merge(DefaultLexicons())
	return &Analyzer{lexicons: lexicons}
}

// DetermineIntent returns the primary intent of a query. Rules are evaluated
// in fixed priority order and the first match wins:
// arithmetic pattern, creative keywords, mathematical keywords, explanatory
// keywords, and finally explanatory as the default.
func (a *Analyzer) DetermineIntent(query string) Intent {
	lower := strings.ToLower(query)

	if arithmeticPattern.MatchString(query) {
		return IntentArithmetic
	}
	if containsAny(lower, a.lexicons.Creative) {
		return IntentCreative
	}
	if containsAny(lower, a.lexicons.Mathematical) {
		return IntentMathematical
	}
	if containsAny(lower, a.lexicons.Explanatory) {
		return IntentExplanatory
	}
	return IntentExplanatory
}

// AnalyzeComplexity returns the expected reasoning depth of a query.
// An arithmetic expression is always low. Otherwise the first non-empty
// keyword bucket in priority order high > medium > low decides; a single
// high-tier keyword outranks any number of low-tier hits. With no keyword
// hits at all, word count decides: >15 words high, >8 medium, else low.
func (a *Analyzer) AnalyzeComplexity(query string) Complexity {
	if arithmeticPattern.MatchString(query) {
		return ComplexityLow
	}

	lower := strings.ToLower(query)
	switch {
	case countHits(lower, a.lexicons.HighComplexity) > 0:
		return ComplexityHigh
	case countHits(lower, a.lexicons.MediumComplexity) > 0:
		return ComplexityMedium
	case countHits(lower, a.lexicons.LowComplexity) > 0:
		return ComplexityLow
	}

	words := len(strings.Fields(query))
	switch {
	case words > 15:
		return ComplexityHigh
	case words > 8:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}

// ConfidenceBucket discretizes a similarity score. Both comparisons are
// strict, so boundary values fall to the lower bucket.
func ConfidenceBucket(similarity float64) Confidence {
	switch {
	case similarity > 0.7:
		return ConfidenceHigh
	case similarity > 0.5:
		return ConfidenceModerate
	default:
		return ConfidenceLow
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func countHits(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}
