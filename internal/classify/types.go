// Package classify provides deterministic, rule-based query classification.
// All functions are total: they return a valid label for any input string.
package classify

// Intent is the coarse purpose of a query.
type Intent string

const (
	IntentArithmetic   Intent = "arithmetic"
	IntentMathematical Intent = "mathematical"
	IntentExplanatory  Intent = "explanatory"
	IntentCreative     Intent = "creative"
)

// Complexity is the expected reasoning depth of a query.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Confidence is the discretized similarity bucket used for narrative purposes.
type Confidence string

const (
	ConfidenceLow      Confidence = "low"
	ConfidenceModerate Confidence = "moderate"
	ConfidenceHigh     Confidence = "high"
)
