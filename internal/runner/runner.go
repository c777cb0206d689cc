// Package runner executes queries against the model a routing decision
// selected. Each known model has a dedicated adapter; the set is closed and
// dispatch is over an enumerated kind, so an unrecognized model name fails
// loudly instead of falling into a default branch.
package runner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownModel is returned when no adapter exists for a model name.
var ErrUnknownModel = errors.New("no executor for model")

// Kind enumerates the models the runner can execute.
type Kind int

const (
	KindSmallMath Kind = iota
	KindDeepSeekMath
	KindResearchGPT
	KindRoastGPT
)

var kindByName = map[string]Kind{
	"Small-Math":    KindSmallMath,
	"DeepSeek-Math": KindDeepSeekMath,
	"Research-GPT":  KindResearchGPT,
	"Roast-GPT":     KindRoastGPT,
}

// KindForName resolves a model name to its executor kind.
func KindForName(name string) (Kind, error) {
	kind, ok := kindByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return kind, nil
}

// Names returns the model names the runner can execute.
func Names() []string {
	names := make([]string, 0, len(kindByName))
	for name := range kindByName {
		names = append(names, name)
	}
	return names
}

// Execute runs query against the named model and returns its response.
func Execute(name, query string) (string, error) {
	kind, err := KindForName(name)
	if err != nil {
		return "", err
	}
	switch kind {
	case KindSmallMath:
		return respondSmallMath(query)
	case KindDeepSeekMath:
		return respondDeepSeekMath(query), nil
	case KindResearchGPT:
		return respondResearchGPT(query), nil
	case KindRoastGPT:
		return respondRoastGPT(query), nil
	default:
		return "", fmt.Errorf("%w: kind %d", ErrUnknownModel, kind)
	}
}

func respondSmallMath(query string) (string, error) {
	expr := ExtractExpression(query)
	if expr == "" {
		return "Small-Math handles arithmetic. Give me an expression like 12*(3+4).", nil
	}
	value, err := EvalArithmetic(expr)
	if err != nil {
		return "", fmt.Errorf("evaluate %q: %w", expr, err)
	}
	return fmt.Sprintf("%s = %s", expr, formatNumber(value)), nil
}

// formatNumber renders integral results without a trailing ".0".
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func respondDeepSeekMath(query string) string {
	var b strings.Builder
	b.WriteString("Working through the problem step by step:\n")
	b.WriteString("1. Identify the governing equations and known quantities.\n")
	b.WriteString("2. Choose a solution method suited to the structure of the problem.\n")
	b.WriteString("3. Carry out the derivation, checking each transformation.\n")
	b.WriteString("4. Verify the result against boundary conditions.\n")
	fmt.Fprintf(&b, "Applied to: %s", query)
	return b.String()
}

func respondResearchGPT(query string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is a structured explanation of %q:\n", query)
	b.WriteString("Background: the topic sits at the intersection of several established ideas.\n")
	b.WriteString("Core concepts: the key mechanisms and the relationships between them.\n")
	b.WriteString("Implications: what follows in practice and where the open questions remain.")
	return b.String()
}

func respondRoastGPT(query string) string {
	return fmt.Sprintf(
		"Oh, %q? Bold of you to bring that here. Let's just say the bar was low and you brought a shovel.",
		query)
}
