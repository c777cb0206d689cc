package runner

import (
	"errors"
	"strings"
	"testing"
)

func TestEvalArithmetic(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"2+3", 5},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 / 4", 2.5},
		{"-3 + 5", 2},
		{"2 * -3", -6},
		{"1.5 + 2.25", 3.75},
		{"((1))", 1},
		{"100 - 7 - 3", 90},
	}
	for _, tc := range cases {
		got, err := EvalArithmetic(tc.expr)
		if err != nil {
			t.Errorf("EvalArithmetic(%q): %v", tc.expr, err)
			continue
		}
		if got != tc.want {
			t.Errorf("EvalArithmetic(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestEvalArithmetic_Rejects(t *testing.T) {
	for _, expr := range []string{
		"",
		"2 +",
		"(2 + 3",
		"2 ** 3",
		"x + 1",
		"1 / 0",
		"1..5",
		"__import__('os')",
		"2; 3",
	} {
		if _, err := EvalArithmetic(expr); err == nil {
			t.Errorf("EvalArithmetic(%q) succeeded, want error", expr)
		}
	}
}

func TestExtractExpression(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"What is 2 + 3?", "2 + 3"},
		{"compute 12*(3+4) for me", "12*(3+4)"},
		{"no numbers here", ""},
		{"7", "7"},
	}
	for _, tc := range cases {
		if got := ExtractExpression(tc.query); got != tc.want {
			t.Errorf("ExtractExpression(%q) = %q, want %q", tc.query, got, tc.want)
		}
	}
}

func TestExecute_SmallMath(t *testing.T) {
	out, err := Execute("Small-Math", "What is 2 + 3?")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "= 5") {
		t.Errorf("response %q does not contain the result", out)
	}
}

func TestExecute_SmallMath_DivisionByZero(t *testing.T) {
	if _, err := Execute("Small-Math", "what is 1/0"); err == nil {
		t.Fatal("expected error for division by zero")
	}
}

func TestExecute_AllKnownModels(t *testing.T) {
	for _, name := range Names() {
		out, err := Execute(name, "Explain recursion")
		if err != nil {
			t.Errorf("Execute(%q): %v", name, err)
			continue
		}
		if out == "" {
			t.Errorf("Execute(%q) returned empty response", name)
		}
	}
}

func TestExecute_UnknownModel(t *testing.T) {
	_, err := Execute("Ghost-Model", "hello")
	if !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("err = %v, want ErrUnknownModel", err)
	}
}
