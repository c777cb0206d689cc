package runner

import (
	"fmt"
	"strconv"
	"strings"
)

// EvalArithmetic evaluates an expression restricted to the numeric grammar:
// decimal numbers, + - * /, parentheses, unary minus, and whitespace.
// Anything outside that grammar is rejected. This deliberately replaces any
// general-purpose expression evaluation: the grammar cannot name variables,
// functions, or anything else.
func EvalArithmetic(expr string) (float64, error) {
	p := &arithParser{input: expr}
	p.skipSpaces()
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("unexpected character %q at position %d", p.input[p.pos], p.pos)
	}
	return value, nil
}

// arithParser is a recursive-descent parser over the numeric grammar:
//
//	expr   = term   { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = number | "-" factor | "(" expr ")"
type arithParser struct {
	input string
	pos   int
}

func (p *arithParser) parseExpr() (float64, error) {
	value, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value -= rhs
		default:
			return value, nil
		}
	}
}

func (p *arithParser) parseTerm() (float64, error) {
	value, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			value *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			value /= rhs
		default:
			return value, nil
		}
	}
}

func (p *arithParser) parseFactor() (float64, error) {
	p.skipSpaces()
	switch c := p.peek(); {
	case c == '-':
		p.pos++
		value, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		return -value, nil
	case c == '(':
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return value, nil
	case c >= '0' && c <= '9', c == '.':
		return p.parseNumber()
	case c == 0:
		return 0, fmt.Errorf("unexpected end of expression")
	default:
		return 0, fmt.Errorf("unexpected character %q at position %d", c, p.pos)
	}
}

func (p *arithParser) parseNumber() (float64, error) {
	start := p.pos
	sawDot := false
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '.' {
			if sawDot {
				break
			}
			sawDot = true
			p.pos++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		p.pos++
	}
	text := p.input[start:p.pos]
	if text == "" || text == "." {
		return 0, fmt.Errorf("invalid number at position %d", start)
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", text, err)
	}
	return value, nil
}

func (p *arithParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *arithParser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

// ExtractExpression returns the longest run of characters from query that
// belongs to the numeric grammar, trimmed, or "" when none is present.
func ExtractExpression(query string) string {
	best := ""
	start := -1
	isExprChar := func(c byte) bool {
		return c >= '0' && c <= '9' ||
			strings.IndexByte("+-*/(). ", c) >= 0
	}
	for i := 0; i <= len(query); i++ {
		if i < len(query) && isExprChar(query[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			candidate := strings.TrimSpace(query[start:i])
			if len(candidate) > len(best) && strings.ContainsAny(candidate, "0123456789") {
				best = candidate
			}
			start = -1
		}
	}
	return best
}
