package tool

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// evalExpression evaluates an infix arithmetic expression supporting
// + - * / ^, parentheses, unary minus, named variables and implicit
// multiplication ("2x", "3(x+1)"). Used by the calculator, equation solver
// and plotter tools.
func evalExpression(expr string, vars map[string]float64) (float64, error) {
	p := &exprParser{input: []rune(strings.TrimSpace(expr)), vars: vars}
	if len(p.input) == 0 {
		return 0, fmt.Errorf("empty expression")
	}
	v, err := p.parseSum()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected character %q at position %d", p.input[p.pos], p.pos)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("expression has no finite value")
	}
	return v, nil
}

type exprParser struct {
	input []rune
	pos   int
	vars  map[string]float64
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *exprParser) peek() rune {
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

// parseSum := product (('+'|'-') product)*
func (p *exprParser) parseSum() (float64, error) {
	left, err := p.parseProduct()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			left += right
		case '-':
			p.pos++
			right, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

// parseProduct := power (('*'|'/'|implicit) power)*
func (p *exprParser) parseProduct() (float64, error) {
	left, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch c := p.peek(); {
		case c == '*':
			p.pos++
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			left *= right
		case c == '/':
			p.pos++
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		case c == '(' || unicode.IsLetter(c):
			// implicit multiplication: 2x, 3(x+1)
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			left *= right
		default:
			return left, nil
		}
	}
}

// parsePower := unary ('^' power)?  (right associative)
func (p *exprParser) parsePower() (float64, error) {
	base, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.peek() == '^' {
		p.pos++
		exp, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

// parseUnary := ('-'|'+')* primary
func (p *exprParser) parseUnary() (float64, error) {
	p.skipSpace()
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parsePrimary()
}

// parsePrimary := number | variable | '(' sum ')'
func (p *exprParser) parsePrimary() (float64, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, fmt.Errorf("unexpected end of expression")
	}

	c := p.input[p.pos]
	switch {
	case c == '(':
		p.pos++
		v, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil

	case unicode.IsDigit(c) || c == '.':
		start := p.pos
		for p.pos < len(p.input) && (unicode.IsDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
			p.pos++
		}
		v, err := strconv.ParseFloat(string(p.input[start:p.pos]), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", string(p.input[start:p.pos]))
		}
		return v, nil

	case unicode.IsLetter(c):
		start := p.pos
		for p.pos < len(p.input) && unicode.IsLetter(p.input[p.pos]) {
			p.pos++
		}
		name := string(p.input[start:p.pos])
		if v, ok := p.vars[name]; ok {
			return v, nil
		}
		return 0, fmt.Errorf("unknown variable %q", name)

	default:
		return 0, fmt.Errorf("unexpected character %q at position %d", c, p.pos)
	}
}
