package tool

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/veldtlabs/mentormesh/knowledge"
)

// NewCalculatorTool evaluates arithmetic expressions ("2+2", "3*(4-1)^2").
func NewCalculatorTool() *FunctionTool {
	return NewFunctionTool(
		"calculator",
		"Evaluate an arithmetic expression and return its numeric value",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"expression": map[string]any{
					"type":        "string",
					"description": "Infix arithmetic expression to evaluate",
				},
			},
			"required": []string{"expression"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			expr, _ := args["expression"].(string)
			v, err := evalExpression(expr, nil)
			if err != nil {
				return nil, fmt.Errorf("cannot evaluate %q: %w", expr, err)
			}
			if v == math.Trunc(v) && math.Abs(v) < 1e15 {
				return int64(v), nil
			}
			return v, nil
		},
	)
}

// NewEquationSolverTool solves linear equations in one variable
// ("2x + 3 = 7"). Both sides are evaluated as linear functions of the
// unknown; non-linear input is rejected.
func NewEquationSolverTool() *FunctionTool {
	return NewFunctionTool(
		"equation_solver",
		"Solve a linear equation in one unknown and return its value",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"equation": map[string]any{
					"type":        "string",
					"description": "Linear equation containing '=', e.g. 2x + 3 = 7",
				},
			},
			"required": []string{"equation"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			eq, _ := args["equation"].(string)
			value, variable, err := solveLinear(eq)
			if err != nil {
				return nil, err
			}
			return map[string]any{"variable": variable, "value": value}, nil
		},
	)
}

// solveLinear solves a*x + b = c*x + d for the single letter variable
// appearing in the equation. Each side is probed at three points; a
// non-linear residue at the midpoint is rejected.
func solveLinear(equation string) (float64, string, error) {
	parts := strings.SplitN(equation, "=", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("not an equation (missing '='): %q", equation)
	}

	variable := detectVariable(equation)
	if variable == "" {
		return 0, "", fmt.Errorf("no unknown variable found in %q", equation)
	}

	side := func(expr string, x float64) (float64, error) {
		return evalExpression(expr, map[string]float64{variable: x})
	}

	l0, err := side(parts[0], 0)
	if err != nil {
		return 0, "", fmt.Errorf("left side: %w", err)
	}
	l1, err := side(parts[0], 1)
	if err != nil {
		return 0, "", fmt.Errorf("left side: %w", err)
	}
	r0, err := side(parts[1], 0)
	if err != nil {
		return 0, "", fmt.Errorf("right side: %w", err)
	}
	r1, err := side(parts[1], 1)
	if err != nil {
		return 0, "", fmt.Errorf("right side: %w", err)
	}

	// f(x) = (slope)x + offset for the difference left-right
	slope := (l1 - l0) - (r1 - r0)
	offset := l0 - r0

	// Linearity check at x=2: a linear difference satisfies f(2)=2f(1)-f(0).
	l2, err := side(parts[0], 2)
	if err != nil {
		return 0, "", err
	}
	r2, err := side(parts[1], 2)
	if err != nil {
		return 0, "", err
	}
	if diff := (l2 - r2) - (2*slope + offset); math.Abs(diff) > 1e-9 {
		return 0, "", fmt.Errorf("equation %q is not linear in %s", equation, variable)
	}

	if slope == 0 {
		if offset == 0 {
			return 0, "", fmt.Errorf("equation %q holds for every %s", equation, variable)
		}
		return 0, "", fmt.Errorf("equation %q has no solution", equation)
	}
	return -offset / slope, variable, nil
}

// detectVariable returns the first single-letter identifier in the
// equation.
func detectVariable(equation string) string {
	for _, r := range equation {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return string(r)
		}
	}
	return ""
}

// NewKnowledgeSearchTool exposes the knowledge store as a tool.
func NewKnowledgeSearchTool(store *knowledge.Store) *FunctionTool {
	return NewFunctionTool(
		"knowledge_search",
		"Search the knowledge corpus for passages relevant to a query",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Free text query",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results (default 3)",
				},
			},
			"required": []string{"query"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			limit := 3
			if l, ok := args["limit"].(float64); ok && l > 0 {
				limit = int(l)
			}
			results := store.Search(query, limit)
			if len(results) == 0 {
				return "no relevant knowledge found", nil
			}
			var b strings.Builder
			for i, r := range results {
				if i > 0 {
					b.WriteString("\n")
				}
				fmt.Fprintf(&b, "[%.2f] %s", r.Score, r.Content)
			}
			return b.String(), nil
		},
	)
}

// PlotPoint is one sample of a plotted function.
type PlotPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPlotTool samples an expression of x over an interval and returns the
// points, a text stand-in for a real plotting backend.
func NewPlotTool() *FunctionTool {
	return NewFunctionTool(
		"plotter",
		"Sample a function of x over an interval for plotting",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"expression": map[string]any{
					"type":        "string",
					"description": "Expression of x, e.g. x^2 - 1",
				},
				"from":   map[string]any{"type": "number"},
				"to":     map[string]any{"type": "number"},
				"points": map[string]any{"type": "integer", "description": "Sample count (default 11)"},
			},
			"required": []string{"expression"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			expr, _ := args["expression"].(string)
			from := numArg(args, "from", -5)
			to := numArg(args, "to", 5)
			n := int(numArg(args, "points", 11))
			if n < 2 {
				n = 2
			}
			if to <= from {
				return nil, fmt.Errorf("invalid interval [%v, %v]", from, to)
			}

			samples := make([]PlotPoint, 0, n)
			step := (to - from) / float64(n-1)
			for i := 0; i < n; i++ {
				x := from + float64(i)*step
				y, err := evalExpression(expr, map[string]float64{"x": x})
				if err != nil {
					return nil, fmt.Errorf("cannot sample %q at x=%v: %w", expr, x, err)
				}
				samples = append(samples, PlotPoint{X: x, Y: y})
			}
			return samples, nil
		},
	)
}

func numArg(args map[string]any, key string, fallback float64) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return fallback
	}
}
