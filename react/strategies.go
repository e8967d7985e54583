// Package react implements the per-agent think/act/observe reasoning loop.
// Each iteration derives a thought from the reasoning provider, decides
// whether the thought implies an action, executes the parsed tool call and
// records the observation. The loop is bounded by a hard iteration cap and
// never loses a step. Detection and parsing are pluggable strategy
// functions so keyword heuristics can be swapped for model-backed
// implementations without touching loop logic.
package react

import (
	"regexp"
	"strings"

	"github.com/veldtlabs/mentormesh/core"
)

// ActionDetector classifies whether a thought implies a tool action.
type ActionDetector func(thought string) bool

// ToolCallParser extracts a structured tool call from a thought, returning
// nil when no call can be parsed.
type ToolCallParser func(thought string) *core.ToolCall

// actionVerbs is the allow-list of verbs implying an action, with common
// French variants since sessions may run in either language.
var actionVerbs = []string{
	"calculate", "calcule", "compute",
	"solve", "résous", "résoudre",
	"search", "cherche", "look up",
	"plot", "trace", "graph",
	"verify", "vérifie",
}

// DefaultActionDetector reports whether the thought contains an allowed
// action verb.
func DefaultActionDetector(thought string) bool {
	t := strings.ToLower(thought)
	for _, verb := range actionVerbs {
		if strings.Contains(t, verb) {
			return true
		}
	}
	return false
}

var (
	// an arithmetic expression with at least one operator
	expressionPattern = regexp.MustCompile(`[-+]?[0-9][0-9 .]*(?:[+\-*/^][ ]*[-+]?[0-9(][0-9 .+\-*/^()]*)+`)
	// an expression of x for plotting
	plotPattern = regexp.MustCompile(`[0-9x .+\-*/^()]*x[0-9x .+\-*/^()]*`)
)

// DefaultToolCallParser extracts a tool call from a thought using
// structured keyword rules: an equation containing '=' after a solve verb,
// an arithmetic expression after a calculate verb, a query after a search
// verb, an expression of x after a plot verb. Returns nil when nothing
// parses; the loop then falls through to its final-answer check.
func DefaultToolCallParser(thought string) *core.ToolCall {
	t := strings.ToLower(thought)

	if containsAny(t, "solve", "résous", "résoudre") {
		if eq := extractEquation(t); eq != "" {
			call := core.NewToolCall("equation_solver", map[string]any{"equation": eq})
			return &call
		}
	}

	if containsAny(t, "calculate", "calcule", "compute", "verify", "vérifie") {
		if expr := strings.Trim(expressionPattern.FindString(t), ". "); expr != "" {
			call := core.NewToolCall("calculator", map[string]any{"expression": expr})
			return &call
		}
	}

	if containsAny(t, "plot", "graph", "trace") {
		if expr := strings.Trim(plotPattern.FindString(t), ". "); strings.Contains(expr, "x") {
			call := core.NewToolCall("plotter", map[string]any{"expression": expr})
			return &call
		}
	}

	if query := searchQuery(thought); query != "" {
		call := core.NewToolCall("knowledge_search", map[string]any{"query": query})
		return &call
	}

	return nil
}

// equation characters besides letters and digits
const equationChars = " .()+-*/^"

// extractEquation isolates the equation surrounding the first '=' in a
// thought. Both sides are tokenized and prose words are stripped: the left
// side keeps only tokens after the last multi-letter word, the right side
// only tokens before the first one. Returns "" when no equation remains.
func extractEquation(t string) string {
	idx := strings.Index(t, "=")
	if idx < 0 {
		return ""
	}

	isEqChar := func(r rune) bool {
		return r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || strings.ContainsRune(equationChars, r)
	}

	start := idx
	for start > 0 && isEqChar(rune(t[start-1])) {
		start--
	}
	end := idx + 1
	for end < len(t) && isEqChar(rune(t[end])) {
		end++
	}

	left := stripWords(strings.Fields(t[start:idx]), true)
	right := stripWords(strings.Fields(t[idx+1:end]), false)
	if left == "" || right == "" {
		return ""
	}
	return strings.Trim(left+" = "+right, ". ")
}

// stripWords removes prose from one equation side. fromEnd keeps tokens
// after the last word, otherwise tokens before the first word.
func stripWords(tokens []string, fromEnd bool) string {
	isWord := func(tok string) bool {
		tok = strings.Trim(tok, ".,")
		if len(tok) < 2 {
			return false
		}
		for _, r := range tok {
			if r < 'a' || r > 'z' {
				return false
			}
		}
		return true
	}

	if fromEnd {
		for i := len(tokens) - 1; i >= 0; i-- {
			if isWord(tokens[i]) {
				tokens = tokens[i+1:]
				break
			}
		}
	} else {
		for i, tok := range tokens {
			if isWord(tok) {
				tokens = tokens[:i]
				break
			}
		}
	}
	return strings.Trim(strings.Join(tokens, " "), ". ")
}

// searchQuery returns the text following a search verb, trimmed of
// punctuation.
func searchQuery(thought string) string {
	t := strings.ToLower(thought)
	for _, verb := range []string{"search for", "search", "look up", "cherche"} {
		idx := strings.Index(t, verb)
		if idx < 0 {
			continue
		}
		query := strings.TrimSpace(thought[idx+len(verb):])
		query = strings.Trim(query, ".!?: ")
		if query != "" {
			return query
		}
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
