package orchestrator

import "strings"

// default cutoff above which a query takes the decomposition path.
const defaultComplexityCutoff = 0.5

// ComplexityAnalyzer scores a query's complexity in [0,1]. Deterministic
// by contract: the same query always yields the same score.
type ComplexityAnalyzer func(query string) float64

// keyword groups whose co-occurrence indicates domain mixing.
var domainKeywordGroups = map[string][]string{
	"mathematics": {"solve", "résous", "resuelve", "equation", "équation", "calculate", "calcule", "="},
	"education":   {"explain", "explique", "explica", "teach", "why", "pourquoi", "understand"},
	"logic":       {"prove", "implies", "logic", "déduis"},
}

// connectives signalling a multi-step request.
var multiStepConnectives = []string{
	" then ", " and ", " also ", " puis ", " et ", " ensuite ", " y ",
}

// DefaultComplexityAnalyzer scores on four deterministic signals: domain
// mixing, multiple question marks, multi-step connectives and query length.
func DefaultComplexityAnalyzer(query string) float64 {
	q := " " + strings.ToLower(query) + " "

	var score float64

	domains := 0
	for _, keywords := range domainKeywordGroups {
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				domains++
				break
			}
		}
	}
	if domains >= 2 {
		score += 0.4
	}

	if strings.Count(q, "?") >= 2 {
		score += 0.2
	}

	for _, conn := range multiStepConnectives {
		if strings.Contains(q, conn) {
			score += 0.2
			break
		}
	}

	if len([]rune(query)) > 80 {
		score += 0.2
	}

	if score > 1 {
		score = 1
	}
	return score
}
