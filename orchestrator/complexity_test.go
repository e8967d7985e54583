package orchestrator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultComplexityAnalyzer(t *testing.T) {
	// deterministic by contract
	q := "Résous 2x + 3 = 7 et explique la solution"
	assert.Equal(t, DefaultComplexityAnalyzer(q), DefaultComplexityAnalyzer(q))

	// the canonical decomposition trigger crosses the cutoff: domain
	// mixing (0.4) plus a connective (0.2)
	assert.InDelta(t, 0.6, DefaultComplexityAnalyzer(q), 1e-9)

	// plain single-domain requests stay below the cutoff
	assert.Less(t, DefaultComplexityAnalyzer("Calculate 2+2"), defaultComplexityCutoff)
	assert.Less(t, DefaultComplexityAnalyzer("Salut!"), defaultComplexityCutoff)

	// several question marks add weight
	two := DefaultComplexityAnalyzer("What is 2+2? Why does addition commute?")
	one := DefaultComplexityAnalyzer("What is 2+2 and why does addition commute?")
	assert.Greater(t, two, one-0.2+1e-9)

	// a long multi-domain request saturates at 1
	long := "Solve " + strings.Repeat("x + 1 = 2 and ", 10) + "explain why? And then prove it?"
	assert.InDelta(t, 1.0, DefaultComplexityAnalyzer(long), 1e-9)
}
