package orchestrator

import (
	"fmt"
	"strings"

	"github.com/veldtlabs/mentormesh/core"
)

// confidence of the apologetic fallback when nothing succeeded.
const fallbackConfidence = 0.1

const fallbackMessage = "I'm sorry, I was unable to work out an answer this time. " +
	"Could you rephrase the question or break it into smaller parts?"

// synthesize combines completed executions into a final answer. Zero
// successes degrade to a low-confidence apology; one success passes
// through verbatim; several successes are concatenated under labels
// derived from content sniffing, with the arithmetic mean of constituent
// confidences. Executions arrive in subtask declaration order so output
// is deterministic regardless of completion order.
func synthesize(executions []*core.AgentExecution) (string, float64) {
	var completed []*core.AgentExecution
	for _, e := range executions {
		if e.Status == core.ExecutionCompleted && e.Result != nil {
			completed = append(completed, e)
		}
	}

	switch len(completed) {
	case 0:
		return fallbackMessage, fallbackConfidence
	case 1:
		return completed[0].Result.Message, core.ClampConfidence(completed[0].Result.Confidence)
	}

	var b strings.Builder
	var sum float64
	for i, e := range completed {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "## %s\n%s", sectionLabel(e.Result.Message), e.Result.Message)
		sum += e.Result.Confidence
	}
	return b.String(), core.ClampConfidence(sum / float64(len(completed)))
}

var (
	mathContentMarkers     = []string{"=", "equation", "calculat", "solution", "result", "x "}
	teachingContentMarkers = []string{"explain", "step by step", "understand", "because", "learn", "étape"}
)

// sectionLabel sniffs a result's content to pick a display label.
func sectionLabel(content string) string {
	c := strings.ToLower(content)
	mathHits := countMarkers(c, mathContentMarkers)
	teachHits := countMarkers(c, teachingContentMarkers)

	switch {
	case mathHits > teachHits:
		return "Mathematical Analysis"
	case teachHits > mathHits:
		return "Pedagogical Explanation"
	default:
		return "Analysis"
	}
}

func countMarkers(s string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(s, m) {
			n++
		}
	}
	return n
}
