package orchestrator

import (
	"strconv"
	"strings"

	"github.com/veldtlabs/mentormesh/agent"
	"github.com/veldtlabs/mentormesh/core"
)

// DecompositionRule matches a query pattern and produces a decomposition.
// Rules are tried in order; the first match wins. When no rule matches the
// orchestrator falls back to a single subtask routed by capability
// scoring.
type DecompositionRule func(query string, cls agent.Classification, complexity float64) (core.TaskDecomposition, bool)

// DefaultRules returns the built-in domain pattern rules.
func DefaultRules() []DecompositionRule {
	return []DecompositionRule{
		SolveAndExplainRule,
		MultiQuestionRule,
	}
}

var (
	solveVerbs   = []string{"solve", "résous", "résoudre", "resuelve"}
	explainVerbs = []string{"explain", "explique", "expliquer", "explica"}
)

// SolveAndExplainRule matches queries asking to both solve and explain
// ("Résous 2x + 3 = 7 et explique"). It produces a math subtask followed
// by a dependent teaching subtask.
func SolveAndExplainRule(query string, cls agent.Classification, complexity float64) (core.TaskDecomposition, bool) {
	q := strings.ToLower(query)
	if !containsAny(q, solveVerbs) || !containsAny(q, explainVerbs) {
		return core.TaskDecomposition{}, false
	}

	solveTask := core.SubTask{
		ID:              "subtask_1",
		Description:     query,
		RequiredAgentID: agent.DomainMathematics,
		Priority:        2,
	}
	explainTask := core.SubTask{
		ID:              "subtask_2",
		Description:     "Explain the solution step by step: " + query,
		RequiredAgentID: agent.DomainEducation,
		Dependencies:    []string{solveTask.ID},
		Priority:        1,
	}
	return core.NewTaskDecomposition(complexity, solveTask, explainTask), true
}

// MultiQuestionRule splits a query carrying several question marks into
// one subtask per question, each routed by its own classification. The
// subtasks are independent and run in parallel.
func MultiQuestionRule(query string, cls agent.Classification, complexity float64) (core.TaskDecomposition, bool) {
	if strings.Count(query, "?") < 2 {
		return core.TaskDecomposition{}, false
	}

	var subtasks []core.SubTask
	for _, part := range strings.SplitAfter(query, "?") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		partCls := agent.DefaultClassifier(part)
		subtasks = append(subtasks, core.SubTask{
			ID:              subtaskID(len(subtasks) + 1),
			Description:     part,
			RequiredAgentID: partCls.Domain,
			Priority:        1,
		})
	}
	if len(subtasks) < 2 {
		return core.TaskDecomposition{}, false
	}
	return core.NewTaskDecomposition(complexity, subtasks...), true
}

// singleSubtaskDecomposition wraps a query as one subtask routed to the
// classified domain. Used by both the single-agent path and the rule
// fallback so every run produces exactly one decomposition.
func singleSubtaskDecomposition(query string, cls agent.Classification, complexity float64) core.TaskDecomposition {
	return core.NewTaskDecomposition(complexity, core.SubTask{
		ID:              "subtask_1",
		Description:     query,
		RequiredAgentID: cls.Domain,
		Priority:        1,
	})
}

func subtaskID(n int) string {
	return "subtask_" + strconv.Itoa(n)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
