package core

import "time"

// ExecutionOrder indicates whether a decomposition's subtasks may run
// fully in parallel or require sequencing due to declared dependencies.
type ExecutionOrder string

const (
	// ExecutionParallel means no subtask depends on another.
	ExecutionParallel ExecutionOrder = "parallel"
	// ExecutionSequential means at least one subtask declares a dependency.
	ExecutionSequential ExecutionOrder = "sequential"
)

// SubTask is one unit of work assigned to exactly one agent within a
// decomposition. Dependencies reference other subtask ids inside the same
// decomposition; the relation must form a DAG.
type SubTask struct {
	ID               string        `json:"id"`
	Description      string        `json:"description"`
	RequiredAgentID  string        `json:"required_agent_id"`
	Dependencies     []string      `json:"dependencies,omitempty"`
	Priority         int           `json:"priority"`
	ExpectedDuration time.Duration `json:"expected_duration,omitempty"`
}

// TaskDecomposition is the ordered set of subtasks produced for a query.
// Subtask order reflects declaration order, not execution order; the
// planner derives phases from the dependency relation.
type TaskDecomposition struct {
	Subtasks            []SubTask      `json:"subtasks"`
	ExecutionOrder      ExecutionOrder `json:"execution_order"`
	EstimatedComplexity float64        `json:"estimated_complexity"`
}

// NewTaskDecomposition builds a decomposition, deriving ExecutionOrder
// from the presence of dependencies.
func NewTaskDecomposition(complexity float64, subtasks ...SubTask) TaskDecomposition {
	order := ExecutionParallel
	for _, st := range subtasks {
		if len(st.Dependencies) > 0 {
			order = ExecutionSequential
			break
		}
	}
	return TaskDecomposition{
		Subtasks:            subtasks,
		ExecutionOrder:      order,
		EstimatedComplexity: complexity,
	}
}

// Subtask returns the subtask with the given id, if present.
func (d TaskDecomposition) Subtask(id string) (SubTask, bool) {
	for _, st := range d.Subtasks {
		if st.ID == id {
			return st, true
		}
	}
	return SubTask{}, false
}
