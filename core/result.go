package core

import "time"

// OrchestrationResult is the single, immutable outcome of one
// orchestration run. Executions are ordered by subtask declaration order
// regardless of completion order so output is deterministic.
type OrchestrationResult struct {
	TaskID        string            `json:"task_id"`
	OriginalQuery string            `json:"original_query"`
	Decomposition TaskDecomposition `json:"decomposition"`
	Executions    []*AgentExecution `json:"executions"`
	FinalResult   string            `json:"final_result"`
	Confidence    float64           `json:"confidence"`
	TotalDuration time.Duration     `json:"total_duration"`
	AgentsUsed    []string          `json:"agents_used"`
}

// CompletedExecutions returns executions that finished successfully, in
// declaration order.
func (r *OrchestrationResult) CompletedExecutions() []*AgentExecution {
	var out []*AgentExecution
	for _, e := range r.Executions {
		if e.Status == ExecutionCompleted {
			out = append(out, e)
		}
	}
	return out
}
