package core

import (
	"fmt"
	"time"
)

// ExecutionStatus tracks the lifecycle of a dispatched subtask.
// Transitions: pending -> running -> {completed | failed}. Terminal states
// never change; there are no retries at this layer.
type ExecutionStatus string

const (
	ExecutionPending   ExecutionStatus = "pending"
	ExecutionRunning   ExecutionStatus = "running"
	ExecutionCompleted ExecutionStatus = "completed"
	ExecutionFailed    ExecutionStatus = "failed"
)

// AgentExecution records one agent's processing of one subtask.
type AgentExecution struct {
	AgentID   string          `json:"agent_id"`
	SubtaskID string          `json:"subtask_id"`
	Status    ExecutionStatus `json:"status"`
	Result    *AgentResponse  `json:"result,omitempty"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
}

// NewAgentExecution creates a pending execution record.
func NewAgentExecution(agentID, subtaskID string) *AgentExecution {
	return &AgentExecution{AgentID: agentID, SubtaskID: subtaskID, Status: ExecutionPending}
}

// MarkRunning transitions pending -> running.
func (e *AgentExecution) MarkRunning() error {
	if e.Status != ExecutionPending {
		return fmt.Errorf("invalid transition %s -> running", e.Status)
	}
	e.Status = ExecutionRunning
	e.StartTime = time.Now().UTC()
	return nil
}

// MarkCompleted transitions running -> completed with the agent's result.
func (e *AgentExecution) MarkCompleted(result *AgentResponse) error {
	if e.Status != ExecutionRunning {
		return fmt.Errorf("invalid transition %s -> completed", e.Status)
	}
	e.Status = ExecutionCompleted
	e.Result = result
	e.EndTime = time.Now().UTC()
	return nil
}

// MarkFailed transitions running -> failed.
func (e *AgentExecution) MarkFailed() error {
	if e.Status != ExecutionRunning {
		return fmt.Errorf("invalid transition %s -> failed", e.Status)
	}
	e.Status = ExecutionFailed
	e.EndTime = time.Now().UTC()
	return nil
}

// Duration returns the wall time between start and end, zero while the
// execution is not terminal.
func (e *AgentExecution) Duration() time.Duration {
	if e.EndTime.IsZero() || e.StartTime.IsZero() {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}

// Terminal reports whether the execution reached a final state.
func (e *AgentExecution) Terminal() bool {
	return e.Status == ExecutionCompleted || e.Status == ExecutionFailed
}
