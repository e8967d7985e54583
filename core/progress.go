package core

import "time"

// ProgressKind enumerates the orchestration lifecycle notifications.
type ProgressKind string

const (
	ProgressTaskDecomposed   ProgressKind = "task_decomposed"
	ProgressPhaseStarted     ProgressKind = "phase_started"
	ProgressSubtaskStarted   ProgressKind = "subtask_started"
	ProgressSubtaskCompleted ProgressKind = "subtask_completed"
)

// ProgressEvent is an observational notification emitted during an
// orchestration run. Events never gate execution; a slow or absent sink
// must not stall the run.
type ProgressEvent struct {
	Kind      ProgressKind `json:"kind"`
	TaskID    string       `json:"task_id"`
	SubtaskID string       `json:"subtask_id,omitempty"`
	AgentID   string       `json:"agent_id,omitempty"`
	Phase     int          `json:"phase,omitempty"`
	Detail    string       `json:"detail,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// ProgressSink receives ordered progress events. A nil sink disables
// reporting.
type ProgressSink func(ProgressEvent)

// ChannelSink adapts a buffered channel into a ProgressSink. Events are
// dropped when the channel is full so observation can never block the
// orchestrator.
func ChannelSink(ch chan<- ProgressEvent) ProgressSink {
	return func(ev ProgressEvent) {
		select {
		case ch <- ev:
		default:
		}
	}
}
