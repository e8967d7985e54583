package core

import "context"

// Agent is one addressable reasoning unit: it binds a reasoning provider,
// a reasoning loop, dialogue state and a declared capability. The
// orchestrator routes subtasks to agents through this interface only.
type Agent interface {
	// Name returns the agent's registry identifier (e.g. "math_specialist").
	Name() string

	// Capability returns the agent's static capability declaration.
	Capability() AgentCapability

	// Process handles one input turn for the given session and returns the
	// agent's response with its full reasoning trace.
	Process(ctx context.Context, input, sessionID string) (*AgentResponse, error)
}

// AgentResponse carries an agent's answer for one turn: the user-facing
// message, the reasoning trace that produced it and a confidence score in
// [0,1].
type AgentResponse struct {
	Message    string      `json:"message"`
	Trace      []ReActStep `json:"trace,omitempty"`
	Confidence float64     `json:"confidence"`
}

// StepCallback observes reasoning steps as they are produced.
type StepCallback func(step ReActStep)

// ToolCallback observes tool executions as they complete.
type ToolCallback func(call ToolCall, result ToolResult)
