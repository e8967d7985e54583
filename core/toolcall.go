package core

// ToolCall is a request to execute a named tool with structured arguments.
// Produced by the ReAct loop's parser and consumed by the tool executor.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// NewToolCall creates a ToolCall with a generated id.
func NewToolCall(name string, args map[string]any) ToolCall {
	if args == nil {
		args = map[string]any{}
	}
	return ToolCall{ID: NewID(), Name: name, Arguments: args}
}

// ToolResult is the outcome of executing a ToolCall. Failures are carried
// in Error rather than returned as Go errors so that a misbehaving tool can
// never abort a reasoning loop.
type ToolResult struct {
	ToolCallID string `json:"tool_call_id"`
	Result     any    `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
}

// OK reports whether the execution succeeded.
func (r ToolResult) OK() bool { return r.Error == "" }
