// Package tool implements the callable-capability subsystem: a registry of
// named tools with typed parameter schemas and an executor that turns tool
// calls into structured results. Execution failures are always data, never
// panics or returned errors, so a misbehaving tool cannot abort a
// reasoning loop.
package tool

import (
	"context"
	"fmt"

	"github.com/veldtlabs/mentormesh/internal/util"
)

// Tool is a named callable capability exposed to agents.
//
// Implementations should:
//   - Provide clear, descriptive names (snake_case) and descriptions
//   - Define a JSON-schema-like parameter map
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description used for guidance.
	Description() string

	// Parameters returns a JSON-schema-like map describing expected input.
	// The executor treats it as advisory metadata; enforcement is up to the
	// tool implementation.
	Parameters() map[string]any

	// Call executes the tool with structured arguments.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ValidationError represents parameter validation failures.
type ValidationError = util.ValidationError

// ToolError represents errors raised during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
