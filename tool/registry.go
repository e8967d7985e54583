package tool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/veldtlabs/mentormesh/core"
	"github.com/veldtlabs/mentormesh/logging"
)

// Telemetry observes tool executions. Implementations must not block; the
// executor treats them as fire-and-forget collaborators.
type Telemetry interface {
	ObserveToolExecution(tool string, duration time.Duration, success bool)
}

// toolCallLogger is implemented by loggers recording tool executions as
// structured domain events (logging.OrchestraLogger).
type toolCallLogger interface {
	LogToolCall(tool string, duration time.Duration, success bool, err error)
}

// Registry holds named tools. Registration happens at start-up; lookups are
// read-mostly and safe for concurrent use across subtask executions.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates a registry preloaded with the given tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: map[string]Tool{}}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds a tool, replacing any previous tool with the same name.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Get returns the named tool.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	Logger    logging.Logger
	Telemetry Telemetry
}

// Executor resolves and runs tool calls, always returning a ToolResult:
// unknown tools, tool errors and panics inside tool implementations are all
// captured as result data.
type Executor struct {
	registry  *Registry
	logger    logging.Logger
	telemetry Telemetry
}

// NewExecutor creates an executor over the given registry.
func NewExecutor(registry *Registry, optFns ...func(o *ExecutorOptions)) *Executor {
	opts := ExecutorOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Executor{registry: registry, logger: opts.Logger, telemetry: opts.Telemetry}
}

// Registry returns the underlying registry.
func (e *Executor) Registry() *Registry { return e.registry }

// Execute runs a tool call and returns its result. It never returns a Go
// error: failures are carried in ToolResult.Error.
func (e *Executor) Execute(ctx context.Context, call core.ToolCall) core.ToolResult {
	t, ok := e.registry.Get(call.Name)
	if !ok {
		e.logger.Warn("tool.execute.unknown", "tool", call.Name)
		e.observe(call.Name, 0, false)
		return core.ToolResult{ToolCallID: call.ID, Error: fmt.Sprintf("tool not found: %s", call.Name)}
	}

	start := time.Now()
	result, err := e.callSafely(ctx, t, call.Arguments)
	dur := time.Since(start)
	e.logExecution(call.Name, dur, err)

	if err != nil {
		e.observe(call.Name, dur, false)
		return core.ToolResult{ToolCallID: call.ID, Error: err.Error()}
	}

	e.observe(call.Name, dur, true)
	return core.ToolResult{ToolCallID: call.ID, Result: result}
}

// callSafely invokes the tool converting panics into errors.
func (e *Executor) callSafely(ctx context.Context, t Tool, args map[string]any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return t.Call(ctx, args)
}

// logExecution prefers the structured domain helper when the configured
// logger provides one.
func (e *Executor) logExecution(tool string, dur time.Duration, err error) {
	if tcl, ok := e.logger.(toolCallLogger); ok {
		tcl.LogToolCall(tool, dur, err == nil, err)
		return
	}
	if err != nil {
		e.logger.Warn("tool.execute.error", "tool", tool, "error", err.Error(), "duration_ms", dur.Milliseconds())
		return
	}
	e.logger.Info("tool.execute.success", "tool", tool, "duration_ms", dur.Milliseconds())
}

func (e *Executor) observe(tool string, dur time.Duration, success bool) {
	if e.telemetry != nil {
		e.telemetry.ObserveToolExecution(tool, dur, success)
	}
}
