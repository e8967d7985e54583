package tool

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/mentormesh/core"
	"github.com/veldtlabs/mentormesh/logging"
)

type stubTool struct {
	name   string
	result any
	err    error
	panics bool
}

func (s *stubTool) Name() string               { return s.name }
func (s *stubTool) Description() string        { return "stub tool" }
func (s *stubTool) Parameters() map[string]any { return map[string]any{} }
func (s *stubTool) Call(context.Context, map[string]any) (any, error) {
	if s.panics {
		panic("tool exploded")
	}
	return s.result, s.err
}

type recordingTelemetry struct {
	mu        sync.Mutex
	tools     []string
	successes []bool
}

func (r *recordingTelemetry) ObserveToolExecution(tool string, _ time.Duration, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools = append(r.tools, tool)
	r.successes = append(r.successes, success)
}

func TestRegistry_OrderAndReplacement(t *testing.T) {
	r := NewRegistry(&stubTool{name: "alpha"}, &stubTool{name: "beta"})
	r.Register(&stubTool{name: "alpha", result: "replaced"})

	assert.Equal(t, []string{"alpha", "beta"}, r.Names())

	got, ok := r.Get("alpha")
	require.True(t, ok)
	result, err := got.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "replaced", result)
}

func TestExecutor_Success(t *testing.T) {
	exec := NewExecutor(NewRegistry(&stubTool{name: "echo", result: 42}))

	res := exec.Execute(context.Background(), core.NewToolCall("echo", nil))
	assert.True(t, res.OK())
	assert.Equal(t, 42, res.Result)
	assert.Empty(t, res.Error)
}

func TestExecutor_UnknownTool(t *testing.T) {
	exec := NewExecutor(NewRegistry())

	res := exec.Execute(context.Background(), core.NewToolCall("missing", nil))
	assert.False(t, res.OK())
	assert.Equal(t, "tool not found: missing", res.Error)
}

func TestExecutor_ErrorAsData(t *testing.T) {
	exec := NewExecutor(NewRegistry(&stubTool{name: "broken", err: errors.New("boom")}))

	res := exec.Execute(context.Background(), core.NewToolCall("broken", nil))
	assert.False(t, res.OK())
	assert.Equal(t, "boom", res.Error)
	assert.Nil(t, res.Result)
}

func TestExecutor_RecoversPanics(t *testing.T) {
	exec := NewExecutor(NewRegistry(&stubTool{name: "bomb", panics: true}))

	res := exec.Execute(context.Background(), core.NewToolCall("bomb", nil))
	assert.False(t, res.OK())
	assert.Contains(t, res.Error, "tool panicked")
}

func TestExecutor_Telemetry(t *testing.T) {
	rec := &recordingTelemetry{}
	exec := NewExecutor(
		NewRegistry(&stubTool{name: "good", result: "ok"}, &stubTool{name: "bad", err: errors.New("nope")}),
		func(o *ExecutorOptions) { o.Telemetry = rec },
	)

	exec.Execute(context.Background(), core.NewToolCall("good", nil))
	exec.Execute(context.Background(), core.NewToolCall("bad", nil))
	exec.Execute(context.Background(), core.NewToolCall("missing", nil))

	assert.Equal(t, []string{"good", "bad", "missing"}, rec.tools)
	assert.Equal(t, []bool{true, false, false}, rec.successes)
}

type recordingToolCallLogger struct {
	logging.NoOpLogger

	mu    sync.Mutex
	tools []string
	oks   []bool
	errs  []error
}

func (r *recordingToolCallLogger) LogToolCall(tool string, _ time.Duration, success bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools = append(r.tools, tool)
	r.oks = append(r.oks, success)
	r.errs = append(r.errs, err)
}

func TestExecutor_RoutesStructuredToolLogging(t *testing.T) {
	rec := &recordingToolCallLogger{}
	exec := NewExecutor(
		NewRegistry(&stubTool{name: "good", result: "ok"}, &stubTool{name: "bad", err: errors.New("nope")}),
		func(o *ExecutorOptions) { o.Logger = rec },
	)

	exec.Execute(context.Background(), core.NewToolCall("good", nil))
	exec.Execute(context.Background(), core.NewToolCall("bad", nil))

	assert.Equal(t, []string{"good", "bad"}, rec.tools)
	assert.Equal(t, []bool{true, false}, rec.oks)
	require.Len(t, rec.errs, 2)
	assert.NoError(t, rec.errs[0])
	assert.EqualError(t, rec.errs[1], "nope")
}

func TestFunctionTool_ValidationError(t *testing.T) {
	calc := NewCalculatorTool()

	_, err := calc.Call(context.Background(), map[string]any{})
	require.Error(t, err)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
	assert.Equal(t, "calculator", toolErr.Tool)
}

func TestFunctionTool_ExecutionError(t *testing.T) {
	ft := NewFunctionTool("failing", "always fails", map[string]any{},
		func(context.Context, map[string]any) (any, error) {
			return nil, errors.New("internal failure")
		})

	_, err := ft.Call(context.Background(), map[string]any{})
	require.Error(t, err)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
	assert.Equal(t, "internal failure", toolErr.Message)
}
