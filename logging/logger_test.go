package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(level LogLevel) (*OrchestraLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(&Config{Level: level, Format: "json", Output: &buf}), &buf
}

func TestOrchestraLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferedLogger(LogLevelWarn)

	l.Debug("suppressed")
	l.Info("suppressed")
	l.Warn("emitted", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "emitted")
	assert.Contains(t, out, `"key":"value"`)
}

func TestOrchestraLogger_ContextualScoping(t *testing.T) {
	l, buf := newBufferedLogger(LogLevelInfo)

	l.WithComponent("orchestrator").WithSession("session-1", "task-1").Info("run")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "orchestrator", entry["component"])
	assert.Equal(t, "session-1", entry["session_id"])
	assert.Equal(t, "task-1", entry["task_id"])

	// scoping clones; the receiver stays unscoped
	buf.Reset()
	l.Info("bare")
	assert.NotContains(t, buf.String(), "component")
}

func TestOrchestraLogger_LogToolCall(t *testing.T) {
	l, buf := newBufferedLogger(LogLevelInfo)

	l.LogToolCall("calculator", 5*time.Millisecond, true, nil)
	assert.Contains(t, buf.String(), "Tool execution completed")
	assert.Contains(t, buf.String(), `"tool_name":"calculator"`)

	buf.Reset()
	l.LogToolCall("calculator", time.Millisecond, false, errors.New("division by zero"))
	assert.Contains(t, buf.String(), "Tool execution failed")
	assert.Contains(t, buf.String(), "division by zero")
}

func TestOrchestraLogger_LogReasoningCall(t *testing.T) {
	l, buf := newBufferedLogger(LogLevelInfo)

	l.LogReasoningCall("anthropic", 80*time.Millisecond, 42.5, nil)
	assert.Contains(t, buf.String(), "Reasoning call completed")
	assert.Contains(t, buf.String(), `"provider":"anthropic"`)

	buf.Reset()
	l.LogReasoningCall("anthropic", time.Millisecond, 0, errors.New("backend unavailable"))
	assert.Contains(t, buf.String(), "Reasoning call failed")
	assert.Contains(t, buf.String(), "backend unavailable")
}

func TestOrchestraLogger_LogOrchestration(t *testing.T) {
	l, buf := newBufferedLogger(LogLevelInfo)

	l.LogOrchestration("task-1", 2, 1, 150*time.Millisecond, 0.85)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Orchestration completed", entry["msg"])
	assert.InDelta(t, 2, entry["subtasks"], 1e-9)
	assert.InDelta(t, 1, entry["failed"], 1e-9)
	assert.InDelta(t, 0.85, entry["confidence"], 1e-9)
}

func TestSlogAdapter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: LogLevelDebug, Format: "text", Output: &buf})

	l.Debug("starting", "attempt", 1)
	assert.Contains(t, buf.String(), "starting")
	assert.Contains(t, buf.String(), "attempt=1")
}
