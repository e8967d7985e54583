package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentExecution_Lifecycle(t *testing.T) {
	exec := NewAgentExecution("MathAgent", "subtask_1")
	assert.Equal(t, ExecutionPending, exec.Status)
	assert.False(t, exec.Terminal())
	assert.Zero(t, exec.Duration())

	require.NoError(t, exec.MarkRunning())
	assert.Equal(t, ExecutionRunning, exec.Status)
	assert.False(t, exec.StartTime.IsZero())

	require.NoError(t, exec.MarkCompleted(&AgentResponse{Message: "x = 2", Confidence: 0.9}))
	assert.Equal(t, ExecutionCompleted, exec.Status)
	assert.True(t, exec.Terminal())
	assert.Equal(t, "x = 2", exec.Result.Message)
	assert.GreaterOrEqual(t, exec.Duration().Nanoseconds(), int64(0))
}

func TestAgentExecution_TerminalStatesAreFinal(t *testing.T) {
	exec := NewAgentExecution("a", "s")
	require.NoError(t, exec.MarkRunning())
	require.NoError(t, exec.MarkFailed())

	assert.Error(t, exec.MarkRunning())
	assert.Error(t, exec.MarkCompleted(&AgentResponse{}))
	assert.Error(t, exec.MarkFailed())
	assert.Equal(t, ExecutionFailed, exec.Status)
	assert.Nil(t, exec.Result)
}

func TestAgentExecution_InvalidTransitions(t *testing.T) {
	exec := NewAgentExecution("a", "s")

	// cannot complete or fail without running first
	assert.Error(t, exec.MarkCompleted(&AgentResponse{}))
	assert.Error(t, exec.MarkFailed())
	assert.Equal(t, ExecutionPending, exec.Status)
}
