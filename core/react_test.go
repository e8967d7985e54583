package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanStepConfidence(t *testing.T) {
	steps := []ReActStep{
		{Thought: "a", Confidence: 0.9},
		{Thought: "b", Confidence: 0.3},
	}
	assert.InDelta(t, 0.6, MeanStepConfidence(steps, 0.1), 1e-9)

	// empty trace falls back
	assert.InDelta(t, 0.1, MeanStepConfidence(nil, 0.1), 1e-9)
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 0.0, ClampConfidence(-0.5))
	assert.Equal(t, 1.0, ClampConfidence(1.5))
	assert.Equal(t, 0.42, ClampConfidence(0.42))
}

func TestReActStep_HasAction(t *testing.T) {
	call := NewToolCall("calculator", map[string]any{"expression": "2+2"})
	assert.True(t, ReActStep{Action: &call}.HasAction())
	assert.False(t, ReActStep{Thought: "just thinking"}.HasAction())
}
