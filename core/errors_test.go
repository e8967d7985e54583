package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompositionError_Message(t *testing.T) {
	err := &DecompositionError{SubtaskID: "subtask_2", Dependency: "subtask_99", Reason: "does not exist"}
	assert.Equal(t, `decomposition error at subtask "subtask_2": dependency "subtask_99" does not exist`, err.Error())

	cycle := &DecompositionError{SubtaskID: "subtask_1", Reason: "dependency cycle detected"}
	assert.Equal(t, `decomposition error at subtask "subtask_1": dependency cycle detected`, cycle.Error())
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ProviderError{Provider: "anthropic", Err: cause}

	assert.Equal(t, "reasoning provider anthropic failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("generate: %w", err)
	var perr *ProviderError
	require.ErrorAs(t, wrapped, &perr)
	assert.Equal(t, "anthropic", perr.Provider)
}
