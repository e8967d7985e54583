package core

import "github.com/google/uuid"

// NewID generates a unique identifier used for tasks, tool calls and
// orchestration runs.
func NewID() string { return uuid.NewString() }
