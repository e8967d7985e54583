package core

import "fmt"

// DecompositionError reports an invalid subtask graph (dependency cycle or
// reference to a non-existent subtask id). It fails the orchestration
// before any agent runs.
type DecompositionError struct {
	SubtaskID  string // subtask at which the problem was detected
	Dependency string // offending dependency id, empty for cycles
	Reason     string
}

func (e *DecompositionError) Error() string {
	if e.Dependency != "" {
		return fmt.Sprintf("decomposition error at subtask %q: dependency %q %s", e.SubtaskID, e.Dependency, e.Reason)
	}
	return fmt.Sprintf("decomposition error at subtask %q: %s", e.SubtaskID, e.Reason)
}

// ProviderError wraps a reasoning-provider failure. Agents degrade to a
// low-confidence fallback instead of propagating it to the user turn.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("reasoning provider %s failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
