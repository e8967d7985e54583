package core

// ReActStep is one think/act/observe iteration of an agent's reasoning
// loop.
//
// Invariant: Observation is set iff Action is set — the observation is the
// outcome of executing the action, so neither appears without the other.
type ReActStep struct {
	Thought     string    `json:"thought"`
	Action      *ToolCall `json:"action,omitempty"`
	Observation string    `json:"observation,omitempty"`
	Confidence  float64   `json:"confidence"`
}

// HasAction reports whether this step carried a tool call.
func (s ReActStep) HasAction() bool { return s.Action != nil }

// MeanStepConfidence averages confidences over steps, returning fallback
// when the slice is empty.
func MeanStepConfidence(steps []ReActStep, fallback float64) float64 {
	if len(steps) == 0 {
		return fallback
	}
	var sum float64
	for _, s := range steps {
		sum += s.Confidence
	}
	return ClampConfidence(sum / float64(len(steps)))
}

// ClampConfidence bounds a confidence score to [0,1].
func ClampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}
