// Package provider defines the reasoning-provider boundary. The engine
// treats the underlying language model as a black box that turns a prompt
// into text plus step traces; concrete adapters live in subpackages and a
// deterministic MockProvider supports tests and examples.
package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Reasoning is the structured output of one provider call.
type Reasoning struct {
	// Text is the full generated response.
	Text string
	// Steps are intermediate reasoning statements, one per line of
	// structured output, when the provider surfaces them.
	Steps []string
	// TokensPerSecond is generation throughput, zero if unknown.
	TokensPerSecond float64
}

// ReasoningProvider turns a prompt into reasoning output. Implementations
// must be safe for concurrent use; a failing provider returns an error and
// the caller degrades to a low-confidence fallback rather than crashing the
// turn.
type ReasoningProvider interface {
	// Name identifies the provider for logging and telemetry.
	Name() string

	// GenerateReasoning produces a response for the prompt.
	GenerateReasoning(ctx context.Context, prompt string) (*Reasoning, error)
}

// SplitSteps derives step statements from generated text: one per
// non-empty line, bullets and numbering stripped.
func SplitSteps(text string) []string {
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789. \t")
		if line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// MockProvider is a deterministic in-memory provider for tests and
// examples. Responses can be registered per prompt substring or queued in
// order; unmatched prompts get a generic echo.
type MockProvider struct {
	mu        sync.Mutex
	name      string
	responses []cannedResponse // first matching substring wins
	queue     []string         // consumed in order before substring matching
	err       error
	calls     int
}

type cannedResponse struct{ substring, response string }

// NewMockProvider constructs an empty mock provider.
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{name: name}
}

// AddResponse registers a canned response returned when the prompt
// contains the given substring. Earlier registrations win on overlap.
func (m *MockProvider) AddResponse(substring, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, cannedResponse{substring, response})
}

// Queue appends responses returned in order, taking precedence over
// substring matches.
func (m *MockProvider) Queue(responses ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, responses...)
}

// FailWith makes every subsequent call return err.
func (m *MockProvider) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times GenerateReasoning was invoked.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Name implements ReasoningProvider.
func (m *MockProvider) Name() string { return m.name }

// GenerateReasoning implements ReasoningProvider.
func (m *MockProvider) GenerateReasoning(ctx context.Context, prompt string) (*Reasoning, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.err != nil {
		return nil, m.err
	}

	if len(m.queue) > 0 {
		text := m.queue[0]
		m.queue = m.queue[1:]
		return &Reasoning{Text: text, Steps: SplitSteps(text)}, nil
	}

	for _, cr := range m.responses {
		if strings.Contains(prompt, cr.substring) {
			return &Reasoning{Text: cr.response, Steps: SplitSteps(cr.response)}, nil
		}
	}

	text := fmt.Sprintf("Considering the request: %s", lastLine(prompt))
	return &Reasoning{Text: text, Steps: []string{text}}, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
