package react

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/veldtlabs/mentormesh/core"
	"github.com/veldtlabs/mentormesh/logging"
	"github.com/veldtlabs/mentormesh/provider"
	"github.com/veldtlabs/mentormesh/tool"
)

// reasoningCallLogger is implemented by loggers recording provider calls as
// structured domain events (logging.OrchestraLogger).
type reasoningCallLogger interface {
	LogReasoningCall(provider string, duration time.Duration, tokensPerSecond float64, err error)
}

const (
	defaultMaxIterations = 5

	// confidence assigned to observations
	confToolSuccess = 0.9
	confToolError   = 0.3
	// confidence band for pure reasoning steps
	confThoughtBase       = 0.6
	confThoughtConclusion = 0.85
	// a step above this with no action concludes the loop
	confConcludeThreshold = 0.8
	// enough observations accumulated to compose an answer
	observationBudget = 3

	confProviderFailure = 0.1
)

// Trace is the complete record of one reasoning run. Every step, successful
// or not, is present; there is no silent step loss.
type Trace struct {
	Steps       []core.ReActStep `json:"steps"`
	FinalAnswer string           `json:"final_answer"`
	Confidence  float64          `json:"confidence"`
}

// Request carries the inputs of one reasoning run.
type Request struct {
	Query        string
	Instructions string
	// MaxIterations overrides the loop default when > 0.
	MaxIterations int
	// OnStep observes each appended step.
	OnStep core.StepCallback
	// OnToolCall observes each tool execution.
	OnToolCall core.ToolCallback
}

// Options configures a Loop.
type Options struct {
	MaxIterations  int
	ActionDetector ActionDetector
	ToolCallParser ToolCallParser
	Logger         logging.Logger
}

// Loop runs the think/act/observe cycle against a reasoning provider and a
// tool executor. Safe for concurrent use.
type Loop struct {
	provider      provider.ReasoningProvider
	executor      *tool.Executor
	maxIterations int
	detectAction  ActionDetector
	parseToolCall ToolCallParser
	logger        logging.Logger
}

// NewLoop creates a Loop with default strategies.
func NewLoop(p provider.ReasoningProvider, executor *tool.Executor, optFns ...func(o *Options)) *Loop {
	opts := Options{
		MaxIterations:  defaultMaxIterations,
		ActionDetector: DefaultActionDetector,
		ToolCallParser: DefaultToolCallParser,
		Logger:         logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Loop{
		provider:      p,
		executor:      executor,
		maxIterations: opts.MaxIterations,
		detectAction:  opts.ActionDetector,
		parseToolCall: opts.ToolCallParser,
		logger:        opts.Logger,
	}
}

// Run executes the reasoning loop. It always returns a trace whose step
// count never exceeds the iteration cap; provider failures degrade the
// trace's confidence instead of surfacing as errors.
func (l *Loop) Run(ctx context.Context, req Request) *Trace {
	maxIterations := req.MaxIterations
	if maxIterations <= 0 {
		maxIterations = l.maxIterations
	}

	trace := &Trace{}
	var observations []string
	providerFailed := false

	for i := 0; i < maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			break
		}

		prompt := l.buildPrompt(req, observations, i)
		callStart := time.Now()
		reasoning, err := l.provider.GenerateReasoning(ctx, prompt)
		if rl, ok := l.logger.(reasoningCallLogger); ok {
			var tps float64
			if reasoning != nil {
				tps = reasoning.TokensPerSecond
			}
			rl.LogReasoningCall(l.provider.Name(), time.Since(callStart), tps, err)
		}
		if err != nil {
			var perr *core.ProviderError
			if !errors.As(err, &perr) {
				perr = &core.ProviderError{Provider: l.provider.Name(), Err: err}
			}
			l.logger.Warn("react.provider_failed", "provider", perr.Provider, "iteration", i, "error", perr.Error())
			l.appendStep(trace, req, core.ReActStep{
				Thought:    fmt.Sprintf("reasoning unavailable: %v", perr),
				Confidence: confProviderFailure,
			})
			providerFailed = true
			break
		}

		step := core.ReActStep{Thought: strings.TrimSpace(reasoning.Text)}

		if l.detectAction(step.Thought) {
			if call := l.parseToolCall(step.Thought); call != nil {
				result := l.executor.Execute(ctx, *call)
				step.Action = call
				step.Observation = formatObservation(*call, result)
				if result.OK() {
					step.Confidence = confToolSuccess
				} else {
					step.Confidence = confToolError
				}
				observations = append(observations, step.Observation)
				if req.OnToolCall != nil {
					req.OnToolCall(*call, result)
				}
			}
		}

		if step.Action == nil {
			step.Confidence = thoughtConfidence(step.Thought)
		}

		l.appendStep(trace, req, step)

		// reasoning concluded, no further action
		if step.Action == nil && step.Confidence > confConcludeThreshold {
			break
		}
		// enough observations accumulated
		if len(observations) >= observationBudget {
			break
		}
	}

	if providerFailed && len(observations) == 0 {
		trace.FinalAnswer = "I'm sorry, I cannot reason about this right now. Please try again."
	} else {
		trace.FinalAnswer = composeAnswer(trace.Steps, observations)
	}
	trace.Confidence = core.MeanStepConfidence(trace.Steps, confProviderFailure)
	return trace
}

func (l *Loop) appendStep(trace *Trace, req Request, step core.ReActStep) {
	trace.Steps = append(trace.Steps, step)
	if req.OnStep != nil {
		req.OnStep(step)
	}
}

// buildPrompt layers instructions, the query and accumulated observations
// into the next thought request.
func (l *Loop) buildPrompt(req Request, observations []string, iteration int) string {
	var b strings.Builder
	if req.Instructions != "" {
		b.WriteString(req.Instructions)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Task: %s\n", req.Query)
	for i, obs := range observations {
		fmt.Fprintf(&b, "Observation %d: %s\n", i+1, obs)
	}
	fmt.Fprintf(&b, "Thought %d:", iteration+1)
	return b.String()
}

// conclusionMarkers raise a pure reasoning step above the conclude
// threshold.
var conclusionMarkers = []string{
	"therefore", "the answer is", "in conclusion", "final answer",
	"donc", "la réponse est",
}

func thoughtConfidence(thought string) float64 {
	t := strings.ToLower(thought)
	for _, marker := range conclusionMarkers {
		if strings.Contains(t, marker) {
			return confThoughtConclusion
		}
	}
	return confThoughtBase
}

func formatObservation(call core.ToolCall, result core.ToolResult) string {
	if !result.OK() {
		return fmt.Sprintf("%s failed: %s", call.Name, result.Error)
	}
	return fmt.Sprintf("%s returned %v", call.Name, result.Result)
}

// composeAnswer concatenates observations with a closing synthesis
// sentence; with no observations it falls back to the last thought.
func composeAnswer(steps []core.ReActStep, observations []string) string {
	if len(observations) == 0 {
		for i := len(steps) - 1; i >= 0; i-- {
			if steps[i].Thought != "" {
				return steps[i].Thought
			}
		}
		return "I could not reach a conclusion."
	}

	var b strings.Builder
	for _, obs := range observations {
		b.WriteString(obs)
		b.WriteString("\n")
	}
	b.WriteString("Combining these observations gives the answer above.")
	return b.String()
}
