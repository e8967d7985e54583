package agent

import (
	"context"

	"github.com/veldtlabs/mentormesh/core"
	"github.com/veldtlabs/mentormesh/dialogue"
	"github.com/veldtlabs/mentormesh/logging"
	"github.com/veldtlabs/mentormesh/provider"
	"github.com/veldtlabs/mentormesh/react"
	"github.com/veldtlabs/mentormesh/tool"
)

// confidence reported when the reasoning loop produced no steps at all.
const defaultConfidence = 0.5

// Options configures a Specialist.
type Options struct {
	// Persona flavors the instruction set ("a patient math tutor").
	Persona string
	// MaxIterations bounds each reasoning run; 0 uses the loop default.
	MaxIterations int
	// Dialogue overrides the default dialogue manager.
	Dialogue *dialogue.Manager
	// Classifier overrides the default keyword classifier.
	Classifier Classifier
	// Logger receives structured agent logs.
	Logger logging.Logger
	// LoopOptions customize the underlying ReAct loop.
	LoopOptions []func(o *react.Options)
}

// Specialist is a single reasoning agent: it classifies the input, frames
// the turn through its dialogue manager, runs the ReAct loop and updates
// session state. It implements core.Agent.
type Specialist struct {
	name          string
	capability    core.AgentCapability
	provider      provider.ReasoningProvider
	loop          *react.Loop
	dialogue      *dialogue.Manager
	classifier    Classifier
	persona       string
	maxIterations int
	logger        logging.Logger
}

// NewSpecialist binds a reasoning provider, a tool executor and a
// capability declaration into an agent.
func NewSpecialist(
	name string,
	capability core.AgentCapability,
	p provider.ReasoningProvider,
	executor *tool.Executor,
	optFns ...func(o *Options),
) (*Specialist, error) {
	opts := Options{
		Classifier: DefaultClassifier,
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Dialogue == nil {
		mgr, err := dialogue.NewManager(func(o *dialogue.ManagerOptions) {
			o.Logger = opts.Logger
		})
		if err != nil {
			return nil, err
		}
		opts.Dialogue = mgr
	}

	loopOpts := append([]func(o *react.Options){func(o *react.Options) {
		o.Logger = opts.Logger
	}}, opts.LoopOptions...)

	return &Specialist{
		name:          name,
		capability:    capability,
		provider:      p,
		loop:          react.NewLoop(p, executor, loopOpts...),
		dialogue:      opts.Dialogue,
		classifier:    opts.Classifier,
		persona:       opts.Persona,
		maxIterations: opts.MaxIterations,
		logger:        opts.Logger,
	}, nil
}

// Name implements core.Agent.
func (s *Specialist) Name() string { return s.name }

// Capability implements core.Agent.
func (s *Specialist) Capability() core.AgentCapability { return s.capability }

// Process implements core.Agent.
func (s *Specialist) Process(ctx context.Context, input, sessionID string) (*core.AgentResponse, error) {
	return s.ProcessWithCallbacks(ctx, input, sessionID, nil, nil)
}

// ProcessWithCallbacks handles one turn, forwarding reasoning-step and
// tool-call callbacks to the caller.
func (s *Specialist) ProcessWithCallbacks(
	ctx context.Context,
	input, sessionID string,
	onStep core.StepCallback,
	onToolCall core.ToolCallback,
) (*core.AgentResponse, error) {
	cls := s.classifier(input)

	dctx, err := s.dialogue.BuildContext(sessionID)
	if err != nil {
		return nil, err
	}
	dctx.SetLanguage(cls.Language)

	instructions, err := s.dialogue.Instructions(dctx, s.persona)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("agent.process",
		"agent", s.name,
		"session_id", sessionID,
		"intent", cls.Intent,
		"domain", cls.Domain,
		"language", cls.Language,
	)

	trace := s.loop.Run(ctx, react.Request{
		Query:         input,
		Instructions:  instructions,
		MaxIterations: s.maxIterations,
		OnStep:        onStep,
		OnToolCall:    onToolCall,
	})

	confidence := trace.Confidence
	if len(trace.Steps) == 0 {
		confidence = defaultConfidence
	}

	if err := s.dialogue.Advance(sessionID, input, trace.FinalAnswer); err != nil {
		return nil, err
	}

	return &core.AgentResponse{
		Message:    trace.FinalAnswer,
		Trace:      trace.Steps,
		Confidence: core.ClampConfidence(confidence),
	}, nil
}
