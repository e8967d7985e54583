// Package mentormesh provides a high-level façade over the orchestration
// engine and its supporting services (dialogue sessions, tools, knowledge
// and logging) enabling rapid construction of multi-agent tutoring
// systems. Most applications interact with this package by:
//  1. Creating a Mesh via New() (optionally overriding the defaults)
//  2. Registering one or more specialist agents
//  3. Submitting queries via Orchestrate
//
// The façade delegates coordination to orchestrator.Orchestrator while
// keeping setup ergonomics concise. All defaults are safe for local
// development and testing; production deployments typically supply an API
// provider, a structured logger and Prometheus metrics.
package mentormesh

import (
	"context"

	anthropicapi "github.com/anthropics/anthropic-sdk-go"

	"github.com/veldtlabs/mentormesh/agent"
	"github.com/veldtlabs/mentormesh/config"
	"github.com/veldtlabs/mentormesh/core"
	"github.com/veldtlabs/mentormesh/dialogue"
	"github.com/veldtlabs/mentormesh/knowledge"
	"github.com/veldtlabs/mentormesh/logging"
	"github.com/veldtlabs/mentormesh/metrics"
	"github.com/veldtlabs/mentormesh/orchestrator"
	"github.com/veldtlabs/mentormesh/provider"
	anthropicprovider "github.com/veldtlabs/mentormesh/provider/anthropic"
	openaiprovider "github.com/veldtlabs/mentormesh/provider/openai"
	"github.com/veldtlabs/mentormesh/tool"
)

// Options configures the Mesh instance.
type Options struct {
	// Provider is the reasoning backend shared by all agents created
	// through the mesh. Defaults to a mock provider suitable for tests.
	Provider provider.ReasoningProvider

	// Tools replace the default built-in tool set (calculator, equation
	// solver, knowledge search, plotter).
	Tools []tool.Tool

	// SessionStore persists dialogue contexts between turns (defaults to a
	// bounded in-memory LRU store).
	SessionStore dialogue.Store

	// Knowledge is the document store backing the knowledge search tool
	// (defaults to an empty in-memory store).
	Knowledge *knowledge.Store

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger

	// Metrics receives engine telemetry; nil disables collection.
	Metrics *metrics.Metrics

	// OrchestratorOptions customize routing, decomposition and history.
	OrchestratorOptions []func(o *orchestrator.Options)

	// AgentOptions are defaults applied to every specialist created through
	// NewSpecialist, before its own option functions.
	AgentOptions []func(o *agent.Options)
}

// Mesh is the high-level façade aggregating the orchestrator and the
// services its agents share.
type Mesh struct {
	opts      Options
	orch      *orchestrator.Orchestrator
	executor  *tool.Executor
	store     dialogue.Store
	knowledge *knowledge.Store
}

// New creates a Mesh with optional overrides. Any unset service is
// initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) (*Mesh, error) {
	opts := Options{
		Provider:  provider.NewMockProvider("mock"),
		Knowledge: knowledge.NewStore(),
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.SessionStore == nil {
		store, err := dialogue.NewLRUStore()
		if err != nil {
			return nil, err
		}
		opts.SessionStore = store
	}

	tools := opts.Tools
	if tools == nil {
		tools = []tool.Tool{
			tool.NewCalculatorTool(),
			tool.NewEquationSolverTool(),
			tool.NewKnowledgeSearchTool(opts.Knowledge),
			tool.NewPlotTool(),
		}
	}

	executor := tool.NewExecutor(tool.NewRegistry(tools...), func(o *tool.ExecutorOptions) {
		o.Logger = opts.Logger
		if opts.Metrics != nil {
			o.Telemetry = opts.Metrics
		}
	})

	orchOpts := append([]func(o *orchestrator.Options){func(o *orchestrator.Options) {
		o.Logger = opts.Logger
		if opts.Metrics != nil {
			o.Telemetry = opts.Metrics
		}
	}}, opts.OrchestratorOptions...)

	return &Mesh{
		opts:      opts,
		orch:      orchestrator.New(orchOpts...),
		executor:  executor,
		store:     opts.SessionStore,
		knowledge: opts.Knowledge,
	}, nil
}

// NewFromConfig creates a Mesh whose provider, logger, session store,
// orchestrator and agent defaults come from a loaded configuration. Option
// functions run after the configuration is applied and may override any of
// it.
func NewFromConfig(cfg *config.Config, optFns ...func(o *Options)) (*Mesh, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	store, err := dialogue.NewLRUStore(func(o *dialogue.LRUStoreOptions) {
		o.MaxSessions = cfg.Dialogue.MaxSessions
		o.TTL = cfg.SessionTTL()
		o.HistoryWindow = cfg.Dialogue.HistoryWindow
	})
	if err != nil {
		return nil, err
	}

	fromConfig := func(o *Options) {
		o.Provider = providerFromConfig(cfg.Provider)
		o.Logger = loggerFromConfig(cfg.Logging)
		o.SessionStore = store
		o.OrchestratorOptions = append(o.OrchestratorOptions, func(oo *orchestrator.Options) {
			oo.ComplexityCutoff = cfg.Orchestrator.ComplexityCutoff
			oo.HistoryLimit = cfg.Orchestrator.HistoryLimit
		})
		o.AgentOptions = append(o.AgentOptions, func(ao *agent.Options) {
			ao.MaxIterations = cfg.React.MaxIterations
		})
	}
	return New(append([]func(o *Options){fromConfig}, optFns...)...)
}

func providerFromConfig(pc config.ProviderConfig) provider.ReasoningProvider {
	switch pc.Name {
	case "anthropic":
		return anthropicprovider.New(func(o *anthropicprovider.Options) {
			if pc.Model != "" {
				o.Model = anthropicapi.Model(pc.Model)
			}
			o.Temperature = pc.Temperature
			o.MaxTokens = int64(pc.MaxTokens)
			o.APIKey = pc.APIKey
		})
	case "openai":
		return openaiprovider.New(func(o *openaiprovider.Options) {
			if pc.Model != "" {
				o.Model = pc.Model
			}
			o.Temperature = pc.Temperature
			o.MaxCompletionTokens = int64(pc.MaxTokens)
		})
	default:
		return provider.NewMockProvider("mock")
	}
}

func loggerFromConfig(lc config.LoggingConfig) logging.Logger {
	level := logging.LogLevelInfo
	switch lc.Level {
	case "debug":
		level = logging.LogLevelDebug
	case "warn":
		level = logging.LogLevelWarn
	case "error":
		level = logging.LogLevelError
	}
	return logging.NewSlogLogger(level, lc.Format, false)
}

// RegisterAgent adds agents to the underlying orchestrator.
func (m *Mesh) RegisterAgent(agents ...core.Agent) error { return m.orch.Register(agents...) }

// NewSpecialist creates a specialist agent wired to the mesh's shared
// provider, tool executor and session store, and registers it.
func (m *Mesh) NewSpecialist(
	name string,
	capability core.AgentCapability,
	optFns ...func(o *agent.Options),
) (*agent.Specialist, error) {
	mgr, err := dialogue.NewManager(func(o *dialogue.ManagerOptions) {
		o.Store = m.store
		o.Logger = m.opts.Logger
	})
	if err != nil {
		return nil, err
	}

	agentOpts := []func(o *agent.Options){func(o *agent.Options) {
		o.Dialogue = mgr
		o.Logger = m.opts.Logger
	}}
	agentOpts = append(agentOpts, m.opts.AgentOptions...)
	agentOpts = append(agentOpts, optFns...)

	sp, err := agent.NewSpecialist(name, capability, m.opts.Provider, m.executor, agentOpts...)
	if err != nil {
		return nil, err
	}
	if err := m.orch.Register(sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// Orchestrate processes one query end to end and returns the synthesized
// result.
func (m *Mesh) Orchestrate(ctx context.Context, query, sessionID string) (*core.OrchestrationResult, error) {
	return m.orch.Orchestrate(ctx, query, sessionID, nil)
}

// OrchestrateWithProgress is Orchestrate with live progress events
// delivered to the sink.
func (m *Mesh) OrchestrateWithProgress(
	ctx context.Context,
	query, sessionID string,
	sink core.ProgressSink,
) (*core.OrchestrationResult, error) {
	return m.orch.Orchestrate(ctx, query, sessionID, sink)
}

// Orchestrator exposes the underlying coordinator for advanced use.
func (m *Mesh) Orchestrator() *orchestrator.Orchestrator { return m.orch }

// Executor exposes the shared tool executor.
func (m *Mesh) Executor() *tool.Executor { return m.executor }

// Knowledge exposes the shared document store.
func (m *Mesh) Knowledge() *knowledge.Store { return m.knowledge }

// History returns the retained orchestration results, oldest first.
func (m *Mesh) History() []*core.OrchestrationResult { return m.orch.History() }
