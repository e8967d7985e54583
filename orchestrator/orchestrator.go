// Package orchestrator coordinates multiple specialized agents to answer a
// query that may span several knowledge domains. It analyzes query
// complexity, decomposes complex queries into a dependency graph of
// subtasks, dispatches each execution phase concurrently to the
// best-matching agents and synthesizes the partial results into one final
// answer with an aggregate confidence score.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/veldtlabs/mentormesh/agent"
	"github.com/veldtlabs/mentormesh/core"
	"github.com/veldtlabs/mentormesh/logging"
)

// ErrNoAgents is returned when Orchestrate is called before any agent was
// registered.
var ErrNoAgents = errors.New("no agents registered")

const defaultHistoryLimit = 50

// orchestrationLogger is implemented by loggers recording finished runs as
// structured domain events (logging.OrchestraLogger).
type orchestrationLogger interface {
	LogOrchestration(taskID string, subtasks, failed int, dur time.Duration, confidence float64)
}

// Telemetry observes orchestration activity. Implementations must not
// block.
type Telemetry interface {
	ObserveSubtask(agent string, duration time.Duration, success bool)
	ObserveOrchestration(path string, success bool)
	RunStarted() func()
}

// Options configures an Orchestrator.
type Options struct {
	// Complexity scores queries; score >= ComplexityCutoff triggers the
	// decomposition path.
	Complexity       ComplexityAnalyzer
	ComplexityCutoff float64
	// Rules are the decomposition patterns tried in order.
	Rules []DecompositionRule
	// Classifier detects the query's primary domain and language.
	Classifier agent.Classifier
	// HistoryLimit bounds the retained orchestration results.
	HistoryLimit int
	Logger       logging.Logger
	Telemetry    Telemetry
}

// Orchestrator is the top-level coordinator. Agents are registered at
// start-up; Orchestrate is safe for concurrent use.
type Orchestrator struct {
	mu     sync.RWMutex
	agents []core.Agent // registration order is the scoring tie-break
	names  map[string]bool

	complexity   ComplexityAnalyzer
	cutoff       float64
	rules        []DecompositionRule
	classifier   agent.Classifier
	logger       logging.Logger
	telemetry    Telemetry
	historyLimit int

	historyMu sync.Mutex
	history   []*core.OrchestrationResult

	emitMu sync.Mutex
}

// New creates an Orchestrator with default heuristics.
func New(optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		Complexity:       DefaultComplexityAnalyzer,
		ComplexityCutoff: defaultComplexityCutoff,
		Rules:            DefaultRules(),
		Classifier:       agent.DefaultClassifier,
		HistoryLimit:     defaultHistoryLimit,
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Orchestrator{
		names:        map[string]bool{},
		complexity:   opts.Complexity,
		cutoff:       opts.ComplexityCutoff,
		rules:        opts.Rules,
		classifier:   opts.Classifier,
		logger:       opts.Logger,
		telemetry:    opts.Telemetry,
		historyLimit: opts.HistoryLimit,
	}
}

// Register adds agents to the registry. Capability declarations are
// immutable after registration; duplicate names are rejected.
func (o *Orchestrator) Register(agents ...core.Agent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, a := range agents {
		if o.names[a.Name()] {
			return fmt.Errorf("agent %q already registered", a.Name())
		}
		o.names[a.Name()] = true
		o.agents = append(o.agents, a)
	}
	return nil
}

// Agents returns the registered agents in registration order.
func (o *Orchestrator) Agents() []core.Agent {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]core.Agent, len(o.agents))
	copy(out, o.agents)
	return out
}

// Orchestrate processes one query end to end: complexity analysis,
// routing or decomposition, phased concurrent execution and synthesis.
// The sink receives ordered progress events and may be nil.
//
// An invalid decomposition returns *core.DecompositionError before any
// agent runs. Agent failures never abort the run: synthesis proceeds with
// whatever completed and degrades to a low-confidence message when nothing
// did. Callers wanting a timeout wrap ctx; the orchestrator itself never
// cancels in-flight subtasks.
func (o *Orchestrator) Orchestrate(
	ctx context.Context,
	query, sessionID string,
	sink core.ProgressSink,
) (*core.OrchestrationResult, error) {
	if len(o.Agents()) == 0 {
		return nil, ErrNoAgents
	}

	if o.telemetry != nil {
		defer o.telemetry.RunStarted()()
	}

	taskID := core.NewID()
	start := time.Now()

	cls := o.classifier(query)
	score := o.complexity(query)

	path := "single"
	var decomp core.TaskDecomposition
	if score >= o.cutoff {
		if matched, ok := o.applyRules(query, cls, score); ok {
			path = "decomposed"
			decomp = matched
		} else {
			decomp = singleSubtaskDecomposition(query, cls, score)
		}
	} else {
		decomp = singleSubtaskDecomposition(query, cls, score)
	}

	o.emit(sink, core.ProgressEvent{
		Kind:   core.ProgressTaskDecomposed,
		TaskID: taskID,
		Detail: fmt.Sprintf("%d subtask(s), order %s", len(decomp.Subtasks), decomp.ExecutionOrder),
	})

	phases, err := BuildPhases(decomp)
	if err != nil {
		if o.telemetry != nil {
			o.telemetry.ObserveOrchestration(path, false)
		}
		o.logger.Warn("orchestration.invalid_decomposition", "task_id", taskID, "error", err.Error())
		return nil, err
	}

	executions := o.runPhases(ctx, taskID, sessionID, cls.Language, decomp, phases, sink)

	finalResult, confidence := synthesize(executions)

	result := &core.OrchestrationResult{
		TaskID:        taskID,
		OriginalQuery: query,
		Decomposition: decomp,
		Executions:    executions,
		FinalResult:   finalResult,
		Confidence:    confidence,
		TotalDuration: time.Since(start),
		AgentsUsed:    agentsUsed(executions),
	}
	o.appendHistory(result)

	completed := len(result.CompletedExecutions())
	if o.telemetry != nil {
		o.telemetry.ObserveOrchestration(path, completed > 0)
	}
	if ol, ok := o.logger.(orchestrationLogger); ok {
		ol.LogOrchestration(taskID, len(decomp.Subtasks), len(decomp.Subtasks)-completed, result.TotalDuration, confidence)
	} else {
		o.logger.Info("orchestration.completed",
			"task_id", taskID,
			"path", path,
			"subtasks", len(decomp.Subtasks),
			"completed", completed,
			"confidence", confidence,
			"duration_ms", result.TotalDuration.Milliseconds(),
		)
	}
	return result, nil
}

// applyRules tries each decomposition rule in order.
func (o *Orchestrator) applyRules(query string, cls agent.Classification, score float64) (core.TaskDecomposition, bool) {
	for _, rule := range o.rules {
		if d, ok := rule(query, cls, score); ok {
			return d, true
		}
	}
	return core.TaskDecomposition{}, false
}

// runPhases dispatches every subtask of a phase concurrently and waits for
// the whole phase before advancing. A failing subtask neither blocks its
// siblings nor aborts dependent phases: forward progress is best effort.
// Returned executions follow subtask declaration order.
func (o *Orchestrator) runPhases(
	ctx context.Context,
	taskID, sessionID, language string,
	decomp core.TaskDecomposition,
	phases [][]core.SubTask,
	sink core.ProgressSink,
) []*core.AgentExecution {
	byID := make(map[string]*core.AgentExecution, len(decomp.Subtasks))
	multi := len(decomp.Subtasks) > 1

	for phaseIdx, phase := range phases {
		o.emit(sink, core.ProgressEvent{
			Kind:   core.ProgressPhaseStarted,
			TaskID: taskID,
			Phase:  phaseIdx + 1,
			Detail: fmt.Sprintf("%d subtask(s)", len(phase)),
		})

		var wg sync.WaitGroup
		for _, st := range phase {
			exec := core.NewAgentExecution("", st.ID)
			byID[st.ID] = exec

			wg.Add(1)
			go func(st core.SubTask, exec *core.AgentExecution) {
				defer wg.Done()
				o.runSubtask(ctx, taskID, sessionID, language, phaseIdx+1, st, exec, multi, sink)
			}(st, exec)
		}
		wg.Wait()
	}

	ordered := make([]*core.AgentExecution, 0, len(decomp.Subtasks))
	for _, st := range decomp.Subtasks {
		ordered = append(ordered, byID[st.ID])
	}
	return ordered
}

func (o *Orchestrator) runSubtask(
	ctx context.Context,
	taskID, sessionID, language string,
	phase int,
	st core.SubTask,
	exec *core.AgentExecution,
	multi bool,
	sink core.ProgressSink,
) {
	a := o.selectAgent(st.RequiredAgentID, language)
	exec.AgentID = a.Name()
	_ = exec.MarkRunning()

	o.emit(sink, core.ProgressEvent{
		Kind:      core.ProgressSubtaskStarted,
		TaskID:    taskID,
		SubtaskID: st.ID,
		AgentID:   a.Name(),
		Phase:     phase,
	})

	// Concurrent subtasks of one run use session-scoped sub-identities so
	// they never contend on the same dialogue context.
	subSession := sessionID
	if multi {
		subSession = sessionID + ":" + st.ID
	}

	resp, err := a.Process(ctx, st.Description, subSession)
	if err != nil {
		_ = exec.MarkFailed()
		o.logger.Warn("orchestration.subtask_failed",
			"task_id", taskID, "subtask_id", st.ID, "agent", a.Name(), "error", err.Error())
	} else {
		_ = exec.MarkCompleted(resp)
	}

	if o.telemetry != nil {
		o.telemetry.ObserveSubtask(a.Name(), exec.Duration(), exec.Status == core.ExecutionCompleted)
	}

	o.emit(sink, core.ProgressEvent{
		Kind:      core.ProgressSubtaskCompleted,
		TaskID:    taskID,
		SubtaskID: st.ID,
		AgentID:   a.Name(),
		Phase:     phase,
		Detail:    string(exec.Status),
	})
}

// emit delivers a progress event to the sink. Serialized so sinks observe
// a consistent order even while a phase fans out.
func (o *Orchestrator) emit(sink core.ProgressSink, ev core.ProgressEvent) {
	if sink == nil {
		return
	}
	ev.Timestamp = time.Now().UTC()
	o.emitMu.Lock()
	defer o.emitMu.Unlock()
	sink(ev)
}

func (o *Orchestrator) appendHistory(result *core.OrchestrationResult) {
	o.historyMu.Lock()
	defer o.historyMu.Unlock()
	o.history = append(o.history, result)
	if o.historyLimit > 0 && len(o.history) > o.historyLimit {
		o.history = append([]*core.OrchestrationResult(nil), o.history[len(o.history)-o.historyLimit:]...)
	}
}

// History returns the retained orchestration results, oldest first.
func (o *Orchestrator) History() []*core.OrchestrationResult {
	o.historyMu.Lock()
	defer o.historyMu.Unlock()
	out := make([]*core.OrchestrationResult, len(o.history))
	copy(out, o.history)
	return out
}

// agentsUsed returns unique agent ids in execution declaration order.
func agentsUsed(executions []*core.AgentExecution) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range executions {
		if e.AgentID != "" && !seen[e.AgentID] {
			seen[e.AgentID] = true
			out = append(out, e.AgentID)
		}
	}
	return out
}
