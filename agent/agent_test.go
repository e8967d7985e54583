package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/mentormesh/core"
	"github.com/veldtlabs/mentormesh/dialogue"
	"github.com/veldtlabs/mentormesh/knowledge"
	"github.com/veldtlabs/mentormesh/provider"
	"github.com/veldtlabs/mentormesh/tool"
)

func newTestExecutor() *tool.Executor {
	return tool.NewExecutor(tool.NewRegistry(
		tool.NewCalculatorTool(),
		tool.NewEquationSolverTool(),
		tool.NewKnowledgeSearchTool(knowledge.NewStore()),
	))
}

func mathCapability() core.AgentCapability {
	return core.AgentCapability{
		Domain:     "mathematics",
		Skills:     []string{"algebra"},
		Confidence: 0.9,
		Languages:  []string{"en", "fr"},
	}
}

func TestSpecialist_Process(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	mock.Queue(
		"I will calculate 6 * 7 for this.",
		"Therefore the answer is 42.",
	)

	spec, err := NewSpecialist("MathAgent", mathCapability(), mock, newTestExecutor())
	require.NoError(t, err)
	assert.Equal(t, "MathAgent", spec.Name())
	assert.Equal(t, "mathematics", spec.Capability().Domain)

	resp, err := spec.Process(context.Background(), "What is 6 * 7?", "session-1")
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "42")
	require.Len(t, resp.Trace, 2)
	assert.NotNil(t, resp.Trace[0].Action)
	assert.Greater(t, resp.Confidence, 0.8)
}

func TestSpecialist_ProcessWithCallbacks(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	mock.Queue(
		"Let me solve 2x + 3 = 7 first.",
		"Therefore the answer is x = 2.",
	)

	spec, err := NewSpecialist("MathAgent", mathCapability(), mock, newTestExecutor())
	require.NoError(t, err)

	var stepCount, callCount int
	resp, err := spec.ProcessWithCallbacks(context.Background(), "Solve 2x + 3 = 7", "session-2",
		func(core.ReActStep) { stepCount++ },
		func(call core.ToolCall, result core.ToolResult) {
			callCount++
			assert.Equal(t, "equation_solver", call.Name)
			assert.True(t, result.OK())
		},
	)
	require.NoError(t, err)
	assert.Equal(t, len(resp.Trace), stepCount)
	assert.Equal(t, 1, callCount)
}

func TestSpecialist_SessionStateAdvances(t *testing.T) {
	store, err := dialogue.NewLRUStore()
	require.NoError(t, err)
	mgr, err := dialogue.NewManager(func(o *dialogue.ManagerOptions) { o.Store = store })
	require.NoError(t, err)

	mock := provider.NewMockProvider("mock")
	mock.AddResponse("", "Therefore the answer is 4.")

	spec, err := NewSpecialist("MathAgent", mathCapability(), mock, newTestExecutor(),
		func(o *Options) { o.Dialogue = mgr })
	require.NoError(t, err)

	_, err = spec.Process(context.Background(), "Peux-tu calculer 2 + 2 pour moi ?", "session-3")
	require.NoError(t, err)

	ctx, err := store.Get("session-3")
	require.NoError(t, err)
	assert.Equal(t, "fr", ctx.Language)
	assert.Equal(t, 1, ctx.TurnCount())
	// substantial first message moves the session past greeting
	assert.Equal(t, dialogue.PhaseProblemAnalysis, ctx.CurrentPhase())
}

func TestSpecialist_ProviderFailureDegrades(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	mock.FailWith(errors.New("backend down"))

	spec, err := NewSpecialist("MathAgent", mathCapability(), mock, newTestExecutor())
	require.NoError(t, err)

	resp, err := spec.Process(context.Background(), "anything at all", "session-4")
	require.NoError(t, err)
	assert.InDelta(t, 0.1, resp.Confidence, 1e-9)
	assert.Contains(t, resp.Message, "I'm sorry")
}

func TestSpecialist_EmptyTraceUsesDefaultConfidence(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := provider.NewMockProvider("mock")
	spec, err := NewSpecialist("MathAgent", mathCapability(), mock, newTestExecutor())
	require.NoError(t, err)

	resp, err := spec.Process(ctx, "anything", "session-5")
	require.NoError(t, err)
	assert.Empty(t, resp.Trace)
	assert.InDelta(t, 0.5, resp.Confidence, 1e-9)
}
