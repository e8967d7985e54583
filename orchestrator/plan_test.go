package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/mentormesh/core"
)

func TestBuildPhases_Parallel(t *testing.T) {
	d := core.NewTaskDecomposition(0.6,
		core.SubTask{ID: "subtask_1"},
		core.SubTask{ID: "subtask_2"},
	)

	phases, err := BuildPhases(d)
	require.NoError(t, err)
	require.Len(t, phases, 1)
	assert.Len(t, phases[0], 2)
}

func TestBuildPhases_Sequential(t *testing.T) {
	d := core.NewTaskDecomposition(0.6,
		core.SubTask{ID: "subtask_1"},
		core.SubTask{ID: "subtask_2", Dependencies: []string{"subtask_1"}},
	)

	phases, err := BuildPhases(d)
	require.NoError(t, err)
	require.Len(t, phases, 2)
	assert.Equal(t, "subtask_1", phases[0][0].ID)
	assert.Equal(t, "subtask_2", phases[1][0].ID)
}

func TestBuildPhases_Diamond(t *testing.T) {
	d := core.NewTaskDecomposition(0.8,
		core.SubTask{ID: "a"},
		core.SubTask{ID: "b", Dependencies: []string{"a"}},
		core.SubTask{ID: "c", Dependencies: []string{"a"}},
		core.SubTask{ID: "d", Dependencies: []string{"b", "c"}},
	)

	phases, err := BuildPhases(d)
	require.NoError(t, err)
	require.Len(t, phases, 3)
	assert.Equal(t, "a", phases[0][0].ID)
	assert.Len(t, phases[1], 2)
	assert.Equal(t, "d", phases[2][0].ID)
}

func TestBuildPhases_PriorityOrdersWithinPhase(t *testing.T) {
	d := core.NewTaskDecomposition(0.6,
		core.SubTask{ID: "low", Priority: 1},
		core.SubTask{ID: "high", Priority: 3},
		core.SubTask{ID: "mid", Priority: 2},
	)

	phases, err := BuildPhases(d)
	require.NoError(t, err)
	require.Len(t, phases, 1)
	assert.Equal(t, []string{"high", "mid", "low"},
		[]string{phases[0][0].ID, phases[0][1].ID, phases[0][2].ID})
}

func TestBuildPhases_DanglingDependency(t *testing.T) {
	d := core.NewTaskDecomposition(0.6,
		core.SubTask{ID: "subtask_1", Dependencies: []string{"ghost"}},
	)

	_, err := BuildPhases(d)
	require.Error(t, err)

	var decompErr *core.DecompositionError
	require.ErrorAs(t, err, &decompErr)
	assert.Equal(t, "subtask_1", decompErr.SubtaskID)
	assert.Equal(t, "ghost", decompErr.Dependency)
}

func TestBuildPhases_Cycle(t *testing.T) {
	d := core.NewTaskDecomposition(0.6,
		core.SubTask{ID: "a", Dependencies: []string{"b"}},
		core.SubTask{ID: "b", Dependencies: []string{"a"}},
	)

	_, err := BuildPhases(d)
	require.Error(t, err)

	var decompErr *core.DecompositionError
	require.ErrorAs(t, err, &decompErr)
	assert.Contains(t, decompErr.Reason, "cycle")
}

func TestBuildPhases_Empty(t *testing.T) {
	phases, err := BuildPhases(core.TaskDecomposition{})
	require.NoError(t, err)
	assert.Empty(t, phases)
}
