package orchestrator

import (
	"sort"

	"github.com/veldtlabs/mentormesh/core"
)

// BuildPhases groups a decomposition's subtasks into ordered execution
// phases: phase k contains every not-yet-scheduled subtask whose
// dependencies are all satisfied by phases < k. Within a phase subtasks
// order by descending priority, then declaration order.
//
// A dangling dependency or a cycle returns *core.DecompositionError
// before any agent runs.
func BuildPhases(d core.TaskDecomposition) ([][]core.SubTask, error) {
	ids := make(map[string]bool, len(d.Subtasks))
	for _, st := range d.Subtasks {
		ids[st.ID] = true
	}

	for _, st := range d.Subtasks {
		for _, dep := range st.Dependencies {
			if !ids[dep] {
				return nil, &core.DecompositionError{
					SubtaskID:  st.ID,
					Dependency: dep,
					Reason:     "does not exist in this decomposition",
				}
			}
		}
	}

	scheduled := make(map[string]bool, len(d.Subtasks))
	remaining := append([]core.SubTask(nil), d.Subtasks...)
	var phases [][]core.SubTask

	for len(remaining) > 0 {
		var phase []core.SubTask
		var next []core.SubTask

		for _, st := range remaining {
			ready := true
			for _, dep := range st.Dependencies {
				if !scheduled[dep] {
					ready = false
					break
				}
			}
			if ready {
				phase = append(phase, st)
			} else {
				next = append(next, st)
			}
		}

		if len(phase) == 0 {
			// no subtask became ready: the remainder forms a cycle
			return nil, &core.DecompositionError{
				SubtaskID: next[0].ID,
				Reason:    "dependency cycle detected",
			}
		}

		sort.SliceStable(phase, func(i, j int) bool { return phase[i].Priority > phase[j].Priority })
		for _, st := range phase {
			scheduled[st.ID] = true
		}
		phases = append(phases, phase)
		remaining = next
	}

	return phases, nil
}
