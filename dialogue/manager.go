package dialogue

import (
	"fmt"
	"strings"

	"github.com/veldtlabs/mentormesh/internal/util"
	"github.com/veldtlabs/mentormesh/logging"
)

// instructionTemplate is rendered per turn with phase, persona, user model
// and language data to form the system instruction set.
const instructionTemplate = `You are {{default "a helpful tutor" .Persona}}.
Conversation phase: {{.Phase}}. {{.PhaseGuidance}}
The learner's knowledge level is {{.KnowledgeLevel}}. Respond in language "{{.Language}}".
Keep answers focused and verify your reasoning before concluding.`

var phaseGuidance = map[Phase]string{
	PhaseGreeting:        "Welcome the learner briefly and ask what they want to work on.",
	PhaseProblemAnalysis: "Identify what the problem is asking before solving anything.",
	PhaseTeaching:        "Work through the solution step by step, explaining each move.",
	PhasePractice:        "Offer a similar exercise and let the learner attempt it first.",
	PhaseWrapUp:          "Summarize what was covered and encourage the learner.",
}

// gratitude phrases that move any phase to wrap_up.
var gratitudeMarkers = []string{
	"thank", "thanks", "merci", "gracias", "danke", "appreciate it",
}

// practiceMarkers move teaching to practice.
var practiceMarkers = []string{
	"practice", "exercise", "another one", "try one", "exercice", "entraîn",
}

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	Store  Store
	Logger logging.Logger
	// SubstantialLength is the minimum rune count for a user message to
	// count as substantial (moves greeting to problem_analysis).
	SubstantialLength int
}

// Manager owns phase bookkeeping and instruction-set assembly. It does not
// call the reasoning provider; that is the agent's responsibility.
type Manager struct {
	store             Store
	logger            logging.Logger
	substantialLength int
}

// NewManager creates a Manager. A nil store gets a default LRUStore.
func NewManager(optFns ...func(o *ManagerOptions)) (*Manager, error) {
	opts := ManagerOptions{Logger: logging.NoOpLogger{}, SubstantialLength: 12}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Store == nil {
		store, err := NewLRUStore()
		if err != nil {
			return nil, err
		}
		opts.Store = store
	}
	return &Manager{
		store:             opts.Store,
		logger:            opts.Logger,
		substantialLength: opts.SubstantialLength,
	}, nil
}

// BuildContext returns the session's dialogue context, creating it on the
// first turn.
func (m *Manager) BuildContext(sessionID string) (*Context, error) {
	return m.store.Get(sessionID)
}

// Instructions assembles the system instruction set from the current
// phase, persona, user model and language.
func (m *Manager) Instructions(ctx *Context, persona string) (string, error) {
	phase := ctx.CurrentPhase()
	out, err := util.RenderTemplate(instructionTemplate, map[string]any{
		"Persona":        persona,
		"Phase":          string(phase),
		"PhaseGuidance":  phaseGuidance[phase],
		"KnowledgeLevel": ctx.User.KnowledgeLevel,
		"Language":       ctx.Language,
	})
	if err != nil {
		return "", fmt.Errorf("assemble instructions: %w", err)
	}
	return out, nil
}

// Advance appends the finished turn to history and applies phase
// transition rules:
//
//   - gratitude phrases move any phase to wrap_up
//   - the first substantial user message moves greeting to problem_analysis
//   - a delivered response moves problem_analysis to teaching
//   - a practice request moves teaching to practice
func (m *Manager) Advance(sessionID, userInput, response string) error {
	ctx, err := m.store.Get(sessionID)
	if err != nil {
		return err
	}

	before := ctx.CurrentPhase()
	next := m.nextPhase(before, userInput, response)

	ctx.AppendTurn(userInput, response)
	if next != before {
		ctx.SetPhase(next)
		m.logger.Debug("dialogue.phase_transition", "session_id", sessionID, "from", string(before), "to", string(next))
	}
	return nil
}

func (m *Manager) nextPhase(current Phase, userInput, response string) Phase {
	input := strings.ToLower(userInput)

	for _, marker := range gratitudeMarkers {
		if strings.Contains(input, marker) {
			return PhaseWrapUp
		}
	}

	switch current {
	case PhaseGreeting:
		if m.substantial(input) {
			return PhaseProblemAnalysis
		}
	case PhaseProblemAnalysis:
		if strings.TrimSpace(response) != "" {
			return PhaseTeaching
		}
	case PhaseTeaching:
		for _, marker := range practiceMarkers {
			if strings.Contains(input, marker) {
				return PhasePractice
			}
		}
	}
	return current
}

// substantial reports whether a user message is more than a greeting:
// long enough, or carrying a question.
func (m *Manager) substantial(input string) bool {
	if len([]rune(strings.TrimSpace(input))) >= m.substantialLength {
		return true
	}
	return strings.Contains(input, "?")
}
