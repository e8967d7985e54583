// Package dialogue tracks per-session conversational state: the current
// phase, a bounded history window and an adaptive user model. The Manager
// assembles the instruction set for the reasoning provider and advances
// phase transitions after each turn; it never calls the provider itself,
// which keeps it a pure state + template function.
package dialogue

import (
	"sync"
	"time"

	"github.com/veldtlabs/mentormesh/core"
)

// Phase is the conversational phase of a tutoring session.
type Phase string

const (
	PhaseGreeting        Phase = "greeting"
	PhaseProblemAnalysis Phase = "problem_analysis"
	PhaseTeaching        Phase = "teaching"
	PhasePractice        Phase = "practice"
	PhaseWrapUp          Phase = "wrap_up"
)

// Knowledge levels tracked in the user model.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// UserModel is informational state about the learner, adjusted adaptively
// as the session progresses. It never gates correctness.
type UserModel struct {
	KnowledgeLevel string `json:"knowledge_level"`
	LearningStyle  string `json:"learning_style"`
}

// Context is the dialogue state of one session. It is created on the first
// turn of a session id and mutated every turn. Safe for concurrent access;
// concurrent subtasks of one orchestration run use session-scoped
// sub-identities so they never contend on the same Context.
type Context struct {
	SessionID string         `json:"session_id"`
	History   []core.Message `json:"history"`
	Phase     Phase          `json:"phase"`
	User      UserModel      `json:"user"`
	Language  string         `json:"language"`
	Created   time.Time      `json:"created"`
	Updated   time.Time      `json:"updated"`

	window int
	mu     sync.Mutex
}

// NewContext creates a greeting-phase context with the given history
// window bound.
func NewContext(sessionID string, window int) *Context {
	now := time.Now().UTC()
	return &Context{
		SessionID: sessionID,
		Phase:     PhaseGreeting,
		User:      UserModel{KnowledgeLevel: LevelIntermediate},
		Language:  "en",
		Created:   now,
		Updated:   now,
		window:    window,
	}
}

// AppendTurn records a user/assistant exchange, evicting the oldest
// messages beyond the history window.
func (c *Context) AppendTurn(userInput, response string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.History = append(c.History,
		core.NewMessage(core.RoleUser, userInput),
		core.NewMessage(core.RoleAssistant, response),
	)
	if c.window > 0 && len(c.History) > c.window {
		c.History = append([]core.Message(nil), c.History[len(c.History)-c.window:]...)
	}
	c.Updated = time.Now().UTC()
}

// SetPhase updates the conversational phase.
func (c *Context) SetPhase(p Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Phase = p
	c.Updated = time.Now().UTC()
}

// CurrentPhase returns the conversational phase.
func (c *Context) CurrentPhase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Phase
}

// SetLanguage records the session language.
func (c *Context) SetLanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if lang != "" {
		c.Language = lang
	}
}

// Messages returns a defensive copy of the history window.
func (c *Context) Messages() []core.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.Message, len(c.History))
	copy(out, c.History)
	return out
}

// TurnCount returns the number of completed user turns.
func (c *Context) TurnCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, m := range c.History {
		if m.Role == core.RoleUser {
			n++
		}
	}
	return n
}
