package core

import "time"

// Conversation roles used in dialogue history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// Message is a single conversational turn stored in a session's bounded
// history window.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message stamped with the current UTC time.
func NewMessage(role, content string) Message {
	return Message{Role: role, Content: content, Timestamp: time.Now().UTC()}
}
