package core

import (
	"time"

	"github.com/google/uuid"
)

// SourceUser identifies messages authored by the external caller (the seeded
// task and human-in-the-loop replies).
const SourceUser = "user"

// SourceSystem identifies messages synthesized by the session loop itself,
// such as worker failure or cancellation records.
const SourceSystem = "system"

// Message is one turn of conversation. After it has been appended to a session
// history it must be treated as immutable; histories are append-only ordered
// sequences of messages.
//
// Content carries the free-form text a worker produced. Directive optionally
// carries a routing hint: either a condition keyword or the exact name of a
// target worker for an explicit handoff. The router consumes Directive when
// present and falls back to substring matching against Content otherwise.
//
// The struct is JSON-tagged so full histories can be serialized directly.
type Message struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Content   string    `json:"content"`
	Directive string    `json:"directive,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message authored by the named worker.
func NewMessage(source, content string) Message {
	return Message{
		ID:        NewID(),
		Source:    source,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserMessage is a convenience wrapper for a user-authored message. The
// session loop seeds every history with one of these carrying the initial task.
func NewUserMessage(content string) Message {
	return NewMessage(SourceUser, content)
}

// NewSystemMessage creates a message authored by the session loop itself.
// Used to record worker failures and cancellations in the history so the final
// transcript is self-describing.
func NewSystemMessage(content string) Message {
	return NewMessage(SourceSystem, content)
}

// NewDirectiveMessage creates a worker message carrying an explicit routing
// hint in addition to its content.
func NewDirectiveMessage(source, content, directive string) Message {
	m := NewMessage(source, content)
	m.Directive = directive
	return m
}

// NewID generates a new unique identifier for messages and sessions.
func NewID() string { return uuid.NewString() }
