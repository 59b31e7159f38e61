package core

import "context"

// Handler is the capability at the heart of a worker: given the conversation
// history so far it produces the worker's next message. Implementations may
// call out to a completion service, prompt a human, or apply deterministic
// rule-based logic. Handlers must respect context cancellation.
type Handler func(ctx context.Context, history []Message) (Message, error)

// Worker is a named unit of conversational capability. Workers are registered
// once at session construction and are immutable for the lifetime of the
// sessions built on top of them.
//
// Targets is the closed-world set of worker names this worker is allowed to
// hand off to. An empty set means unrestricted: any registered worker may be a
// routing target. A non-empty set causes route registration and directive
// handoffs referencing other workers to fail, preventing routing into
// undefined corners of the graph.
type Worker interface {
	// Name returns the worker's unique, session-stable identifier.
	Name() string

	// Targets returns the declared handoff targets (empty = unrestricted).
	Targets() []string

	// Handle produces the worker's next message given the history so far.
	Handle(ctx context.Context, history []Message) (Message, error)
}
