// Package session drives a routed conversation to completion. A Session owns
// its mutable state exclusively: the append-only message history, the worker
// whose turn is next, the turn counter and the termination record. It is the
// only stateful, externally invoked component of AgentRoute.
//
// Each loop iteration invokes the current worker, appends its message and then
// checks termination conditions in a fixed priority order: terminal phrase,
// turn cap, routing dead-end. Worker failures and cancellation are funneled
// into a terminal state with an explanatory system message rather than raised
// to the caller, keeping the final history self-describing.
//
// The package also provides a transcript Store for callers running many
// conversations against one shared, frozen registry.
package session
