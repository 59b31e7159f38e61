package registry

import (
	"errors"
	"fmt"
)

// ErrRegistryFrozen is returned by Register, AddRoute and AddDefaultRoute once
// the registry has been frozen by a session. Registry mutation and session
// execution are temporally disjoint phases; mutating a registry that sessions
// already run against is caller misuse.
var ErrRegistryFrozen = errors.New("registry is frozen: sessions have been constructed from it")

// DuplicateWorkerError indicates an attempt to register a second worker under
// an already taken name.
type DuplicateWorkerError struct {
	Name string
}

func (e *DuplicateWorkerError) Error() string {
	return fmt.Sprintf("worker %q is already registered", e.Name)
}

// UnknownWorkerError indicates a route or entry point referencing a worker
// name that was never registered.
type UnknownWorkerError struct {
	Name string
}

func (e *UnknownWorkerError) Error() string {
	return fmt.Sprintf("worker %q is not registered", e.Name)
}

// ConflictingDefaultRouteError indicates a second unconditional (default)
// route being added for the same source worker. At most one default edge is
// allowed per source.
type ConflictingDefaultRouteError struct {
	Source   string
	Existing string
}

func (e *ConflictingDefaultRouteError) Error() string {
	return fmt.Sprintf("worker %q already has a default route to %q", e.Source, e.Existing)
}

// UndeclaredTargetError indicates a route whose target is outside the source
// worker's declared target set.
type UndeclaredTargetError struct {
	Source string
	Target string
}

func (e *UndeclaredTargetError) Error() string {
	return fmt.Sprintf("worker %q does not declare %q as a handoff target", e.Source, e.Target)
}
