package registry

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/hupe1980/agentroute/core"
)

// route is one edge in the routing graph. An empty condition marks the
// default (unconditional) edge for its source.
type route struct {
	target    string
	condition string
}

// Registry maps worker names to worker capabilities and records the routing
// edges between them. All mutation happens during a single assembly phase;
// Freeze transitions the registry to a read-only state shared by sessions.
type Registry struct {
	mu       sync.RWMutex
	workers  map[string]core.Worker
	routes   map[string][]route // conditional edges, registration order
	defaults map[string]route   // at most one unconditional edge per source
	frozen   bool
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		workers:  make(map[string]core.Worker),
		routes:   make(map[string][]route),
		defaults: make(map[string]route),
	}
}

// Register adds a worker to the registry. It fails with DuplicateWorkerError
// if the name is already taken and with ErrRegistryFrozen after Freeze.
func (r *Registry) Register(w core.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrRegistryFrozen
	}
	if w == nil || w.Name() == "" {
		return errors.New("worker must have a non-empty name")
	}
	if _, exists := r.workers[w.Name()]; exists {
		return &DuplicateWorkerError{Name: w.Name()}
	}
	r.workers[w.Name()] = w

	return nil
}

// AddRoute adds a conditional edge from source to target. The condition is a
// literal, case-sensitive substring that must appear in the source worker's
// output signal for the edge to match. Conditional edges are evaluated in the
// order they were added; the first match wins.
func (r *Registry) AddRoute(source, target, condition string) error {
	if condition == "" {
		return errors.New("condition must be non-empty; use AddDefaultRoute for the fallback edge")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.validateEdgeLocked(source, target); err != nil {
		return err
	}
	r.routes[source] = append(r.routes[source], route{target: target, condition: condition})

	return nil
}

// AddDefaultRoute adds the unconditional fallback edge for source, taken when
// no conditional edge matches. A second default for the same source fails with
// ConflictingDefaultRouteError.
func (r *Registry) AddDefaultRoute(source, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.validateEdgeLocked(source, target); err != nil {
		return err
	}
	if existing, ok := r.defaults[source]; ok {
		return &ConflictingDefaultRouteError{Source: source, Existing: existing.target}
	}
	r.defaults[source] = route{target: target}

	return nil
}

// validateEdgeLocked checks freeze state, endpoint registration and the source
// worker's declared target set. Caller must hold the write lock.
func (r *Registry) validateEdgeLocked(source, target string) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	src, ok := r.workers[source]
	if !ok {
		return &UnknownWorkerError{Name: source}
	}
	if _, ok := r.workers[target]; !ok {
		return &UnknownWorkerError{Name: target}
	}
	if declared := src.Targets(); len(declared) > 0 && !slices.Contains(declared, target) {
		return &UndeclaredTargetError{Source: source, Target: target}
	}
	return nil
}

// Resolve returns the routing target for the given source worker and signal.
// Conditional edges are checked in registration order (first match wins), the
// default edge last. The boolean is false when no edge matches and no default
// exists; callers treat that as the NO_ROUTE terminal outcome.
func (r *Registry) Resolve(source, signal string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rt := range r.routes[source] {
		if strings.Contains(signal, rt.condition) {
			return rt.target, true
		}
	}
	if def, ok := r.defaults[source]; ok {
		return def.target, true
	}

	return "", false
}

// Reachable reports whether target is a valid handoff destination from source:
// either an edge from source to target exists, or the source worker declares
// target in its target set. Used by the router to validate explicit directive
// handoffs without widening the closed world.
func (r *Registry) Reachable(source, target string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.workers[target]; !ok {
		return false
	}
	src, ok := r.workers[source]
	if !ok {
		return false
	}
	if slices.Contains(src.Targets(), target) {
		return true
	}
	for _, rt := range r.routes[source] {
		if rt.target == target {
			return true
		}
	}
	if def, ok := r.defaults[source]; ok && def.target == target {
		return true
	}

	return false
}

// Worker returns the registered worker for name.
func (r *Registry) Worker(name string) (core.Worker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workers[name]
	return w, ok
}

// Has reports whether a worker with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Worker(name)
	return ok
}

// Len returns the number of registered workers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workers)
}

// Freeze marks the registry read-only. It is called by the session package
// when the first session is constructed and is idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether the registry has been frozen.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}
