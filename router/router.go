package router

import (
	"errors"

	"github.com/hupe1980/agentroute/core"
	"github.com/hupe1980/agentroute/registry"
)

// ErrNoEntryPoint is returned by EntryPoint when no start worker was
// configured. Sessions cannot be constructed from such a router.
var ErrNoEntryPoint = errors.New("router has no entry point")

// Options configures a Router.
type Options struct {
	// EntryPoint names the worker a session starts at. Set once at
	// construction; it must reference a registered worker.
	EntryPoint string
}

// WithEntryPoint sets the designated start worker.
func WithEntryPoint(name string) func(o *Options) {
	return func(o *Options) { o.EntryPoint = name }
}

// Router decides which worker acts next. It performs no I/O and never
// suspends; NextWorker is a pure function of (current worker, last message)
// for a fixed registry. A Router is safe to share across concurrent sessions
// once its registry is frozen.
type Router struct {
	registry *registry.Registry
	entry    string
}

// New constructs a Router over the given registry. A configured entry point
// must reference a registered worker.
func New(reg *registry.Registry, optFns ...func(o *Options)) (*Router, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.EntryPoint != "" && !reg.Has(opts.EntryPoint) {
		return nil, &registry.UnknownWorkerError{Name: opts.EntryPoint}
	}

	return &Router{registry: reg, entry: opts.EntryPoint}, nil
}

// EntryPoint returns the designated start worker, or ErrNoEntryPoint if none
// was configured.
func (r *Router) EntryPoint() (string, error) {
	if r.entry == "" {
		return "", ErrNoEntryPoint
	}
	return r.entry, nil
}

// Registry returns the underlying registry.
func (r *Router) Registry() *registry.Registry { return r.registry }

// NextWorker resolves the worker that acts after current, given its last
// message. Resolution order:
//
//  1. An explicit directive naming a worker reachable from current (a routed
//     edge or a declared target) hands off directly to that worker.
//  2. Otherwise the signal — the directive text when present, the message
//     content when not — is matched against current's conditional edges in
//     registration order (case-sensitive substring containment, first match
//     wins), then against the default edge.
//
// A false return signals NO_ROUTE: the conversation has nowhere to go. That is
// a reportable terminal outcome for the session loop, not a silent no-op.
func (r *Router) NextWorker(current string, last core.Message) (string, bool) {
	if last.Directive != "" && r.registry.Reachable(current, last.Directive) {
		return last.Directive, true
	}

	signal := last.Directive
	if signal == "" {
		signal = last.Content
	}

	return r.registry.Resolve(current, signal)
}
