// Package agentroute provides a high-level façade over the routing core
// (worker registry, router & session loop) enabling rapid construction of
// condition-routed multi-worker conversations. Most applications interact
// with this package by:
//  1. Creating an AgentRoute via New() (optionally overriding the default
//     in-memory transcript store and NoOp logger)
//  2. Registering named workers and the routing edges between them
//  3. Setting the entry point, then running tasks (RunTask) or driving
//     sessions turn by turn (NewSession + Step)
//
// The façade delegates routing to router.Router and turn driving to
// session.Session while keeping setup and usage ergonomics concise. All
// defaults are safe for local development and testing; production deployments
// typically supply a durable transcript store and a structured logger.
package agentroute

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentroute/core"
	"github.com/hupe1980/agentroute/logging"
	"github.com/hupe1980/agentroute/registry"
	"github.com/hupe1980/agentroute/router"
	"github.com/hupe1980/agentroute/session"
)

// Options configures the AgentRoute instance.
type Options struct {
	// Transcripts stores finished session histories (defaults to an
	// in-memory implementation if not provided).
	Transcripts session.Store

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentRoute is the high-level façade aggregating the registry, router and
// transcript store. Assemble the routing graph first; the registry freezes as
// soon as the first session is constructed.
type AgentRoute struct {
	opts     Options
	registry *registry.Registry
	entry    string
}

// New creates a new AgentRoute instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *AgentRoute {
	opts := Options{
		Transcripts: session.NewInMemoryStore(),
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &AgentRoute{opts: opts, registry: registry.New()}
}

// RegisterWorker adds a worker to the underlying registry.
func (a *AgentRoute) RegisterWorker(w core.Worker) error { return a.registry.Register(w) }

// AddRoute adds a conditional edge: when the source worker's output contains
// the condition substring, control hands off to target.
func (a *AgentRoute) AddRoute(source, target, condition string) error {
	return a.registry.AddRoute(source, target, condition)
}

// AddDefaultRoute adds the unconditional fallback edge for source.
func (a *AgentRoute) AddDefaultRoute(source, target string) error {
	return a.registry.AddDefaultRoute(source, target)
}

// SetEntryPoint designates the worker every session starts at.
func (a *AgentRoute) SetEntryPoint(name string) error {
	if !a.registry.Has(name) {
		return &registry.UnknownWorkerError{Name: name}
	}
	a.entry = name
	return nil
}

// Registry exposes the underlying registry (read-only once sessions run).
func (a *AgentRoute) Registry() *registry.Registry { return a.registry }

// NewSession constructs a session for the given initial task. The first call
// freezes the registry for all subsequent sessions.
func (a *AgentRoute) NewSession(task string, optFns ...func(o *session.Options)) (*session.Session, error) {
	r, err := router.New(a.registry, router.WithEntryPoint(a.entry))
	if err != nil {
		return nil, err
	}

	fns := append([]func(o *session.Options){session.WithLogger(a.opts.Logger)}, optFns...)

	return session.New(r, task, fns...)
}

// RunTask runs a task to completion under the given session id and saves the
// transcript. It returns the full history and the termination reason.
func (a *AgentRoute) RunTask(
	ctx context.Context,
	sessionID string,
	task string,
	optFns ...func(o *session.Options),
) ([]core.Message, session.TerminationReason, error) {
	fns := append([]func(o *session.Options){session.WithID(sessionID)}, optFns...)

	sess, err := a.NewSession(task, fns...)
	if err != nil {
		return nil, session.ReasonNone, err
	}

	history, reason, err := sess.Run(ctx)
	if err != nil {
		return history, reason, err
	}

	t := session.Transcript{
		ID:       sess.ID(),
		History:  history,
		Reason:   reason,
		Turns:    sess.Turns(),
		Finished: time.Now().UTC(),
	}
	if err := a.opts.Transcripts.Save(t); err != nil {
		return history, reason, fmt.Errorf("failed to save transcript: %w", err)
	}

	return history, reason, nil
}

// Transcript returns the stored transcript for a finished session.
func (a *AgentRoute) Transcript(sessionID string) (session.Transcript, error) {
	return a.opts.Transcripts.Get(sessionID)
}
