package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/agentroute/core"
	"github.com/hupe1980/agentroute/logging"
	"github.com/hupe1980/agentroute/router"
)

// ErrSessionTerminated is returned by Run and Step once the session has
// reached a terminal state. Terminated sessions accept no further
// invocations; inspect History and Reason instead.
var ErrSessionTerminated = errors.New("session is terminated")

// TerminationReason describes why a session reached its terminal state.
type TerminationReason int

const (
	// ReasonNone is the zero value of a session that is still running.
	ReasonNone TerminationReason = iota
	// ReasonExplicitPhrase: a message contained the configured terminal phrase.
	ReasonExplicitPhrase
	// ReasonNoRoute: the last worker's output matched no routing rule and no
	// default edge exists. A normal, inspectable end state, not an error.
	ReasonNoRoute
	// ReasonTurnLimit: the configured turn cap was reached.
	ReasonTurnLimit
	// ReasonExternalCancel: the session was cancelled externally or a worker
	// handler failed. The distinguishing detail is carried in the final
	// system message's content.
	ReasonExternalCancel
)

// String returns the string representation of the termination reason.
func (r TerminationReason) String() string {
	switch r {
	case ReasonNone:
		return "NONE"
	case ReasonExplicitPhrase:
		return "EXPLICIT_PHRASE"
	case ReasonNoRoute:
		return "NO_ROUTE"
	case ReasonTurnLimit:
		return "TURN_LIMIT"
	case ReasonExternalCancel:
		return "EXTERNAL_CANCEL"
	default:
		return "UNKNOWN"
	}
}

// Options configures a Session.
type Options struct {
	// ID identifies the session; generated when empty.
	ID string
	// MaxTurns caps the number of worker turns. 0 means uncapped; routing
	// cycles then only end via the terminal phrase or a dead-end.
	MaxTurns int
	// TerminalPhrase ends the session when it appears as an exact substring
	// of any worker message. Empty disables phrase termination.
	TerminalPhrase string
	// Logger receives structured session events (defaults to NoOp).
	Logger logging.Logger
}

// WithID sets the session identifier.
func WithID(id string) func(o *Options) {
	return func(o *Options) { o.ID = id }
}

// WithMaxTurns caps the number of worker turns.
func WithMaxTurns(n int) func(o *Options) {
	return func(o *Options) { o.MaxTurns = n }
}

// WithTerminalPhrase sets the literal substring whose presence in any worker
// message ends the session.
func WithTerminalPhrase(phrase string) func(o *Options) {
	return func(o *Options) { o.TerminalPhrase = phrase }
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// Session drives turns until a termination condition fires. A Session is
// created per conversation and discarded at the end; its state is owned
// exclusively by one caller and never shared across concurrent sessions.
// Accessors are safe for concurrent use with a running Run/Step.
type Session struct {
	id     string
	router *router.Router
	opts   Options

	mu         sync.RWMutex
	history    []core.Message
	current    string
	turns      int
	terminated bool
	reason     TerminationReason
}

// New constructs a session, seeds the history with the initial task and
// positions the loop at the router's entry point. Constructing a session
// freezes the underlying registry; routing rules can no longer change while
// conversations run against them.
func New(r *router.Router, task string, optFns ...func(o *Options)) (*Session, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ID == "" {
		opts.ID = core.NewID()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	entry, err := r.EntryPoint()
	if err != nil {
		return nil, err
	}

	r.Registry().Freeze()

	return &Session{
		id:      opts.ID,
		router:  r,
		opts:    opts,
		history: []core.Message{core.NewUserMessage(task)},
		current: entry,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// History returns a defensive copy of the message history so far.
func (s *Session) History() []core.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := make([]core.Message, len(s.history))
	copy(history, s.history)
	return history
}

// Terminated reports whether the session has reached a terminal state.
func (s *Session) Terminated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.terminated
}

// Reason returns the termination reason (ReasonNone while running).
func (s *Session) Reason() TerminationReason {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reason
}

// CurrentWorker returns the name of the worker whose turn is next.
func (s *Session) CurrentWorker() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Turns returns the number of completed worker turns.
func (s *Session) Turns() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turns
}

// Run drives the session to completion and returns the full history together
// with the termination reason. It fails with ErrSessionTerminated when called
// on an already terminated session.
func (s *Session) Run(ctx context.Context) ([]core.Message, TerminationReason, error) {
	if s.Terminated() {
		return s.History(), s.Reason(), ErrSessionTerminated
	}
	for !s.Terminated() {
		if err := s.Step(ctx); err != nil {
			return s.History(), s.Reason(), err
		}
	}
	return s.History(), s.Reason(), nil
}

// Step advances the session by exactly one turn: invoke the current worker,
// append its message, then check termination conditions in priority order
// (terminal phrase, turn cap, routing). Useful for interactive variants that
// advance one turn per external event. It fails with ErrSessionTerminated
// once the session has ended; routing dead-ends and worker failures are
// terminal outcomes recorded in the history, not errors.
func (s *Session) Step(ctx context.Context) error {
	if s.Terminated() {
		return ErrSessionTerminated
	}

	current := s.CurrentWorker()
	worker, ok := s.router.Registry().Worker(current)
	if !ok {
		// Unreachable with a validated registry; treat like a worker failure.
		s.recordFailure(fmt.Sprintf("worker %q not found in registry", current))
		return nil
	}

	start := time.Now()
	msg, err := worker.Handle(ctx, s.History())
	s.logTurn(current, time.Since(start), err)

	// Cancellation wins over whatever the handler produced: the partial
	// message is discarded, never appended.
	if ctxErr := ctx.Err(); ctxErr != nil {
		s.recordFailure(fmt.Sprintf("session cancelled during turn of %q: %s", current, ctxErr))
		return nil
	}
	if err != nil {
		s.recordFailure(fmt.Sprintf("worker %q failed: %s", current, err))
		return nil
	}

	if msg.Source == "" {
		msg.Source = worker.Name()
	}

	s.mu.Lock()
	s.history = append(s.history, msg)
	s.turns++
	turns := s.turns
	s.mu.Unlock()

	if s.opts.TerminalPhrase != "" && strings.Contains(msg.Content, s.opts.TerminalPhrase) {
		s.terminate(ReasonExplicitPhrase)
		return nil
	}
	if s.opts.MaxTurns > 0 && turns >= s.opts.MaxTurns {
		s.terminate(ReasonTurnLimit)
		return nil
	}

	next, routed := s.router.NextWorker(current, msg)
	if !routed {
		s.terminate(ReasonNoRoute)
		return nil
	}

	s.logHandoff(current, next, msg.Directive != "")
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	return nil
}

// recordFailure appends a system message describing a worker failure or
// cancellation and terminates the session.
func (s *Session) recordFailure(detail string) {
	s.mu.Lock()
	s.history = append(s.history, core.NewSystemMessage(detail))
	s.mu.Unlock()
	s.terminate(ReasonExternalCancel)
}

func (s *Session) terminate(reason TerminationReason) {
	s.mu.Lock()
	s.terminated = true
	s.reason = reason
	turns, historyLen := s.turns, len(s.history)
	s.mu.Unlock()

	if rl, ok := s.opts.Logger.(*logging.RouteLogger); ok {
		rl.WithSession(s.id).LogSessionEnd(reason.String(), turns, historyLen)
		return
	}
	s.opts.Logger.Info("session terminated", "session_id", s.id, "reason", reason.String(), "turns", turns, "history_len", historyLen)
}

func (s *Session) logHandoff(from, to string, directive bool) {
	if rl, ok := s.opts.Logger.(*logging.RouteLogger); ok {
		rl.WithSession(s.id).LogHandoff(from, to, directive)
		return
	}
	s.opts.Logger.Debug("session handoff", "session_id", s.id, "from", from, "to", to, "directive", directive)
}

func (s *Session) logTurn(worker string, dur time.Duration, err error) {
	if rl, ok := s.opts.Logger.(*logging.RouteLogger); ok {
		rl.WithSession(s.id).LogWorkerTurn(worker, s.Turns()+1, dur, err)
		return
	}
	if err != nil {
		s.opts.Logger.Error("worker turn failed", "session_id", s.id, "worker", worker, "duration_ms", dur.Milliseconds(), "error", err.Error())
		return
	}
	s.opts.Logger.Debug("worker turn completed", "session_id", s.id, "worker", worker, "duration_ms", dur.Milliseconds())
}
