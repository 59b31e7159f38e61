package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentroute/core"
	"github.com/hupe1980/agentroute/registry"
	"github.com/hupe1980/agentroute/router"
	"github.com/hupe1980/agentroute/worker"
)

func echoWorker(name, reply string) core.Worker {
	return worker.NewFuncWorker(name, func(ctx context.Context, history []core.Message) (core.Message, error) {
		return core.NewMessage(name, reply), nil
	})
}

func newRouter(t *testing.T, reg *registry.Registry, entry string) *router.Router {
	t.Helper()
	r, err := router.New(reg, router.WithEntryPoint(entry))
	require.NoError(t, err)
	return r
}

func TestSession_Run_TriageDefaultRoute(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(echoWorker("triage", "forwarding you to our sales team")))
	require.NoError(t, reg.Register(echoWorker("sales", "happy to help with your purchase")))
	require.NoError(t, reg.AddDefaultRoute("triage", "sales"))

	sess, err := New(newRouter(t, reg, "triage"), "I want to buy", WithMaxTurns(5))
	require.NoError(t, err)

	history, reason, err := sess.Run(context.Background())
	require.NoError(t, err)

	// Seeded task + triage turn + sales turn; sales has no outgoing edges.
	assert.Equal(t, ReasonNoRoute, reason)
	require.Len(t, history, 3)
	assert.Equal(t, core.SourceUser, history[0].Source)
	assert.Equal(t, "I want to buy", history[0].Content)
	assert.Equal(t, "triage", history[1].Source)
	assert.Equal(t, "sales", history[2].Source)
}

func TestSession_Run_TurnLimitOnCycle(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(echoWorker("a", "over to b")))
	require.NoError(t, reg.Register(echoWorker("b", "over to a")))
	require.NoError(t, reg.AddDefaultRoute("a", "b"))
	require.NoError(t, reg.AddDefaultRoute("b", "a"))

	sess, err := New(newRouter(t, reg, "a"), "ping", WithMaxTurns(3))
	require.NoError(t, err)

	history, reason, err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ReasonTurnLimit, reason)
	assert.Len(t, history, 4) // seed + 3 worker turns
	assert.Equal(t, 3, sess.Turns())
}

func TestSession_Run_SelfLoopBoundedByTurnCap(t *testing.T) {
	reg := registry.New()
	// A self-loop default (reviewer keeps asking for more feedback) is legal
	// but must be bounded by the turn cap.
	require.NoError(t, reg.Register(echoWorker("reviewer", "still thinking")))
	require.NoError(t, reg.AddDefaultRoute("reviewer", "reviewer"))

	sess, err := New(newRouter(t, reg, "reviewer"), "review", WithMaxTurns(3))
	require.NoError(t, err)

	history, reason, err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ReasonTurnLimit, reason)
	assert.Len(t, history, 4)
}

func TestSession_Run_TerminalPhrasePrecedence(t *testing.T) {
	reg := registry.New()
	// The reply contains both the terminal phrase and a valid routing
	// condition; termination must win.
	require.NoError(t, reg.Register(echoWorker("reviewer", "approved - TASK_COMPLETE")))
	require.NoError(t, reg.Register(echoWorker("publisher", "published")))
	require.NoError(t, reg.AddRoute("reviewer", "publisher", "approved"))

	sess, err := New(newRouter(t, reg, "reviewer"), "review this",
		WithTerminalPhrase("TASK_COMPLETE"), WithMaxTurns(10))
	require.NoError(t, err)

	history, reason, err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ReasonExplicitPhrase, reason)
	require.Len(t, history, 2)
	assert.Equal(t, "reviewer", history[1].Source)
}

func TestSession_Run_NoRouteStopsHistoryGrowth(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(echoWorker("loner", "nobody to talk to")))

	sess, err := New(newRouter(t, reg, "loner"), "hello")
	require.NoError(t, err)

	history, reason, err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ReasonNoRoute, reason)
	assert.Len(t, history, 2)
	assert.Len(t, sess.History(), 2)
}

func TestSession_Run_WorkerErrorRecordsSystemMessage(t *testing.T) {
	reg := registry.New()
	failing := worker.NewFuncWorker("flaky", func(ctx context.Context, history []core.Message) (core.Message, error) {
		return core.Message{}, errors.New("completion timeout")
	})
	require.NoError(t, reg.Register(failing))

	sess, err := New(newRouter(t, reg, "flaky"), "do something")
	require.NoError(t, err)

	history, reason, err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ReasonExternalCancel, reason)
	require.Len(t, history, 2)
	last := history[len(history)-1]
	assert.Equal(t, core.SourceSystem, last.Source)
	assert.Contains(t, last.Content, "flaky")
	assert.Contains(t, last.Content, "completion timeout")
}

func TestSession_Run_CancellationDiscardsMessage(t *testing.T) {
	reg := registry.New()
	cancellable := worker.NewFuncWorker("slow", func(ctx context.Context, history []core.Message) (core.Message, error) {
		// Produces output despite cancellation; the session must discard it.
		return core.NewMessage("slow", "partial result"), nil
	})
	require.NoError(t, reg.Register(cancellable))

	sess, err := New(newRouter(t, reg, "slow"), "work")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	history, reason, err := sess.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, ReasonExternalCancel, reason)
	require.Len(t, history, 2)
	last := history[len(history)-1]
	assert.Equal(t, core.SourceSystem, last.Source)
	assert.Contains(t, last.Content, "cancelled")
	for _, msg := range history {
		assert.NotEqual(t, "partial result", msg.Content)
	}
}

func TestSession_Step_AfterTermination(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(echoWorker("loner", "done")))

	sess, err := New(newRouter(t, reg, "loner"), "hello")
	require.NoError(t, err)

	require.NoError(t, sess.Step(context.Background()))
	require.True(t, sess.Terminated())

	assert.ErrorIs(t, sess.Step(context.Background()), ErrSessionTerminated)

	_, reason, err := sess.Run(context.Background())
	assert.ErrorIs(t, err, ErrSessionTerminated)
	assert.Equal(t, ReasonNoRoute, reason)
}

func TestSession_Step_Interactive(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(echoWorker("a", "to b")))
	require.NoError(t, reg.Register(echoWorker("b", "to a")))
	require.NoError(t, reg.AddDefaultRoute("a", "b"))
	require.NoError(t, reg.AddDefaultRoute("b", "a"))

	sess, err := New(newRouter(t, reg, "a"), "ping", WithMaxTurns(4))
	require.NoError(t, err)

	assert.Equal(t, "a", sess.CurrentWorker())
	require.NoError(t, sess.Step(context.Background()))
	assert.Equal(t, "b", sess.CurrentWorker())
	assert.Equal(t, 1, sess.Turns())
	assert.False(t, sess.Terminated())

	require.NoError(t, sess.Step(context.Background()))
	assert.Equal(t, "a", sess.CurrentWorker())
	assert.Equal(t, 2, sess.Turns())
}

func TestSession_New_FreezesRegistry(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(echoWorker("loner", "done")))

	_, err := New(newRouter(t, reg, "loner"), "hello")
	require.NoError(t, err)

	assert.True(t, reg.Frozen())
	assert.ErrorIs(t, reg.Register(echoWorker("late", "x")), registry.ErrRegistryFrozen)
}

func TestSession_New_NoEntryPoint(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(echoWorker("loner", "done")))

	r, err := router.New(reg)
	require.NoError(t, err)

	_, err = New(r, "hello")
	assert.ErrorIs(t, err, router.ErrNoEntryPoint)
}

func TestTerminationReason_String(t *testing.T) {
	assert.Equal(t, "EXPLICIT_PHRASE", ReasonExplicitPhrase.String())
	assert.Equal(t, "NO_ROUTE", ReasonNoRoute.String())
	assert.Equal(t, "TURN_LIMIT", ReasonTurnLimit.String())
	assert.Equal(t, "EXTERNAL_CANCEL", ReasonExternalCancel.String())
	assert.Equal(t, "NONE", ReasonNone.String())
}
