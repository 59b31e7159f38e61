package worker

import (
	"context"

	"github.com/hupe1980/agentroute/core"
	"github.com/hupe1980/agentroute/model"
)

// ModelWorkerOptions configures a ModelWorker.
type ModelWorkerOptions struct {
	// Instruction is the system prompt sent with every completion. For
	// condition-routed workers it should name the exact phrases the routing
	// rules match on, mirroring how reviewer-style prompts are written.
	Instruction string
	// Targets is the closed set of workers this worker may hand off to
	// (empty = unrestricted).
	Targets []string
	// ExtractDirective optionally derives a routing directive from the
	// completed message (for example by parsing a structured tag out of the
	// reply). Left nil, routing falls back to substring matching on content.
	ExtractDirective func(core.Message) string
}

// ModelWorker delegates each turn to a completion provider. The conversation
// history is forwarded verbatim; the provider's reply becomes the worker's
// message.
type ModelWorker struct {
	name  string
	model model.Model
	opts  ModelWorkerOptions
}

// NewModelWorker constructs a worker backed by a completion provider.
func NewModelWorker(name string, m model.Model, optFns ...func(o *ModelWorkerOptions)) *ModelWorker {
	opts := ModelWorkerOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &ModelWorker{name: name, model: m, opts: opts}
}

// Name implements core.Worker.
func (w *ModelWorker) Name() string { return w.name }

// Targets implements core.Worker.
func (w *ModelWorker) Targets() []string { return w.opts.Targets }

// Handle implements core.Worker.
func (w *ModelWorker) Handle(ctx context.Context, history []core.Message) (core.Message, error) {
	reply, err := w.model.Complete(ctx, model.Request{
		Instructions: w.opts.Instruction,
		History:      history,
	})
	if err != nil {
		return core.Message{}, err
	}

	reply.Source = w.name
	if w.opts.ExtractDirective != nil && reply.Directive == "" {
		reply.Directive = w.opts.ExtractDirective(reply)
	}

	return reply, nil
}
