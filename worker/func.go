package worker

import (
	"context"

	"github.com/hupe1980/agentroute/core"
)

// FuncWorkerOptions configures a FuncWorker.
type FuncWorkerOptions struct {
	// Targets is the closed set of workers this worker may hand off to
	// (empty = unrestricted).
	Targets []string
}

// FuncWorker wraps a plain handler function. It is the building block for
// deterministic rule-based capabilities and for test doubles.
type FuncWorker struct {
	name    string
	targets []string
	handler core.Handler
}

// NewFuncWorker constructs a worker around a handler function.
func NewFuncWorker(name string, handler core.Handler, optFns ...func(o *FuncWorkerOptions)) *FuncWorker {
	opts := FuncWorkerOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &FuncWorker{name: name, targets: opts.Targets, handler: handler}
}

// Name implements core.Worker.
func (w *FuncWorker) Name() string { return w.name }

// Targets implements core.Worker.
func (w *FuncWorker) Targets() []string { return w.targets }

// Handle implements core.Worker. The returned message's source is forced to
// the worker's name so routing always sees a consistent author.
func (w *FuncWorker) Handle(ctx context.Context, history []core.Message) (core.Message, error) {
	msg, err := w.handler(ctx, history)
	if err != nil {
		return core.Message{}, err
	}
	msg.Source = w.name
	return msg, nil
}
