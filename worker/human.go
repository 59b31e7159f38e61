package worker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hupe1980/agentroute/core"
)

// Prompter obtains text input from a human. Blocking from the session's point
// of view; the single-threaded session model tolerates waiting here.
type Prompter interface {
	Prompt(ctx context.Context, question string) (string, error)
}

// ConsolePrompter reads human replies line by line from an io.Reader
// (stdin by default), printing the question to an io.Writer first.
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsolePrompter constructs a prompter over stdin/stdout.
func NewConsolePrompter() *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// NewConsolePrompterFrom constructs a prompter over the given reader/writer.
func NewConsolePrompterFrom(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(in), out: out}
}

// Prompt implements Prompter.
func (p *ConsolePrompter) Prompt(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintf(p.out, "%s\n> ", question); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// HumanWorkerOptions configures a HumanWorker.
type HumanWorkerOptions struct {
	// Question is shown to the human before reading a reply. When empty, the
	// content of the last message in the history is shown instead.
	Question string
	// Targets is the closed set of workers this worker may hand off to
	// (empty = unrestricted).
	Targets []string
}

// HumanWorker asks a human for the next message. It implements the repeated
// "ask a person, then route on the answer" pattern used by escalation and
// approval steps.
type HumanWorker struct {
	name     string
	prompter Prompter
	opts     HumanWorkerOptions
}

// NewHumanWorker constructs a worker that defers each turn to a human.
func NewHumanWorker(name string, prompter Prompter, optFns ...func(o *HumanWorkerOptions)) *HumanWorker {
	opts := HumanWorkerOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &HumanWorker{name: name, prompter: prompter, opts: opts}
}

// Name implements core.Worker.
func (w *HumanWorker) Name() string { return w.name }

// Targets implements core.Worker.
func (w *HumanWorker) Targets() []string { return w.opts.Targets }

// Handle implements core.Worker.
func (w *HumanWorker) Handle(ctx context.Context, history []core.Message) (core.Message, error) {
	question := w.opts.Question
	if question == "" && len(history) > 0 {
		question = history[len(history)-1].Content
	}

	answer, err := w.prompter.Prompt(ctx, question)
	if err != nil {
		return core.Message{}, err
	}

	return core.NewMessage(w.name, answer), nil
}
