package model

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentroute/core"
)

// Request captures the normalized completion input produced by a worker.
type Request struct {
	// Instructions is the system prompt prepended to the conversation.
	Instructions string `json:"instructions"`
	// History is the conversation so far, oldest first.
	History []core.Message `json:"history"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required by model backed workers to obtain a
// completed reply for the conversation so far.
type Model interface {
	// Complete produces one assistant reply for the request.
	Complete(ctx context.Context, req Request) (core.Message, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples. It
// replies with the canned completion registered for the last message's
// content, or an echo when none is registered.
type MockModel struct {
	info      Info
	responses map[string]string
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// Complete implements Model.
func (m *MockModel) Complete(ctx context.Context, req Request) (core.Message, error) {
	if err := ctx.Err(); err != nil {
		return core.Message{}, err
	}
	if len(req.History) == 0 {
		return core.Message{}, fmt.Errorf("no history provided")
	}
	last := req.History[len(req.History)-1]
	reply, ok := m.responses[last.Content]
	if !ok {
		reply = fmt.Sprintf("Mock response to: %s", last.Content)
	}
	return core.NewMessage(m.info.Name, reply), nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
