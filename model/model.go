// Package model defines the provider-agnostic abstraction for language
// models inside CarMesh. Models are an enrichment layer only: agents compute
// their payloads from local data and use the model to phrase the summary, so
// every provider error is survivable.
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so agents remain decoupled from vendor SDKs.
package model

import (
	"context"
	"fmt"
	"sync"
)

// Request captures the normalized model input produced by agents.
type Request struct {
	System string `json:"system,omitempty"` // role framing for the provider
	Prompt string `json:"prompt"`           // the user-facing instruction
}

// Response is the completed model output.
type Response struct {
	Text string `json:"text"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface agents use to generate narrative text.
type Model interface {
	Complete(ctx context.Context, req Request) (Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests. It is safe
// for concurrent use so one instance can back agents running in parallel.
type MockModel struct {
	info Info

	mu        sync.Mutex
	responses map[string]string
	err       error
	calls     []Request
}

// NewMockModel constructs a MockModel identified by name and provider.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// Fail makes every subsequent Complete call return err.
func (m *MockModel) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns a copy of the requests seen so far.
func (m *MockModel) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]Request, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Complete implements Model.
func (m *MockModel) Complete(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if m.err != nil {
		return Response{}, m.err
	}
	if text, ok := m.responses[req.Prompt]; ok {
		return Response{Text: text}, nil
	}
	return Response{Text: fmt.Sprintf("Mock response to: %s", req.Prompt)}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
