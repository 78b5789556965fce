package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply of a MockProvider. Err, when set, is
// returned instead of Content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockJSON is a shorthand for a successful scripted reply.
func MockJSON(content string) MockResponse {
	return MockResponse{Content: json.RawMessage(content)}
}

// MockProvider replays scripted replies in order and records every
// request. It backs tests and the "mock" provider setting.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// Generate pops the next scripted reply. An exhausted script yields
// ErrProviderUnavailable.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.script) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.script[0]
	m.script = m.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	// Scripted content must pass the same schema checks as a live reply.
	return finish(req, &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	})
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastRequest returns the most recent request, or false if none was made.
func (m *MockProvider) LastRequest() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
