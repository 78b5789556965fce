package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured replies from a language model.
type Provider interface {
	// Generate sends req and returns the reply. When req.Schema is set the
	// reply Content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider sends requests to.
	ModelID() string
}

// Request is one generation call. Tutor prompts are single-turn: a system
// prompt plus one user message.
type Request struct {
	System   string
	Messages []Message

	// Schema switches the provider to its native structured output mode.
	// Without it Content is the raw reply text.
	Schema *Schema

	// MaxTokens caps the reply; 0 means DefaultMaxTokens.
	MaxTokens int

	// Temperature in [0, 1]. 0 leaves the provider default.
	Temperature float64
}

// Prompt builds a single-turn request.
func Prompt(system, user string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: user}},
	}
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured replies.
type Schema struct {
	// Name is kebab-case, e.g. "progressive-hint". It doubles as the
	// OpenAI schema name and the validation cache key.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a model reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model actually used, which may differ from the configured alias.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
