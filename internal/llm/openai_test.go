package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	client := openai.NewClientWithConfig(config)

	return &OpenAIProvider{
		client: client,
		model:  "gpt-4o-mini",
		name:   ProviderOpenAI,
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": `{"hint":"Welche Bedingung gilt für eine Nullstelle?","encouragement":"Weiter so!"}`,
					},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]any{
				"prompt_tokens":     40,
				"completion_tokens": 25,
				"total_tokens":      65,
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "Du bist ein sokratischer Mathematik-Tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "Gib einen Hinweis."}},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 {
		t.Fatalf("expected 40 input tokens, got %d", resp.Usage.InputTokens)
	}
	if resp.Usage.OutputTokens != 25 {
		t.Fatalf("expected 25 output tokens, got %d", resp.Usage.OutputTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
}

func openaiErrorHandler(status int, errType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": errType, "message": errType},
		})
	}
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, func(err error) bool {
			var rl *ErrRateLimit
			return errors.As(err, &rl)
		}},
		{"server error", http.StatusInternalServerError, func(err error) bool {
			var unavail *ErrProviderUnavailable
			return errors.As(err, &unavail)
		}},
		{"unauthorized", http.StatusUnauthorized, func(err error) bool {
			var auth *ErrAuthentication
			return errors.As(err, &auth) && auth.Provider == ProviderOpenAI
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, openaiErrorHandler(tt.status, tt.name))
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 100,
			})
			if err == nil || !tt.check(err) {
				t.Fatalf("unexpected error: %T (%v)", err, err)
			}
		})
	}
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": `{"encouragement":"ok"}`}, "finish_reason": "stop"}},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
		Schema: &Schema{
			Name: "openai-test-hint",
			Definition: map[string]any{
				"type":       "object",
				"properties": map[string]any{"hint": map[string]any{"type": "string"}},
				"required":   []any{"hint"},
			},
		},
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error for empty API key")
	}

	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: "https://example.invalid/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("expected 'gpt-4o', got %q", p.ModelID())
	}
}
