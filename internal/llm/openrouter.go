package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// OpenRouter is OpenAI-compatible; model IDs such as
// "anthropic/claude-3-haiku" are passed through unchanged.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return newOpenAICompatible(ProviderOpenRouter, cfg.APIKey, baseURL, cfg.Model), nil
}
