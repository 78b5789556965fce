package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	// Zero disables the bound.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Optional. Any OpenAI-compatible endpoint.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with the tutor's defaults. Hints are
// short, so the small model of each provider is enough.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// envString copies the value of key into dst when it is set.
func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// ConfigFromEnv builds a Config from COACH_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	envString(&cfg.Provider, "COACH_LLM_PROVIDER")

	envString(&cfg.Anthropic.APIKey, "COACH_ANTHROPIC_API_KEY")
	envString(&cfg.Anthropic.Model, "COACH_ANTHROPIC_MODEL")

	envString(&cfg.OpenAI.APIKey, "COACH_OPENAI_API_KEY")
	envString(&cfg.OpenAI.Model, "COACH_OPENAI_MODEL")
	envString(&cfg.OpenAI.BaseURL, "COACH_OPENAI_BASE_URL")

	envString(&cfg.Gemini.APIKey, "COACH_GEMINI_API_KEY")
	envString(&cfg.Gemini.Model, "COACH_GEMINI_MODEL")

	envString(&cfg.OpenRouter.APIKey, "COACH_OPENROUTER_API_KEY")
	envString(&cfg.OpenRouter.Model, "COACH_OPENROUTER_MODEL")

	if t := os.Getenv("COACH_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		} else {
			fmt.Fprintf(os.Stderr, "warning: ignoring invalid COACH_LLM_TIMEOUT %q: %v\n", t, err)
		}
	}

	return cfg
}

// DiscoverConfig checks standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// ResolveConfig returns the COACH_* configuration when it validates and
// otherwise falls back to DiscoverConfig.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if discovered, ok := DiscoverConfig(); ok {
		return discovered, nil
	}
	return Config{}, err
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("COACH_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
