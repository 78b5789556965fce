package llm

import (
	"context"
	"fmt"

	"github.com/claritycoach/coach/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with timeout,
// retry and logging middleware. eventRepo may be nil to skip logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → retry → logging → base
	p := base
	if eventRepo != nil {
		p = WithLogging(p, cfg.Provider, eventRepo)
	}
	p = WithRetry(p, cfg.Retry)
	return WithTimeout(p, cfg.Timeout), nil
}
