package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/reciteking/internal/store"
)

// NewProvider builds the configured backend wrapped as
// caller → retry → logging → backend. A nil repo disables request logging.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewOfflineProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if repo != nil {
		p = WithLogging(p, cfg.Provider, repo)
	}
	return WithRetry(p, cfg.Retry), nil
}

// NewProviderFromEnv resolves configuration from the environment and
// builds a provider. It returns (nil, cfg, nil) when no credentials are
// configured, which callers treat as "explanations unavailable".
func NewProviderFromEnv(ctx context.Context, repo store.EventRepo) (Provider, Config, error) {
	cfg, ok := ResolveConfig()
	if !ok {
		return nil, cfg, nil
	}
	p, err := NewProvider(ctx, cfg, repo)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}
