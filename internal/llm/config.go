package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config selects and configures the explanation backend.
type Config struct {
	// Provider is one of "gemini", "openai", "anthropic", "openrouter" or
	// "mock" (offline placeholder replies, no key needed).
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single explanation request, retries included.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string

	// ThinkingBudget caps the tokens the model may spend reasoning before
	// it answers. Zero disables thinking; negative leaves the model default.
	ThinkingBudget int
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model:          "gemini-flash",
			ThinkingBudget: 0,
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     4 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// ConfigFromEnv builds a Config from RECITEKING_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("RECITEKING_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if t := os.Getenv("RECITEKING_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if k := os.Getenv("RECITEKING_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("RECITEKING_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("RECITEKING_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("RECITEKING_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("RECITEKING_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("RECITEKING_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("RECITEKING_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}
	if b := os.Getenv("RECITEKING_GEMINI_THINKING_BUDGET"); b != "" {
		if n, err := strconv.Atoi(b); err == nil {
			cfg.Gemini.ThinkingBudget = n
		}
	}

	if k := os.Getenv("RECITEKING_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("RECITEKING_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	return cfg
}

// discoveryKeys are the vendors' own key variables, in priority order.
var discoveryKeys = []struct{ provider, env string }{
	{"gemini", "GEMINI_API_KEY"},
	{"openai", "OPENAI_API_KEY"},
	{"anthropic", "ANTHROPIC_API_KEY"},
	{"openrouter", "OPENROUTER_API_KEY"},
}

// DiscoverConfig looks for a vendor key variable (GEMINI_API_KEY,
// OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY) and layers it onto
// ConfigFromEnv, so timeouts and model overrides still apply. When
// RECITEKING_LLM_PROVIDER is set only that provider's key is considered;
// otherwise the first key found in the order above wins.
func DiscoverConfig() (Config, bool) {
	cfg := ConfigFromEnv()
	explicit := os.Getenv("RECITEKING_LLM_PROVIDER")

	for _, d := range discoveryKeys {
		if explicit != "" && explicit != d.provider {
			continue
		}
		k := os.Getenv(d.env)
		if k == "" {
			continue
		}
		cfg.Provider = d.provider
		cfg.setKey(d.provider, k)
		return cfg, true
	}
	return Config{}, false
}

func (c *Config) setKey(provider, key string) {
	switch provider {
	case "gemini":
		c.Gemini.APIKey = key
	case "openai":
		c.OpenAI.APIKey = key
	case "anthropic":
		c.Anthropic.APIKey = key
	case "openrouter":
		c.OpenRouter.APIKey = key
	}
}

// ResolveConfig prefers the RECITEKING_* configuration and falls back to
// key discovery. ok is false when no usable credentials exist.
func ResolveConfig() (cfg Config, ok bool) {
	cfg = ConfigFromEnv()
	if cfg.Validate() == nil {
		return cfg, true
	}
	if found, ok := DiscoverConfig(); ok {
		return found, true
	}
	return cfg, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("RECITEKING_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("RECITEKING_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("RECITEKING_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("RECITEKING_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
