package explain

import "time"

// Config holds explanation generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one Explain call end to end.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for explanation generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.4,
		Timeout:     20 * time.Second,
	}
}
