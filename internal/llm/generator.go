package llm

import (
	"context"
	"fmt"
	"time"
)

// TextGenerator sends a single prompt to a language model and returns the raw reply
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the backend name
	Name() string
}

// Config holds the settings for building a TextGenerator
type Config struct {
	Backend     string // "openai" or "gemini"
	Model       string
	MaxTokens   int
	Temperature float32

	OpenAIKey     string
	OpenAIBaseURL string // optional, for proxies and tests
	GeminiKey     string

	Breaker BreakerSettings
}

// DefaultConfig returns the defaults used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		Backend:     "openai",
		Model:       "gpt-4o",
		MaxTokens:   4096,
		Temperature: 0.9,
		Breaker:     DefaultBreakerSettings(),
	}
}

// NewGenerator creates the configured backend wrapped in a circuit breaker
func NewGenerator(ctx context.Context, config *Config) (TextGenerator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		gen TextGenerator
		err error
	)

	switch config.Backend {
	case "openai", "":
		gen, err = NewOpenAIGenerator(config)
	case "gemini":
		gen, err = NewGeminiGenerator(ctx, config)
	default:
		return nil, fmt.Errorf("unknown text generation backend: %s", config.Backend)
	}
	if err != nil {
		return nil, err
	}

	return NewBreakerGenerator(gen, config.Breaker), nil
}

// BreakerSettings configures the circuit breaker around a backend
type BreakerSettings struct {
	// ConsecutiveFailures opens the breaker after this many failed requests in a row
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before letting a probe through
	OpenTimeout time.Duration
}

// DefaultBreakerSettings trips after five straight failures and probes again after a minute
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		ConsecutiveFailures: 5,
		OpenTimeout:         time.Minute,
	}
}
