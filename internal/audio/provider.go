package audio

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// GenerateAudio generates audio from text and saves it to the specified file
	GenerateAudio(ctx context.Context, text string, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds the configuration for the audio provider of one language
type Config struct {
	Provider string // "gtts", "gcloud", "openai" or "espeak"
	Fallback string // optional provider tried when Provider fails
	Language string // short language code: "en", "pt"

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIBaseURL     string
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "coral", "nova", "sage", ...
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts model

	// Google Cloud Text-to-Speech settings
	GoogleLanguageCode    string // BCP-47, e.g. "pt-BR"
	GoogleVoice           string // e.g. "pt-BR-Chirp3-HD-Achernar"
	GooglePitch           float64
	GoogleSpeakingRate    float64
	GoogleCredentialsFile string // empty uses application default credentials

	// gTTS settings
	GTTSSlow              bool
	GTTSTLD               string // Google host domain, e.g. "com.br" for a Brazilian accent
	GTTSRequestsPerMinute int

	// espeak-ng settings
	ESpeakVoice string
	ESpeakSpeed int
}

// DefaultProviderConfig returns the default configuration for a language
func DefaultProviderConfig(language string) *Config {
	config := &Config{
		Provider:              "gtts",
		Language:              language,
		OpenAIModel:           "gpt-4o-mini-tts",
		OpenAIVoice:           "nova",
		OpenAISpeed:           1.0,
		GoogleSpeakingRate:    1.0,
		GTTSRequestsPerMinute: 50,
		ESpeakSpeed:           150,
	}

	switch language {
	case "pt":
		config.OpenAIInstruction = "Speak Brazilian Portuguese with a natural accent, slowly and clearly for language learners."
		config.GoogleLanguageCode = "pt-BR"
		config.GoogleVoice = "pt-BR-Chirp3-HD-Achernar"
		config.GoogleSpeakingRate = 0.95
		config.ESpeakVoice = "pt-br"
	default:
		config.GoogleLanguageCode = "en-US"
		config.ESpeakVoice = "en-us"
	}

	return config
}

// NewProvider creates the configured provider, wrapped with its fallback if one is set
func NewProvider(ctx context.Context, config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig("en")
	}

	primary, err := newProvider(ctx, config.Provider, config)
	if err != nil {
		return nil, err
	}

	if config.Fallback == "" || config.Fallback == config.Provider {
		return primary, nil
	}

	fallback, err := newProvider(ctx, config.Fallback, config)
	if err != nil {
		log.Warn("fallback audio provider unavailable", "provider", config.Fallback, "error", err)
		return primary, nil
	}

	return NewProviderWithFallback(primary, fallback), nil
}

func newProvider(ctx context.Context, name string, config *Config) (Provider, error) {
	switch name {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)
	case "gcloud", "google":
		provider, err := NewGoogleCloudProvider(ctx, config)
		if err != nil {
			return nil, err
		}
		return provider, nil
	case "gtts", "":
		return NewGTTSProvider(config), nil
	case "espeak", "espeak-ng":
		return NewESpeakProvider(config), nil
	default:
		return nil, fmt.Errorf("unknown audio provider: %s", name)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// GenerateAudio tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	err := p.primary.GenerateAudio(ctx, text, outputFile)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return err
	}

	log.Warn("primary audio provider failed, falling back",
		"primary", p.primary.Name(), "fallback", p.fallback.Name(), "error", err)

	return p.fallback.GenerateAudio(ctx, text, outputFile)
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
