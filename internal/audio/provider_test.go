package audio

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockProvider implements Provider interface for testing
type mockProvider struct {
	name          string
	generateErr   error
	availableErr  error
	generateCalls int
}

func (m *mockProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	m.generateCalls++
	return m.generateErr
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) IsAvailable() error {
	return m.availableErr
}

func TestDefaultProviderConfig(t *testing.T) {
	tests := []struct {
		language     string
		languageCode string
		voice        string
		rate         float64
		espeakVoice  string
	}{
		{"pt", "pt-BR", "pt-BR-Chirp3-HD-Achernar", 0.95, "pt-br"},
		{"en", "en-US", "", 1.0, "en-us"},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			config := DefaultProviderConfig(tt.language)

			if config.Provider != "gtts" {
				t.Errorf("Expected provider 'gtts', got '%s'", config.Provider)
			}
			if config.Language != tt.language {
				t.Errorf("Expected language '%s', got '%s'", tt.language, config.Language)
			}
			if config.GoogleLanguageCode != tt.languageCode {
				t.Errorf("Expected language code '%s', got '%s'", tt.languageCode, config.GoogleLanguageCode)
			}
			if config.GoogleVoice != tt.voice {
				t.Errorf("Expected voice '%s', got '%s'", tt.voice, config.GoogleVoice)
			}
			if config.GoogleSpeakingRate != tt.rate {
				t.Errorf("Expected speaking rate %f, got %f", tt.rate, config.GoogleSpeakingRate)
			}
			if config.GooglePitch != 0 {
				t.Errorf("Expected pitch 0, got %f", config.GooglePitch)
			}
			if config.ESpeakVoice != tt.espeakVoice {
				t.Errorf("Expected espeak voice '%s', got '%s'", tt.espeakVoice, config.ESpeakVoice)
			}
		})
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		wantErr  bool
		errMsg   string
		wantName string
	}{
		{
			name:     "nil config uses gtts",
			config:   nil,
			wantName: "gtts",
		},
		{
			name:    "openai provider without key",
			config:  &Config{Provider: "openai"},
			wantErr: true,
			errMsg:  "OpenAI API key is required",
		},
		{
			name:    "unknown provider",
			config:  &Config{Provider: "unknown"},
			wantErr: true,
			errMsg:  "unknown audio provider: unknown",
		},
		{
			name:     "espeak provider",
			config:   &Config{Provider: "espeak", Language: "pt"},
			wantName: "espeak-ng",
		},
		{
			name:     "gtts with espeak fallback",
			config:   &Config{Provider: "gtts", Fallback: "espeak", Language: "pt"},
			wantName: "gtts (fallback: espeak-ng)",
		},
		{
			name:     "unusable fallback is dropped",
			config:   &Config{Provider: "gtts", Fallback: "openai", Language: "pt"},
			wantName: "gtts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(context.Background(), tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("NewProvider() error = %v, want %v", err, tt.errMsg)
				}
				return
			}
			if provider.Name() != tt.wantName {
				t.Errorf("Name() = %v, want %v", provider.Name(), tt.wantName)
			}
		})
	}
}

func TestProviderWithFallback(t *testing.T) {
	tests := []struct {
		name          string
		primaryErr    error
		fallbackErr   error
		wantErr       bool
		primaryCalls  int
		fallbackCalls int
	}{
		{
			name:          "primary succeeds",
			primaryCalls:  1,
			fallbackCalls: 0,
		},
		{
			name:          "primary fails, fallback succeeds",
			primaryErr:    errors.New("primary failed"),
			primaryCalls:  1,
			fallbackCalls: 1,
		},
		{
			name:          "both fail",
			primaryErr:    errors.New("primary failed"),
			fallbackErr:   errors.New("fallback failed"),
			wantErr:       true,
			primaryCalls:  1,
			fallbackCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &mockProvider{name: "primary", generateErr: tt.primaryErr}
			fallback := &mockProvider{name: "fallback", generateErr: tt.fallbackErr}
			provider := NewProviderWithFallback(primary, fallback)

			err := provider.GenerateAudio(context.Background(), "casa", "casa_pt.mp3")
			if (err != nil) != tt.wantErr {
				t.Errorf("GenerateAudio() error = %v, wantErr %v", err, tt.wantErr)
			}
			if primary.generateCalls != tt.primaryCalls {
				t.Errorf("primary calls = %d, want %d", primary.generateCalls, tt.primaryCalls)
			}
			if fallback.generateCalls != tt.fallbackCalls {
				t.Errorf("fallback calls = %d, want %d", fallback.generateCalls, tt.fallbackCalls)
			}
		})
	}
}

func TestProviderWithFallbackCancelled(t *testing.T) {
	primary := &mockProvider{name: "primary", generateErr: context.Canceled}
	fallback := &mockProvider{name: "fallback"}
	provider := NewProviderWithFallback(primary, fallback)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := provider.GenerateAudio(ctx, "casa", "casa_pt.mp3"); err == nil {
		t.Error("Expected error for cancelled context")
	}
	if fallback.generateCalls != 0 {
		t.Errorf("fallback should not run after cancellation, got %d calls", fallback.generateCalls)
	}
}

func TestProviderWithFallbackIsAvailable(t *testing.T) {
	tests := []struct {
		name         string
		primaryErr   error
		fallbackErr  error
		wantErr      bool
	}{
		{name: "primary available"},
		{name: "only fallback available", primaryErr: errors.New("down")},
		{name: "none available", primaryErr: errors.New("down"), fallbackErr: errors.New("down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewProviderWithFallback(
				&mockProvider{name: "primary", availableErr: tt.primaryErr},
				&mockProvider{name: "fallback", availableErr: tt.fallbackErr},
			)
			err := provider.IsAvailable()
			if (err != nil) != tt.wantErr {
				t.Errorf("IsAvailable() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
