package audio

import (
	"context"
	"fmt"
	"os"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// speechClient is the subset of the Cloud Text-to-Speech client in use
type speechClient interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// GoogleCloudProvider implements Provider interface for Google Cloud Text-to-Speech
type GoogleCloudProvider struct {
	client speechClient
	config *Config
}

// NewGoogleCloudProvider creates a Cloud Text-to-Speech provider.
// Credentials come from GoogleCredentialsFile or the application default.
func NewGoogleCloudProvider(ctx context.Context, config *Config) (*GoogleCloudProvider, error) {
	var opts []option.ClientOption
	if config.GoogleCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.GoogleCredentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Cloud TTS client: %w", err)
	}

	return &GoogleCloudProvider{client: client, config: config}, nil
}

func (p *GoogleCloudProvider) request(text string) *texttospeechpb.SynthesizeSpeechRequest {
	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: p.config.GoogleLanguageCode,
			Name:         p.config.GoogleVoice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			Pitch:         p.config.GooglePitch,
			SpeakingRate:  p.config.GoogleSpeakingRate,
		},
	}
}

// GenerateAudio synthesizes text and writes the MP3 response
func (p *GoogleCloudProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	resp, err := p.client.SynthesizeSpeech(ctx, p.request(text))
	if err != nil {
		return fmt.Errorf("Google Cloud TTS API error: %w", err)
	}
	if len(resp.AudioContent) == 0 {
		return fmt.Errorf("no audio data received from Google Cloud TTS")
	}

	if err := ensureDir(outputFile); err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, resp.AudioContent, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// Name returns the provider name
func (p *GoogleCloudProvider) Name() string {
	return "gcloud"
}

// IsAvailable checks that a client was created
func (p *GoogleCloudProvider) IsAvailable() error {
	if p.client == nil {
		return fmt.Errorf("Google Cloud TTS client not initialized")
	}
	return nil
}

// Close releases the underlying gRPC connection
func (p *GoogleCloudProvider) Close() error {
	return p.client.Close()
}
