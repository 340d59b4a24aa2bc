package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
)

type fakeSpeechClient struct {
	audio []byte
	err   error
	last  *texttospeechpb.SynthesizeSpeechRequest
}

func (f *fakeSpeechClient) SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &texttospeechpb.SynthesizeSpeechResponse{AudioContent: f.audio}, nil
}

func (f *fakeSpeechClient) Close() error { return nil }

func TestGoogleCloudProviderGenerateAudio(t *testing.T) {
	client := &fakeSpeechClient{audio: []byte("ID3cloud")}
	provider := &GoogleCloudProvider{client: client, config: DefaultProviderConfig("pt")}

	outputFile := filepath.Join(t.TempDir(), "PT_", "Eu gosto de gatos.__pt.mp3")
	if err := provider.GenerateAudio(context.Background(), "Eu gosto de gatos.", outputFile); err != nil {
		t.Fatalf("GenerateAudio() error = %v", err)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != "ID3cloud" {
		t.Errorf("output = %q", data)
	}

	req := client.last
	if got := req.GetInput().GetText(); got != "Eu gosto de gatos." {
		t.Errorf("input = %q", got)
	}
	if got := req.GetVoice().GetLanguageCode(); got != "pt-BR" {
		t.Errorf("language code = %q, want pt-BR", got)
	}
	if got := req.GetVoice().GetName(); got != "pt-BR-Chirp3-HD-Achernar" {
		t.Errorf("voice = %q", got)
	}
	if got := req.GetAudioConfig().GetSpeakingRate(); got != 0.95 {
		t.Errorf("speaking rate = %v, want 0.95", got)
	}
	if got := req.GetAudioConfig().GetAudioEncoding(); got != texttospeechpb.AudioEncoding_MP3 {
		t.Errorf("encoding = %v, want MP3", got)
	}
}

func TestGoogleCloudProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeSpeechClient
	}{
		{"api error", &fakeSpeechClient{err: errors.New("permission denied")}},
		{"empty audio", &fakeSpeechClient{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &GoogleCloudProvider{client: tt.client, config: DefaultProviderConfig("pt")}
			outputFile := filepath.Join(t.TempDir(), "casa_pt.mp3")

			if err := provider.GenerateAudio(context.Background(), "casa", outputFile); err == nil {
				t.Error("GenerateAudio() expected error")
			}
			if _, err := os.Stat(outputFile); err == nil {
				t.Error("no file should be written on error")
			}
		})
	}
}
