package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ESpeakProvider implements Provider interface for espeak-ng.
// espeak-ng writes WAV; MP3 output is converted with ffmpeg.
type ESpeakProvider struct {
	voice   string
	speed   int
	command string
}

// NewESpeakProvider creates a new espeak-ng provider
func NewESpeakProvider(config *Config) *ESpeakProvider {
	voice := config.ESpeakVoice
	if voice == "" {
		voice = config.Language
	}

	return &ESpeakProvider{
		voice:   voice,
		speed:   clampSpeed(config.ESpeakSpeed),
		command: "espeak-ng",
	}
}

func clampSpeed(speed int) int {
	switch {
	case speed == 0:
		return 150
	case speed < 80:
		return 80
	case speed > 450:
		return 450
	}
	return speed
}

// GenerateAudio generates audio using espeak-ng
func (p *ESpeakProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateText(text); err != nil {
		return err
	}
	if err := ensureDir(outputFile); err != nil {
		return err
	}

	if strings.ToLower(filepath.Ext(outputFile)) == ".wav" {
		return p.speak(ctx, text, outputFile)
	}

	wavFile := strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".tmp.wav"
	defer os.Remove(wavFile)

	if err := p.speak(ctx, text, wavFile); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", wavFile,
		"-codec:a", "libmp3lame",
		"-qscale:a", "2",
		"-y",
		outputFile,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

func (p *ESpeakProvider) speak(ctx context.Context, text, wavFile string) error {
	cmd := exec.CommandContext(ctx, p.command,
		"-v", p.voice,
		"-s", fmt.Sprintf("%d", p.speed),
		"-w", wavFile,
		text,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable() error {
	if _, err := exec.LookPath(p.command); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}
