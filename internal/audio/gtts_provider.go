package audio

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"golang.org/x/time/rate"
)

const gttsTimeout = 30 * time.Second

// GTTSProvider implements Provider interface by running gtts-cli,
// the command line client of Google Translate's speech endpoint.
// Requests are paced because the endpoint throttles bursts.
type GTTSProvider struct {
	language string
	tld      string
	slow     bool
	command  string
	limiter  *rate.Limiter
}

// NewGTTSProvider creates a new gTTS provider
func NewGTTSProvider(config *Config) *GTTSProvider {
	limit := rate.Inf
	if config.GTTSRequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(config.GTTSRequestsPerMinute))
	}

	return &GTTSProvider{
		language: config.Language,
		tld:      config.GTTSTLD,
		slow:     config.GTTSSlow,
		command:  "gtts-cli",
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// GenerateAudio generates an MP3 via gtts-cli
func (p *GTTSProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateText(text); err != nil {
		return err
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := ensureDir(outputFile); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, gttsTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.command, p.args(text, outputFile)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("gtts-cli failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

func (p *GTTSProvider) args(text, outputFile string) []string {
	args := []string{text, "-l", p.language}
	if p.slow {
		args = append(args, "--slow")
	}
	if p.tld != "" {
		args = append(args, "--tld", p.tld)
	}
	return append(args, "-o", outputFile)
}

// Name returns the provider name
func (p *GTTSProvider) Name() string {
	return "gtts"
}

// IsAvailable checks if gtts-cli is installed
func (p *GTTSProvider) IsAvailable() error {
	if _, err := exec.LookPath(p.command); err != nil {
		return fmt.Errorf("gtts-cli is not installed or not in PATH: %w", err)
	}
	return nil
}
