package processor

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/palavra/internal/anki"
	"codeberg.org/snonux/palavra/internal/archive"
	"codeberg.org/snonux/palavra/internal/audio"
	"codeberg.org/snonux/palavra/internal/cli"
	"codeberg.org/snonux/palavra/internal/llm"
)

// Role names the audio provider slot a pipeline synthesizes with
type Role string

const (
	RoleWordsEN     Role = "words-en"
	RoleWordsPT     Role = "words-pt"
	RoleSentencesEN Role = "sentences-en"
	RoleSentencesPT Role = "sentences-pt"
	RoleVerbs       Role = "verbs"
)

// Processor handles the pipelines behind every subcommand
type Processor struct {
	cfg       *cli.Config
	generator llm.TextGenerator
	providers map[Role]audio.Provider
	rand      *rand.Rand
}

// Option customizes a Processor
type Option func(*Processor)

// WithTextGenerator replaces the configured LLM backend
func WithTextGenerator(gen llm.TextGenerator) Option {
	return func(p *Processor) {
		p.generator = gen
	}
}

// WithAudioProvider replaces the provider used for role
func WithAudioProvider(role Role, provider audio.Provider) Option {
	return func(p *Processor) {
		p.providers[role] = provider
	}
}

// WithRand sets the source used to sample the master list
func WithRand(r *rand.Rand) Option {
	return func(p *Processor) {
		p.rand = r
	}
}

// NewProcessor creates a new processor for cfg
func NewProcessor(cfg *cli.Config, opts ...Option) *Processor {
	p := &Processor{
		cfg:       cfg,
		providers: make(map[Role]audio.Provider),
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run dispatches a subcommand. It has the signature of cli.Runner.
func Run(ctx context.Context, command string, cfg *cli.Config, args []string) error {
	p := NewProcessor(cfg)

	switch command {
	case cli.CommandFilter:
		_, err := p.RunFilter()
		return err
	case cli.CommandWords:
		return p.RunWords(ctx)
	case cli.CommandSentences:
		return p.RunSentences(ctx)
	case cli.CommandVerbs:
		return p.RunVerbs(ctx)
	case cli.CommandExport:
		return p.RunExport(args[0])
	case cli.CommandModels:
		return p.RunModels(ctx, os.Stdout)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (p *Processor) textGenerator(ctx context.Context) (llm.TextGenerator, error) {
	if p.generator != nil {
		return p.generator, nil
	}

	gen, err := llm.NewGenerator(ctx, p.cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}
	log.Debug("text generator ready", "backend", gen.Name(), "model", p.cfg.LLM.Model)

	p.generator = gen
	return gen, nil
}

func (p *Processor) audioProvider(ctx context.Context, role Role) (audio.Provider, error) {
	if provider, ok := p.providers[role]; ok {
		return provider, nil
	}

	var config *audio.Config
	switch role {
	case RoleWordsEN:
		config = p.cfg.Words.EN
	case RoleWordsPT:
		config = p.cfg.Words.PT
	case RoleSentencesEN:
		config = p.cfg.Sentences.EN
	case RoleSentencesPT:
		config = p.cfg.Sentences.PT
	case RoleVerbs:
		config = p.cfg.Verbs.Audio
	default:
		return nil, fmt.Errorf("unknown audio role: %s", role)
	}

	provider, err := audio.NewProvider(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s audio provider: %w", role, err)
	}
	if err := provider.IsAvailable(); err != nil {
		log.Warn("audio provider may not work", "role", role, "provider", provider.Name(), "error", err)
	}

	p.providers[role] = provider
	return provider, nil
}

func (p *Processor) synthesizer(ctx context.Context, role Role, dir, lang, separator string) (*audio.Synthesizer, error) {
	provider, err := p.audioProvider(ctx, role)
	if err != nil {
		return nil, err
	}
	return audio.NewSynthesizer(provider, dir, lang, separator, nil)
}

// openCards opens a flashcard file, archiving the previous one first
// when asked to
func (p *Processor) openCards(path string) (*anki.Writer, error) {
	if p.cfg.Archive {
		if _, err := archive.ArchiveFile(path); err != nil {
			return nil, err
		}
	}
	return anki.NewWriter(path, p.cfg.Append)
}

func printSummary(title string, lines ...string) {
	fmt.Printf("\n=== %s Summary ===\n", title)
	for _, line := range lines {
		fmt.Println(line)
	}
	fmt.Printf("================================\n")
}
