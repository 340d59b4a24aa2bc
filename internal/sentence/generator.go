package sentence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/palavra/internal/batch"
	"codeberg.org/snonux/palavra/internal/llm"
)

// Options configures a Generator
type Options struct {
	BatchSize  int
	MaxRetries int           // extra requests per batch for words still missing
	RetryPause time.Duration // before every retry
	BatchPause time.Duration // between batches
	Fallback   bool          // rescue words the model did not echo by searching the sentences

	Prompt PromptOptions
	Sleep  batch.SleepFunc
}

// DefaultOptions returns batches of ten, two retries five seconds apart and a
// two second pause between batches
func DefaultOptions() Options {
	return Options{
		BatchSize:  10,
		MaxRetries: 2,
		RetryPause: 5 * time.Second,
		BatchPause: 2 * time.Second,
		Fallback:   true,
		Prompt: PromptOptions{
			Tags: DefaultTags(),
		},
	}
}

// Result is the outcome of a whole run
type Result struct {
	Found    []WordSentences
	Missing  []string // words given up on after all retries
	Requests int
	Errors   int // requests that failed outright
}

// Generator produces sentence pairs for batches of words
type Generator struct {
	gen  llm.TextGenerator
	opts Options
}

// NewGenerator creates a sentence generator on top of a text backend
func NewGenerator(gen llm.TextGenerator, opts Options) *Generator {
	if opts.Sleep == nil {
		opts.Sleep = batch.Sleep
	}
	if opts.Prompt.Tags == (Tags{}) {
		opts.Prompt.Tags = DefaultTags()
	}
	return &Generator{gen: gen, opts: opts}
}

// Attempt sends one request for words and partitions them by the reply
func (g *Generator) Attempt(ctx context.Context, words []string) (Attempt, error) {
	prompt := BuildPrompt(words, g.opts.Prompt)

	reply, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		return Attempt{}, fmt.Errorf("failed to generate sentences: %w", err)
	}

	entries := ParseResponse(reply, g.opts.Prompt.Tags)
	log.Debug("parsed reply", "words", len(words), "entries", len(entries))

	return Resolve(words, entries, g.opts.Fallback), nil
}

// Run processes words in batches. Each batch gets one request plus up to
// MaxRetries requests for only the words still missing. A failed request
// counts as an attempt in which the whole request came back missing.
func (g *Generator) Run(ctx context.Context, words []string) (*Result, error) {
	result := &Result{}

	_, err := batch.Run(ctx, words, batch.Options{
		Size:  g.opts.BatchSize,
		Pause: g.opts.BatchPause,
		Sleep: g.opts.Sleep,
	}, func(ctx context.Context, n int, items []string) error {
		return g.runBatch(ctx, items, result)
	})

	return result, err
}

func (g *Generator) runBatch(ctx context.Context, words []string, result *Result) error {
	attempt := g.attemptOrMiss(ctx, words, result)
	result.Found = append(result.Found, attempt.Found...)
	missing := attempt.Missing

	fmt.Printf("Found sentences for %d of %d words\n", len(attempt.Found), len(words))

	for retry := 1; len(missing) > 0 && retry <= g.opts.MaxRetries; retry++ {
		fmt.Printf("Retry %d for missing words: %s\n", retry, strings.Join(missing, ", "))

		if err := g.opts.Sleep(ctx, g.opts.RetryPause); err != nil {
			result.Missing = append(result.Missing, missing...)
			return err
		}

		attempt = g.attemptOrMiss(ctx, missing, result)
		result.Found = append(result.Found, attempt.Found...)
		missing = attempt.Missing

		if len(missing) == 0 {
			fmt.Println("All words processed after retry")
		}
	}

	if len(missing) > 0 {
		fmt.Printf("Failed to generate sentences for: %s\n", strings.Join(missing, ", "))
		result.Missing = append(result.Missing, missing...)
	}

	return ctx.Err()
}

func (g *Generator) attemptOrMiss(ctx context.Context, words []string, result *Result) Attempt {
	result.Requests++

	attempt, err := g.Attempt(ctx, words)
	if err != nil {
		result.Errors++
		log.Error("sentence request failed", "words", len(words), "error", err)
		return Attempt{Missing: append([]string(nil), words...)}
	}
	return attempt
}
