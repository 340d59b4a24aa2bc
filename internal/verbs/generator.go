package verbs

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
	MaxBatches int // 0 means no limit
	BatchPause time.Duration
	Sleep      batch.SleepFunc
}

// DefaultOptions returns batches of ten verbs, at most 100 batches, two
// seconds apart
func DefaultOptions() Options {
	return Options{
		BatchSize:  10,
		MaxBatches: 100,
		BatchPause: 2 * time.Second,
	}
}

// Generator requests conjugations batch by batch
type Generator struct {
	gen  llm.TextGenerator
	opts Options
}

// NewGenerator creates a conjugation generator
func NewGenerator(gen llm.TextGenerator, opts Options) *Generator {
	return &Generator{gen: gen, opts: opts}
}

// Run conjugates verbs. A failed request is logged and its verbs are left
// out of the result; the following batches still run.
func (g *Generator) Run(ctx context.Context, verbs []string) (Conjugations, batch.Stats, error) {
	all := make(Conjugations)

	stats, err := batch.Run(ctx, verbs, batch.Options{
		Size:       g.opts.BatchSize,
		Pause:      g.opts.BatchPause,
		MaxBatches: g.opts.MaxBatches,
		Sleep:      g.opts.Sleep,
	}, func(ctx context.Context, n int, items []string) error {
		fmt.Printf("Sending %d verbs: %s\n", len(items), strings.Join(items, ", "))

		reply, err := g.gen.Generate(ctx, BuildPrompt(items))
		if err != nil {
			return fmt.Errorf("failed to generate conjugations: %w", err)
		}

		parsed := ParseConjugations(reply)
		for verb, tenses := range parsed {
			all[verb] = tenses
		}
		log.Debug("parsed conjugations", "batch", n, "verbs", len(parsed))
		fmt.Printf("Parsed %d of %d verbs\n", len(parsed), len(items))
		return nil
	})

	return all, stats, err
}
