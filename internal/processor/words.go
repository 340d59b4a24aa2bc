package processor

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/palavra/internal/anki"
	"codeberg.org/snonux/palavra/internal/audio"
	"codeberg.org/snonux/palavra/internal/wordlist"
)

// RunFilter filters the input word list into the master list
func (p *Processor) RunFilter() (*wordlist.Result, error) {
	filter := &wordlist.Filter{Rule: p.cfg.Rule, SkipHeader: p.cfg.SkipHeader}

	result, err := filter.Run(p.cfg.Input, p.cfg.Master)
	if err != nil {
		return nil, err
	}

	printSummary("Filter",
		fmt.Sprintf("Input pairs: %d", result.Total),
		fmt.Sprintf("Eligible: %d", len(result.Eligible)),
		fmt.Sprintf("Excluded: %d", len(result.Excluded)),
		fmt.Sprintf("Added to %s: %d (%d total)", p.cfg.Master, len(result.Added), len(result.Master)),
	)
	return result, nil
}

// RunWords filters the input, then synthesizes the word audio that is
// still missing and writes one card for every pair that needed audio.
func (p *Processor) RunWords(ctx context.Context) error {
	result, err := p.RunFilter()
	if err != nil {
		return err
	}

	en, err := p.synthesizer(ctx, RoleWordsEN, p.cfg.Words.ENDir, "en", "_")
	if err != nil {
		return err
	}
	pt, err := p.synthesizer(ctx, RoleWordsPT, p.cfg.Words.PTDir, "pt", "_")
	if err != nil {
		return err
	}

	var todo []wordlist.WordPair
	for _, pair := range result.Eligible {
		if !en.Exists(pair.Source) || !pt.Exists(pair.Target) {
			todo = append(todo, pair)
		}
	}
	fmt.Printf("%d of %d pairs need audio\n", len(todo), len(result.Eligible))

	cards, err := p.openCards(p.cfg.Words.Cards)
	if err != nil {
		return err
	}
	defer cards.Close()

	for i, pair := range todo {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Printf("Processing %d/%d: %s\n", i+1, len(todo), pair)

		enFile := ensureAudio(ctx, en, pair.Source, pair.Source)
		ptFile := ensureAudio(ctx, pt, pair.Target, pair.Target)

		record := anki.Record{
			Front: anki.FormatField(pair.Source, enFile),
			Back:  anki.FormatField(pair.Target, ptFile),
		}
		if err := cards.Write(record); err != nil {
			return err
		}
	}

	if err := cards.Close(); err != nil {
		return err
	}

	printSummary("Words",
		fmt.Sprintf("Cards written to %s: %d", cards.Path(), cards.Count()),
		fmt.Sprintf("English audio: %s", en.Stats()),
		fmt.Sprintf("Portuguese audio: %s", pt.Stats()),
	)
	return nil
}

// ensureAudio synthesizes text under key and returns the file name to
// reference. A failure is logged; the card still points at the file.
func ensureAudio(ctx context.Context, s *audio.Synthesizer, key, text string) string {
	filename, created, err := s.Ensure(ctx, key, text)
	if err != nil {
		log.Error("audio generation failed", "key", key, "error", err)
		return filename
	}
	if created {
		fmt.Printf("  Generated %s\n", filename)
	}
	return filename
}
