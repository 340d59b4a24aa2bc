package processor

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/palavra/internal/anki"
	"codeberg.org/snonux/palavra/internal/audio"
	"codeberg.org/snonux/palavra/internal/sentence"
	"codeberg.org/snonux/palavra/internal/wordlist"
)

// RunSentences picks random master list pairs that have no sentence audio
// yet, asks the model for an example sentence per word and writes a card
// with English and Portuguese audio for every sentence it got.
func (p *Processor) RunSentences(ctx context.Context) error {
	master, err := wordlist.ReadMaster(p.cfg.Master)
	if err != nil {
		return err
	}
	if len(master) == 0 {
		return fmt.Errorf("master list %s is empty, run filter first", p.cfg.Master)
	}
	fmt.Printf("Loaded %d pairs from %s\n", len(master), p.cfg.Master)

	en, err := p.synthesizer(ctx, RoleSentencesEN, p.cfg.Sentences.ENDir, "en", "__")
	if err != nil {
		return err
	}
	pt, err := p.synthesizer(ctx, RoleSentencesPT, p.cfg.Sentences.PTDir, "pt", "__")
	if err != nil {
		return err
	}

	strip := p.cfg.Sentences.StripInfinitive
	var candidates []wordlist.WordPair
	for _, pair := range master {
		if en.Exists(sentence.CleanWord(pair.Source, strip)) {
			continue
		}
		candidates = append(candidates, pair)
	}
	if skipped := len(master) - len(candidates); skipped > 0 {
		fmt.Printf("Skipping %d pairs that already have sentences\n", skipped)
	}

	sample := p.sample(candidates, p.cfg.Sentences.ListSize)
	words, byWord := wordIndex(sample, strip)
	fmt.Printf("Processing %d words in batches of %d\n", len(words), p.cfg.Sentences.Options.BatchSize)

	gen, err := p.textGenerator(ctx)
	if err != nil {
		return err
	}

	result, err := sentence.NewGenerator(gen, p.cfg.Sentences.Options).Run(ctx, words)
	if err != nil {
		return err
	}

	cards, err := p.openCards(p.cfg.Sentences.Cards)
	if err != nil {
		return err
	}
	defer cards.Close()

	fmt.Printf("\nWriting %d results to %s\n", len(result.Found), cards.Path())
	for _, found := range result.Found {
		if cards.Count() >= p.cfg.Sentences.ListSize {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		pair, ok := byWord[strings.ToLower(found.Word)]
		if !ok {
			continue
		}

		record := sentenceCard(ctx, en, pt, sentence.CleanWord(pair.Source, strip), pair.Target, found.Pair)
		if err := cards.Write(record); err != nil {
			return err
		}
	}

	if err := cards.Close(); err != nil {
		return err
	}

	lines := []string{
		fmt.Sprintf("Cards written to %s: %d", cards.Path(), cards.Count()),
		fmt.Sprintf("Requests: %d (%d failed)", result.Requests, result.Errors),
		fmt.Sprintf("English audio: %s", en.Stats()),
		fmt.Sprintf("Portuguese audio: %s", pt.Stats()),
	}
	if len(result.Missing) > 0 {
		lines = append(lines, fmt.Sprintf("Missing words (%d): %s", len(result.Missing), strings.Join(result.Missing, ", ")))
	}
	printSummary("Sentences", lines...)

	return nil
}

// sample returns up to n pairs in random order
func (p *Processor) sample(pairs []wordlist.WordPair, n int) []wordlist.WordPair {
	shuffled := append([]wordlist.WordPair(nil), pairs...)
	p.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}

// wordIndex maps every cleaned English word to its pair; a later pair
// with the same cleaned word wins. Words are returned in first-seen order.
func wordIndex(pairs []wordlist.WordPair, strip bool) ([]string, map[string]wordlist.WordPair) {
	var words []string
	byWord := make(map[string]wordlist.WordPair, len(pairs))

	for _, pair := range pairs {
		word := sentence.CleanWord(pair.Source, strip)
		if word == "" {
			continue
		}
		key := strings.ToLower(word)
		if _, seen := byWord[key]; !seen {
			words = append(words, word)
		}
		byWord[key] = pair
	}

	return words, byWord
}

func sentenceCard(ctx context.Context, en, pt *audio.Synthesizer, enKey, ptKey string, s sentence.Pair) anki.Record {
	fmt.Printf("'%s': '%s'\n", enKey, s.Source)
	enFile := ensureAudio(ctx, en, enKey, s.Source)

	fmt.Printf("'%s': '%s'\n", ptKey, s.Target)
	ptFile := ensureAudio(ctx, pt, ptKey, s.Target)

	return anki.Record{
		Front: anki.FormatField(s.Source, enFile),
		Back:  anki.FormatField(s.Target, ptFile),
	}
}
