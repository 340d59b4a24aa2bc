package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/palavra/internal/anki"
	"codeberg.org/snonux/palavra/internal/audio"
	"codeberg.org/snonux/palavra/internal/verbs"
	"codeberg.org/snonux/palavra/internal/wordlist"
)

// RunVerbs conjugates the master list verbs that have no cards yet and
// writes one card with audio per verb and tense.
func (p *Processor) RunVerbs(ctx context.Context) error {
	master, err := wordlist.ReadMaster(p.cfg.Master)
	if err != nil {
		return err
	}

	existing, err := verbs.ExistingVerbs(p.cfg.CardsFile(verbs.Tenses[0]))
	if err != nil {
		return err
	}

	selected := verbs.SelectVerbs(master)
	todo := verbs.NewVerbs(selected, existing)
	fmt.Printf("Found %d verbs, %d already conjugated, %d to process\n",
		len(selected), len(selected)-len(todo), len(todo))
	if len(todo) == 0 {
		return nil
	}

	ptVerbs := make([]string, len(todo))
	for i, pair := range todo {
		ptVerbs[i] = pair.Target
	}

	gen, err := p.textGenerator(ctx)
	if err != nil {
		return err
	}

	conjugations, stats, err := verbs.NewGenerator(gen, p.cfg.Verbs.Options).Run(ctx, ptVerbs)
	if err != nil {
		return err
	}

	synths := make([]*audio.Synthesizer, len(verbs.Tenses))
	writers := make([]*anki.Writer, len(verbs.Tenses))
	defer func() {
		for _, w := range writers {
			if w != nil {
				w.Close()
			}
		}
	}()

	for i, t := range verbs.Tenses {
		dir := filepath.Join(p.cfg.Verbs.Dir, t.Folder)
		if synths[i], err = p.synthesizer(ctx, RoleVerbs, dir, "verb", "_"); err != nil {
			return err
		}
		if writers[i], err = p.openCards(p.cfg.CardsFile(t)); err != nil {
			return err
		}
	}

	missing := 0
	for _, pair := range todo {
		if err := ctx.Err(); err != nil {
			return err
		}

		tenses, ok := conjugations[strings.ToLower(pair.Target)]
		if !ok {
			log.Warn("no conjugation returned", "verb", pair.Target)
			missing++
			continue
		}

		fmt.Printf("Processing %s (%s)\n", pair.Target, pair.Source)
		for i, t := range verbs.Tenses {
			c, ok := tenses[t.Name]
			if !ok {
				log.Warn("tense missing from reply", "verb", pair.Target, "tense", t.Name)
				continue
			}

			filename := ensureAudio(ctx, synths[i], verbs.AudioKey(pair.Target, t), c.Speech)
			if err := writers[i].Write(verbs.Card(pair.Source, pair.Target, c, filename)); err != nil {
				return err
			}
		}
	}

	lines := []string{
		fmt.Sprintf("Batches: %d (%d failed, %d skipped)", stats.Batches, stats.Failed, stats.Skipped),
		fmt.Sprintf("Verbs without conjugation: %d", missing),
	}
	for i, t := range verbs.Tenses {
		if err := writers[i].Close(); err != nil {
			return err
		}
		lines = append(lines,
			fmt.Sprintf("%s cards written to %s: %d", t.Folder, writers[i].Path(), writers[i].Count()),
			fmt.Sprintf("%s audio: %s", t.Folder, synths[i].Stats()),
		)
	}
	writers = nil
	printSummary("Verbs", lines...)

	return nil
}
