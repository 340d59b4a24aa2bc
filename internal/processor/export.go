package processor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/palavra/internal/anki"
	"codeberg.org/snonux/palavra/internal/cli"
	"codeberg.org/snonux/palavra/internal/models"
)

// RunExport packages the cards in cardsFile and the audio they reference
// into an Anki package
func (p *Processor) RunExport(cardsFile string) error {
	records, err := anki.ReadRecords(cardsFile)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no cards found in %s", cardsFile)
	}

	output := p.cfg.Export.Output
	if output == "" {
		output = strings.TrimSuffix(cardsFile, filepath.Ext(cardsFile)) + ".apkg"
	}

	gen := anki.NewAPKGGenerator(p.cfg.Export.DeckName, p.cfg.Export.MediaDirs...)
	for _, r := range records {
		gen.AddRecord(r)
	}

	fmt.Printf("Generating Anki package %s...\n", output)
	if err := gen.GenerateAPKG(output); err != nil {
		return fmt.Errorf("failed to generate APKG: %w", err)
	}

	cards, media, missing := gen.Stats()
	printSummary("Export",
		fmt.Sprintf("Deck: %s", p.cfg.Export.DeckName),
		fmt.Sprintf("Cards: %d", cards),
		fmt.Sprintf("Media files: %d (%d missing)", media, missing),
		fmt.Sprintf("Package: %s", output),
	)
	return nil
}

// RunModels prints the OpenAI models available to the configured key
func (p *Processor) RunModels(ctx context.Context, w io.Writer) error {
	apiKey := p.cfg.LLM.OpenAIKey
	if apiKey == "" {
		apiKey = cli.GetOpenAIKey()
	}
	return models.NewLister(apiKey, p.cfg.LLM.OpenAIBaseURL).ListAvailableModels(ctx, w)
}
