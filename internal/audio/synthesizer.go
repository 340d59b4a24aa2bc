package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// Stats counts what a Synthesizer did during a run
type Stats struct {
	Created int
	Skipped int
	Failed  int
	Bytes   uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("%d created (%s), %d skipped, %d failed",
		s.Created, humanize.Bytes(s.Bytes), s.Skipped, s.Failed)
}

// Synthesizer produces one audio file per key in a directory, never
// calling the provider for a key whose file already exists.
type Synthesizer struct {
	provider  Provider
	dir       string
	lang      string
	separator string
	keys      KeySet
	stats     Stats
}

// NewSynthesizer creates a synthesizer writing "<key><separator><lang>.mp3"
// files into dir. A nil keys scans dir.
func NewSynthesizer(provider Provider, dir, lang, separator string, keys KeySet) (*Synthesizer, error) {
	if keys == nil {
		scanned, err := ScanDir(dir, lang, separator)
		if err != nil {
			return nil, err
		}
		keys = scanned
	}

	return &Synthesizer{
		provider:  provider,
		dir:       dir,
		lang:      lang,
		separator: separator,
		keys:      keys,
	}, nil
}

// Filename returns the file name used for key
func (s *Synthesizer) Filename(key string) string {
	return AssetName(key, s.lang, s.separator)
}

// Path returns the full path of the file used for key
func (s *Synthesizer) Path(key string) string {
	return filepath.Join(s.dir, s.Filename(key))
}

// Exists reports whether audio for key is already present
func (s *Synthesizer) Exists(key string) bool {
	if s.keys.Contains(key) {
		return true
	}
	if _, err := os.Stat(s.Path(key)); err == nil {
		s.keys.Mark(key)
		return true
	}
	return false
}

// Ensure makes sure audio for key exists, speaking text when it does not.
// The file name is returned even on failure so the caller can still
// reference it in a card.
func (s *Synthesizer) Ensure(ctx context.Context, key, text string) (string, bool, error) {
	filename := s.Filename(key)

	if s.Exists(key) {
		s.stats.Skipped++
		return filename, false, nil
	}

	path := s.Path(key)
	if err := s.provider.GenerateAudio(ctx, text, path); err != nil {
		s.stats.Failed++
		// Partial output must not count as existing on the next run.
		_ = os.Remove(path)
		return filename, false, fmt.Errorf("failed to generate audio for %q with %s: %w", key, s.provider.Name(), err)
	}

	if info, err := os.Stat(path); err == nil {
		s.stats.Bytes += uint64(info.Size())
	}
	s.keys.Mark(key)
	s.stats.Created++

	return filename, true, nil
}

// Stats returns the counters collected so far
func (s *Synthesizer) Stats() Stats {
	return s.stats
}
