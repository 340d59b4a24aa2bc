package audio

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/palavra/internal"
)

// KeySet records which asset keys already have audio on disk
type KeySet interface {
	Contains(key string) bool
	Mark(key string)
}

// MemoryKeySet is a KeySet backed by a map
type MemoryKeySet map[string]struct{}

// NewMemoryKeySet creates a set holding keys
func NewMemoryKeySet(keys ...string) MemoryKeySet {
	set := make(MemoryKeySet, len(keys))
	for _, key := range keys {
		set.Mark(key)
	}
	return set
}

// Contains reports whether key was marked
func (s MemoryKeySet) Contains(key string) bool {
	_, ok := s[internal.NormalizeKey(key)]
	return ok
}

// Mark adds key to the set
func (s MemoryKeySet) Mark(key string) {
	s[internal.NormalizeKey(key)] = struct{}{}
}

// Len returns the number of keys
func (s MemoryKeySet) Len() int {
	return len(s)
}

// DirKeySet is the set of keys found by scanning an audio directory
type DirKeySet struct {
	MemoryKeySet
	Dir string
}

// AssetName returns the audio file name for key, e.g. "casa_pt.mp3"
// or with a double separator "Eu gosto de gatos.__pt.mp3".
func AssetName(key, lang, separator string) string {
	return internal.NormalizeKey(key) + separator + lang + ".mp3"
}

// ScanDir collects the keys of all files in dir ending in
// separator+lang+".mp3". A missing directory yields an empty set.
func ScanDir(dir, lang, separator string) (*DirKeySet, error) {
	set := &DirKeySet{MemoryKeySet: NewMemoryKeySet(), Dir: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, fmt.Errorf("failed to scan audio directory %s: %w", dir, err)
	}

	suffix := separator + lang + ".mp3"
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}
		set.Mark(strings.TrimSuffix(name, suffix))
	}

	return set, nil
}
