package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateNoteGUID creates a unique ID for an Anki note based on timestamp and the card front
// Format: epochMillis_md5(front)[:8]
func GenerateNoteGUID(front string) string {
	epochMillis := time.Now().UnixNano() / 1000000

	hash := md5.Sum([]byte(front))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// NormalizeKey turns a word or phrase into the key used for audio file names.
// Letters, accents and inner spaces survive so "pão de queijo" stays readable;
// only characters that cannot appear in a file name are replaced.
func NormalizeKey(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isPathHostile(r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isPathHostile(r rune) bool {
	switch r {
	case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
		return true
	}
	return r < 0x20
}
