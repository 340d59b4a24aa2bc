package verbs

import (
	"errors"
	"io/fs"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/palavra/internal/anki"
	"codeberg.org/snonux/palavra/internal/wordlist"
)

// SelectVerbs returns the pairs whose English side is an infinitive ("to ...")
func SelectVerbs(pairs []wordlist.WordPair) []wordlist.WordPair {
	var verbs []wordlist.WordPair
	for _, p := range pairs {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(p.Source)), "to ") {
			verbs = append(verbs, p)
		}
	}
	return verbs
}

// ExistingVerbs collects the lower-cased verbs already on the back of the
// cards in path, where they appear in <b>...</b>. A missing file is an
// empty set.
func ExistingVerbs(path string) (map[string]bool, error) {
	existing := make(map[string]bool)

	records, err := anki.ReadRecords(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("output file not found, starting from scratch", "file", path)
		return existing, nil
	}
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		if m := boldVerbRe.FindStringSubmatch(r.Back); m != nil {
			existing[strings.ToLower(m[1])] = true
		}
	}

	return existing, nil
}

// NewVerbs drops the pairs whose Portuguese verb is already in existing
func NewVerbs(pairs []wordlist.WordPair, existing map[string]bool) []wordlist.WordPair {
	var fresh []wordlist.WordPair
	for _, p := range pairs {
		if !existing[strings.ToLower(p.Target)] {
			fresh = append(fresh, p)
		}
	}
	return fresh
}

var parentheticalRe = regexp.MustCompile(`\s*\(.*\)\s*`)

// CleanEnglish removes parenthetical notes from an English infinitive
func CleanEnglish(en string) string {
	return strings.TrimSpace(parentheticalRe.ReplaceAllString(en, ""))
}

// AudioKey is the key of the audio file for a verb in a tense: the
// file is named "<verb>_<tense>_verb.mp3".
func AudioKey(verb string, t Tense) string {
	return verb + "_" + t.Name
}

// Card builds the flashcard for one verb in one tense
func Card(en, pt string, c Conjugation, audioFile string) anki.Record {
	return anki.Record{
		Front: anki.FormatField(en, CleanEnglish(en)+"_en.mp3"),
		Back:  anki.FormatField("<b>"+pt+"</b><br>"+c.HTML, audioFile),
	}
}
