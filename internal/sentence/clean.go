package sentence

import (
	"regexp"
	"strings"
)

var parenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*`)

// CleanWord strips the annotations a word list carries so the word can be put
// in a prompt and used as a file name: parenthetical notes are removed and,
// when stripInfinitive is set, a leading "to " infinitive marker as well.
//
//	CleanWord("to run (fast)", true)  == "run"
//	CleanWord("bank (river)", false)  == "bank"
func CleanWord(word string, stripInfinitive bool) string {
	w := strings.TrimSpace(word)
	w = strings.TrimSpace(parenthetical.ReplaceAllString(w, " "))

	if stripInfinitive && len(w) >= 3 && strings.EqualFold(w[:3], "to ") {
		w = strings.TrimSpace(w[3:])
	}

	return w
}
