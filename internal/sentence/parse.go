package sentence

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Pair is an example sentence and its translation
type Pair struct {
	Source string
	Target string
}

// Entry is one well-formed entry of a model reply
type Entry struct {
	Word string
	Pair Pair
}

var entrySplit = regexp.MustCompile(`\n\s*\d+\.\s*`)

// ParseResponse extracts the entries of a reply in the order they appear.
// Entries need at least three non-empty lines, the first one tagged with
// tags.Word; an entry lacking any of the three values is dropped. Tags match
// case-insensitively and the value is everything after the first colon.
func ParseResponse(text string, tags Tags) []Entry {
	if tags == (Tags{}) {
		tags = DefaultTags()
	}

	chunks := entrySplit.Split("\n"+strings.ReplaceAll(text, "\r\n", "\n"), -1)
	if len(chunks) > 0 && strings.TrimSpace(chunks[0]) == "" {
		chunks = chunks[1:]
	}

	var entries []Entry
	for _, chunk := range chunks {
		lines := nonEmptyLines(chunk)
		if len(lines) < 3 {
			continue
		}

		word, ok := tagValue(lines[0], tags.Word)
		if !ok || word == "" {
			continue
		}

		var pair Pair
		for _, line := range lines[1:] {
			if v, ok := tagValue(line, tags.Source); ok {
				pair.Source = v
			} else if v, ok := tagValue(line, tags.Target); ok {
				pair.Target = v
			}
		}

		if pair.Source == "" || pair.Target == "" {
			continue
		}
		entries = append(entries, Entry{Word: word, Pair: pair})
	}

	return entries
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// tagValue matches "TAG:" (any case, optional spaces before the colon) at the
// start of line and returns the trimmed text after the colon
func tagValue(line, tag string) (string, bool) {
	line = strings.TrimSpace(line)
	if len(line) < len(tag) || !strings.EqualFold(line[:len(tag)], tag) {
		return "", false
	}

	rest := strings.TrimLeft(line[len(tag):], " \t")
	if !strings.HasPrefix(rest, ":") {
		return "", false
	}
	return strings.TrimSpace(rest[1:]), true
}

// Attempt is the outcome of one request: every requested word is either found
// or missing, never both
type Attempt struct {
	Found   []WordSentences
	Missing []string
}

// WordSentences ties a requested word to the sentence pair generated for it
type WordSentences struct {
	Word string
	Pair Pair
}

// Resolve matches requested words against parsed entries. A word is found
// when an entry echoes it (case-insensitive; the last such entry wins). With
// fallback set, a word no entry echoes is still found when it appears as a
// whole word in an entry's source sentence.
func Resolve(words []string, entries []Entry, fallback bool) Attempt {
	byWord := make(map[string]Pair, len(entries))
	for _, e := range entries {
		byWord[strings.ToLower(strings.TrimSpace(e.Word))] = e.Pair
	}

	var attempt Attempt
	for _, word := range words {
		if pair, ok := byWord[strings.ToLower(strings.TrimSpace(word))]; ok {
			attempt.Found = append(attempt.Found, WordSentences{Word: word, Pair: pair})
			continue
		}

		if fallback {
			if pair, ok := findInSentences(word, entries); ok {
				attempt.Found = append(attempt.Found, WordSentences{Word: word, Pair: pair})
				continue
			}
		}

		attempt.Missing = append(attempt.Missing, word)
	}

	return attempt
}

func findInSentences(word string, entries []Entry) (Pair, bool) {
	for _, e := range entries {
		if ContainsWord(e.Pair.Source, word) {
			return e.Pair, true
		}
	}
	return Pair{}, false
}

// ContainsWord reports whether word occurs in sentence as a whole word,
// ignoring case. Letters with accents count as word characters.
func ContainsWord(sentence, word string) bool {
	s := strings.ToLower(sentence)
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return false
	}

	for offset := 0; offset < len(s); {
		i := strings.Index(s[offset:], w)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(w)

		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			return true
		}

		_, size := utf8.DecodeRuneInString(s[start:])
		offset = start + size
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
