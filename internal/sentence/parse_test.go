package sentence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		expected []Entry
	}{
		{
			name:  "well formed",
			reply: "1. WORD: cat\nEN: The cat is sleeping.\nPT: O gato está dormindo.\n2. WORD: dog\nEN: The dog runs.\nPT: O cachorro corre.",
			expected: []Entry{
				{Word: "cat", Pair: Pair{Source: "The cat is sleeping.", Target: "O gato está dormindo."}},
				{Word: "dog", Pair: Pair{Source: "The dog runs.", Target: "O cachorro corre."}},
			},
		},
		{
			name:  "preamble and blank lines",
			reply: "Here are your sentences:\n\n1.  WORD: cat\n\n  EN: The cat is sleeping.\n  PT: O gato está dormindo.\n\n",
			expected: []Entry{
				{Word: "cat", Pair: Pair{Source: "The cat is sleeping.", Target: "O gato está dormindo."}},
			},
		},
		{
			name:  "mixed case tags and space before colon",
			reply: "1. word: cat\nen : The cat: a pet.\nPt: O gato: um animal.",
			expected: []Entry{
				{Word: "cat", Pair: Pair{Source: "The cat: a pet.", Target: "O gato: um animal."}},
			},
		},
		{
			name:     "entry missing target line",
			reply:    "1. WORD: cat\nEN: The cat is sleeping.\nNOTE: none",
			expected: nil,
		},
		{
			name:     "first line not a word line",
			reply:    "1. EN: The cat is sleeping.\nWORD: cat\nPT: O gato está dormindo.",
			expected: nil,
		},
		{
			name:     "fewer than three lines",
			reply:    "1. WORD: cat\nEN: The cat is sleeping.",
			expected: nil,
		},
		{
			name:  "windows line endings",
			reply: "1. WORD: cat\r\nEN: The cat is sleeping.\r\nPT: O gato está dormindo.\r\n",
			expected: []Entry{
				{Word: "cat", Pair: Pair{Source: "The cat is sleeping.", Target: "O gato está dormindo."}},
			},
		},
		{
			name:     "empty reply",
			reply:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseResponse(tt.reply, DefaultTags()))
		})
	}
}

func TestParseResponseCustomTags(t *testing.T) {
	tags := Tags{Word: "TERM", Source: "SRC", Target: "DST"}
	reply := "1. TERM: cat\nSRC: The cat is sleeping.\nDST: O gato está dormindo."

	entries := ParseResponse(reply, tags)
	require.Len(t, entries, 1)
	assert.Equal(t, "cat", entries[0].Word)

	assert.Empty(t, ParseResponse(reply, DefaultTags()))
}

func TestParseResponseOnePairPerWord(t *testing.T) {
	words := []string{"cat", "dog", "house", "to run", "water"}

	var b strings.Builder
	for i, w := range words {
		b.WriteString(strings.Repeat(" ", i%2))
		b.WriteString(string(rune('1' + i)))
		b.WriteString(". WORD: " + w + "\nEN: A " + w + " sentence.\nPT: Uma frase.\n")
	}

	attempt := Resolve(words, ParseResponse(b.String(), DefaultTags()), false)
	assert.Len(t, attempt.Found, len(words))
	assert.Empty(t, attempt.Missing)
	for i, found := range attempt.Found {
		assert.Equal(t, words[i], found.Word)
	}
}

func TestResolve(t *testing.T) {
	entries := []Entry{
		{Word: "Cat", Pair: Pair{Source: "The cat sleeps.", Target: "O gato dorme."}},
		{Word: "dogs", Pair: Pair{Source: "I walk the dog every day.", Target: "Eu passeio com o cachorro todo dia."}},
	}

	t.Run("exact match ignores case", func(t *testing.T) {
		attempt := Resolve([]string{"cat"}, entries, false)
		require.Len(t, attempt.Found, 1)
		assert.Equal(t, "cat", attempt.Found[0].Word)
		assert.Equal(t, "O gato dorme.", attempt.Found[0].Pair.Target)
	})

	t.Run("without fallback a renamed echo is missing", func(t *testing.T) {
		attempt := Resolve([]string{"dog"}, entries, false)
		assert.Empty(t, attempt.Found)
		assert.Equal(t, []string{"dog"}, attempt.Missing)
	})

	t.Run("fallback finds whole word in sentence", func(t *testing.T) {
		attempt := Resolve([]string{"dog"}, entries, true)
		require.Len(t, attempt.Found, 1)
		assert.Equal(t, "I walk the dog every day.", attempt.Found[0].Pair.Source)
	})

	t.Run("fallback does not match inside words", func(t *testing.T) {
		attempt := Resolve([]string{"at"}, entries, true)
		assert.Equal(t, []string{"at"}, attempt.Missing)
	})

	t.Run("every word lands in exactly one bucket", func(t *testing.T) {
		words := []string{"cat", "dog", "bird"}
		attempt := Resolve(words, entries, true)
		assert.Equal(t, len(words), len(attempt.Found)+len(attempt.Missing))
		assert.Equal(t, []string{"bird"}, attempt.Missing)
	})
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		sentence string
		word     string
		expected bool
	}{
		{"The cat sleeps.", "cat", true},
		{"The cat sleeps.", "CAT", true},
		{"Concatenate strings.", "cat", false},
		{"The cats sleep.", "cat", false},
		{"I like ice cream a lot.", "ice cream", true},
		{"Ele é médico.", "médico", true},
		{"Ele é médicos.", "médico", false},
		{"Café com leite.", "caf", false},
		{"A cat_like pose.", "cat", false},
		{"cat", "cat", true},
		{"The cat sleeps.", "", false},
		{"bobcat and cat", "cat", true},
	}

	for _, tt := range tests {
		t.Run(tt.sentence+"/"+tt.word, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContainsWord(tt.sentence, tt.word))
		})
	}
}
