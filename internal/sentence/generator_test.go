package sentence

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/palavra/internal/testutil"
)

type recordedSleep struct {
	pauses []time.Duration
}

func (r *recordedSleep) sleep(ctx context.Context, d time.Duration) error {
	r.pauses = append(r.pauses, d)
	return ctx.Err()
}

func testOptions(sleep *recordedSleep) Options {
	opts := DefaultOptions()
	opts.Sleep = sleep.sleep
	return opts
}

// promptWords extracts the "- word" lines of a prompt
func promptWords(prompt string) []string {
	var words []string
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "- ") {
			words = append(words, strings.TrimPrefix(line, "- "))
		}
	}
	return words
}

func TestGeneratorRunAllFound(t *testing.T) {
	data := &testutil.TestDataGenerator{}
	gen := &testutil.ScriptedGenerator{
		Respond: func(prompt string) (string, error) {
			return data.SentenceReply(promptWords(prompt)...), nil
		},
	}
	sleep := &recordedSleep{}

	words := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10", "a11", "a12"}
	result, err := NewGenerator(gen, testOptions(sleep)).Run(context.Background(), words)

	require.NoError(t, err)
	assert.Len(t, result.Found, 12)
	assert.Empty(t, result.Missing)
	assert.Equal(t, 2, gen.Calls(), "12 words in batches of 10 need two requests")
	assert.Equal(t, []time.Duration{2 * time.Second}, sleep.pauses)
	assert.Equal(t, 10, len(promptWords(gen.Prompts[0])))
	assert.Equal(t, 2, len(promptWords(gen.Prompts[1])))
}

func TestGeneratorRetriesOnlyMissing(t *testing.T) {
	data := &testutil.TestDataGenerator{}
	gen := &testutil.ScriptedGenerator{
		Replies: []string{
			data.SentenceReply("w1", "w2", "w3", "w4", "w5", "w6", "w7"),
			data.SentenceReply("w8", "w9", "w10"),
		},
	}
	sleep := &recordedSleep{}

	words := []string{"w1", "w2", "w3", "w4", "w5", "w6", "w7", "w8", "w9", "w10"}
	result, err := NewGenerator(gen, testOptions(sleep)).Run(context.Background(), words)

	require.NoError(t, err)
	assert.Len(t, result.Found, 10)
	assert.Empty(t, result.Missing)
	assert.Equal(t, 2, gen.Calls())
	assert.Equal(t, []string{"w8", "w9", "w10"}, promptWords(gen.Prompts[1]))
	assert.Equal(t, []time.Duration{5 * time.Second}, sleep.pauses)
}

func TestGeneratorGivesUpAfterTwoRetries(t *testing.T) {
	data := &testutil.TestDataGenerator{}
	gen := &testutil.ScriptedGenerator{
		Respond: func(prompt string) (string, error) {
			var keep []string
			for _, w := range promptWords(prompt) {
				if w != "w10" {
					keep = append(keep, w)
				}
			}
			return data.SentenceReply(keep...), nil
		},
	}
	sleep := &recordedSleep{}

	words := []string{"w1", "w2", "w3", "w4", "w5", "w6", "w7", "w8", "w9", "w10"}
	result, err := NewGenerator(gen, testOptions(sleep)).Run(context.Background(), words)

	require.NoError(t, err)
	assert.Len(t, result.Found, 9)
	assert.Equal(t, []string{"w10"}, result.Missing)
	assert.Equal(t, 3, gen.Calls(), "one request plus two retries")
	assert.Equal(t, []string{"w10"}, promptWords(gen.Prompts[1]))
	assert.Equal(t, []string{"w10"}, promptWords(gen.Prompts[2]))
}

func TestGeneratorRequestErrorCountsAsAttempt(t *testing.T) {
	data := &testutil.TestDataGenerator{}
	gen := &testutil.ScriptedGenerator{
		Replies: []string{"", data.SentenceReply("cat", "dog")},
		Errors:  []error{errors.New("503 service unavailable")},
	}
	sleep := &recordedSleep{}

	result, err := NewGenerator(gen, testOptions(sleep)).Run(context.Background(), []string{"cat", "dog"})

	require.NoError(t, err)
	assert.Len(t, result.Found, 2)
	assert.Empty(t, result.Missing)
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 2, result.Requests)
	assert.Equal(t, []string{"cat", "dog"}, promptWords(gen.Prompts[1]))
}

func TestGeneratorPersistentErrorsContinueWithNextBatch(t *testing.T) {
	data := &testutil.TestDataGenerator{}
	gen := &testutil.ScriptedGenerator{
		Respond: func(prompt string) (string, error) {
			words := promptWords(prompt)
			if words[0] == "bad" {
				return "", errors.New("timeout")
			}
			return data.SentenceReply(words...), nil
		},
	}
	opts := testOptions(&recordedSleep{})
	opts.BatchSize = 1

	result, err := NewGenerator(gen, opts).Run(context.Background(), []string{"bad", "good"})

	require.NoError(t, err)
	assert.Equal(t, []string{"bad"}, result.Missing)
	require.Len(t, result.Found, 1)
	assert.Equal(t, "good", result.Found[0].Word)
	assert.Equal(t, 3, result.Errors)
	assert.Equal(t, 4, gen.Calls())
}

func TestGeneratorEveryWordAccountedFor(t *testing.T) {
	data := &testutil.TestDataGenerator{}
	call := 0
	gen := &testutil.ScriptedGenerator{
		Respond: func(prompt string) (string, error) {
			call++
			words := promptWords(prompt)
			// Answer only every other word, and garble the reply on every third call
			var keep []string
			for i, w := range words {
				if (i+call)%2 == 0 {
					keep = append(keep, w)
				}
			}
			if call%3 == 0 {
				return "sorry, I cannot help with that", nil
			}
			return data.SentenceReply(keep...), nil
		},
	}
	opts := testOptions(&recordedSleep{})
	opts.BatchSize = 4

	words := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
	result, err := NewGenerator(gen, opts).Run(context.Background(), words)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, f := range result.Found {
		seen[f.Word]++
	}
	for _, m := range result.Missing {
		seen[m]++
	}
	assert.Len(t, seen, len(words))
	for _, w := range words {
		assert.Equal(t, 1, seen[w], "word %q must be found or missing exactly once", w)
	}
}

func TestGeneratorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &testutil.ScriptedGenerator{
		Respond: func(prompt string) (string, error) {
			cancel()
			return "", nil
		},
	}

	result, err := NewGenerator(gen, testOptions(&recordedSleep{})).Run(ctx, []string{"cat"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"cat"}, result.Missing)
	assert.Equal(t, 1, gen.Calls())
}

func TestGeneratorAttempt(t *testing.T) {
	gen := &testutil.ScriptedGenerator{
		Replies: []string{"1. WORD: cat\nEN: The cat sleeps.\nPT: O gato dorme."},
	}

	attempt, err := NewGenerator(gen, testOptions(&recordedSleep{})).Attempt(context.Background(), []string{"cat", "dog"})

	require.NoError(t, err)
	require.Len(t, attempt.Found, 1)
	assert.Equal(t, Pair{Source: "The cat sleeps.", Target: "O gato dorme."}, attempt.Found[0].Pair)
	assert.Equal(t, []string{"dog"}, attempt.Missing)
}
