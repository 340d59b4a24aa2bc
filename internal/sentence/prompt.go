package sentence

import (
	"fmt"
	"strings"
)

// Tags are the line prefixes the model must use for the three parts of an entry
type Tags struct {
	Word   string
	Source string
	Target string
}

// DefaultTags returns WORD/EN/PT
func DefaultTags() Tags {
	return Tags{Word: "WORD", Source: "EN", Target: "PT"}
}

// PromptOptions tunes the wording of the request
type PromptOptions struct {
	Tags           Tags
	SourceLanguage string
	TargetLanguage string
}

// BuildPrompt asks for exactly one sentence pair per word in the tagged,
// numbered format ParseResponse understands.
func BuildPrompt(words []string, opts PromptOptions) string {
	tags := opts.Tags
	if tags == (Tags{}) {
		tags = DefaultTags()
	}
	source := opts.SourceLanguage
	if source == "" {
		source = "English"
	}
	target := opts.TargetLanguage
	if target == "" {
		target = "Brazilian Portuguese"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "You are a helpful assistant that writes example sentences for language learners.\n")
	fmt.Fprintf(&b, "Write one simple %s sentence for each of the following %d words:\n", source, len(words))
	for _, w := range words {
		fmt.Fprintf(&b, "- %s\n", w)
	}

	fmt.Fprintf(&b, "\nFollow these rules precisely:\n")
	fmt.Fprintf(&b, "1. Give one numbered response per word.\n")
	fmt.Fprintf(&b, "2. Each numbered response has three lines, starting with %q, %q and %q.\n",
		tags.Word+":", tags.Source+":", tags.Target+":")
	fmt.Fprintf(&b, "3. The %q line repeats the word exactly as given.\n", tags.Word+":")
	fmt.Fprintf(&b, "4. The %q sentence uses the word.\n", tags.Source+":")
	fmt.Fprintf(&b, "5. The %q sentence is a direct %s translation of the %q sentence.\n",
		tags.Target+":", target, tags.Source+":")
	fmt.Fprintf(&b, "6. Every sentence ends with a period.\n")
	fmt.Fprintf(&b, "7. Do not write any introduction or closing remarks. Start immediately with \"1.\".\n")
	fmt.Fprintf(&b, "8. Be creative and avoid reusing the same sentence patterns.\n")

	fmt.Fprintf(&b, "\nExample output:\n")
	fmt.Fprintf(&b, "1. %s: Brazil\n%s: I really like Brazil.\n%s: Eu gosto muito do Brasil.\n",
		tags.Word, tags.Source, tags.Target)
	fmt.Fprintf(&b, "2. %s: cat\n%s: The cat is sleeping.\n%s: O gato está dormindo.\n",
		tags.Word, tags.Source, tags.Target)

	return b.String()
}
