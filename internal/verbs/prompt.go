package verbs

import (
	"fmt"
	"strings"
)

// BuildPrompt asks for the three tenses of every verb. The "---" line
// closing each block is what ParseConjugations splits on.
func BuildPrompt(verbs []string) string {
	joined := strings.Join(verbs, ", ")

	var b strings.Builder
	b.WriteString("You are a precise Portuguese language expert. Your task is to generate verb conjugations.\n")
	b.WriteString("For each of the following Portuguese verbs, provide the simple present, simple past (pretérito perfeito), and simple future conjugations.\n\n")
	fmt.Fprintf(&b, "Verbs to conjugate: %s\n\n", joined)
	b.WriteString("Format the output EXACTLY as follows for each verb, with no extra text or explanations:\n\n")
	b.WriteString("VERB: [The Portuguese verb infinitive]\n")
	for _, t := range Tenses {
		fmt.Fprintf(&b, "%s:\n", strings.ToUpper(t.Name))
		for _, person := range persons {
			fmt.Fprintf(&b, "%s [conjugation]\n", person)
		}
	}
	b.WriteString("---\n")

	return b.String()
}

var persons = []string{"Eu", "Você/Ele/Ela", "Nós", "Vocês/Eles/Elas"}
