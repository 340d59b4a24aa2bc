package verbs

import (
	"regexp"
	"strings"
)

// Conjugation is one tense of one verb
type Conjugation struct {
	Forms  []string
	HTML   string // forms joined with <br> for the card
	Speech string // forms joined with ", " for text-to-speech
}

// Conjugations maps a lower-cased infinitive to its tenses by name
type Conjugations map[string]map[string]Conjugation

var (
	verbRe     = regexp.MustCompile(`(?i)VERB:\s*(.+)`)
	tenseRes   = tensePatterns()
	boldVerbRe = regexp.MustCompile(`<b>(.*?)</b>`)
)

// tensePatterns captures the text after each tense label up to the next
// label that follows it, or to the end of the block.
func tensePatterns() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(Tenses))
	for i, t := range Tenses {
		stops := []string{"$"}
		for _, later := range Tenses[i+1:] {
			stops = append(stops, strings.ToUpper(later.Name)+":")
		}
		res[i] = regexp.MustCompile(`(?is)` + strings.ToUpper(t.Name) + `:(.*?)(?:` + strings.Join(stops, "|") + `)`)
	}
	return res
}

// ParseConjugations reads a model reply. Blocks without a VERB line are
// skipped, and a tense missing from a block is simply absent.
func ParseConjugations(text string) Conjugations {
	result := make(Conjugations)

	for _, block := range strings.Split(strings.TrimSpace(text), "---") {
		if strings.TrimSpace(block) == "" {
			continue
		}

		m := verbRe.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		verb := strings.ToLower(strings.TrimSpace(m[1]))
		tenses := make(map[string]Conjugation)

		for i, t := range Tenses {
			tm := tenseRes[i].FindStringSubmatch(block)
			if tm == nil {
				continue
			}
			tenses[t.Name] = conjugation(tm[1])
		}

		result[verb] = tenses
	}

	return result
}

// conjugation drops the pronoun of every "Pronoun form" line
func conjugation(block string) Conjugation {
	var forms []string
	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		line = strings.TrimSpace(line)
		_, form, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		forms = append(forms, form)
	}

	return Conjugation{
		Forms:  forms,
		HTML:   strings.Join(forms, "<br>"),
		Speech: strings.Join(forms, ", "),
	}
}
