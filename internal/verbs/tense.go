package verbs

// Tense names a conjugation tense and where its output goes
type Tense struct {
	Name   string // lower case, used in prompts and file names
	Folder string // audio subdirectory
	CSV    string // flashcard file
}

// Tenses lists the generated tenses in the order the model returns them
var Tenses = []Tense{
	{Name: "present", Folder: "Present", CSV: "present.csv"},
	{Name: "past", Folder: "Past", CSV: "past.csv"},
	{Name: "future", Folder: "Future", CSV: "future.csv"},
}
