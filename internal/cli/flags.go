package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	Debug     bool
	OutputDir string
	Master    string
	Archive   bool
	Overwrite bool

	// filter and words
	Input      string
	SkipHeader bool
	Rule       string

	// Text generation
	Backend    string
	Model      string
	BatchSize  int
	BatchPause time.Duration

	// sentences
	ListSize       int
	MaxRetries     int
	RetryPause     time.Duration
	NoFallback     bool
	KeepInfinitive bool

	// verbs
	MaxBatches int

	// Audio providers per output
	WordsENProvider     string
	WordsPTProvider     string
	SentencesENProvider string
	SentencesPTProvider string
	VerbsProvider       string
	FallbackProvider    string

	// Provider tuning
	OpenAIVoice        string
	OpenAISpeed        float64
	GoogleVoice        string
	GoogleSpeakingRate float64
	GTTSTLD            string

	// export
	DeckName     string
	ExportOutput string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		OutputDir:           ".",
		SkipHeader:          true,
		Rule:                "both",
		Backend:             "openai",
		Model:               "gpt-4o",
		BatchSize:           10,
		BatchPause:          2 * time.Second,
		ListSize:            100,
		MaxRetries:          2,
		RetryPause:          5 * time.Second,
		MaxBatches:          100,
		WordsENProvider:     "gtts",
		WordsPTProvider:     "gtts",
		SentencesENProvider: "gtts",
		SentencesPTProvider: "gcloud",
		VerbsProvider:       "gtts",
		OpenAIVoice:         "nova",
		OpenAISpeed:         1.0,
		GoogleVoice:         "pt-BR-Chirp3-HD-Achernar",
		GoogleSpeakingRate:  0.95,
		DeckName:            "Portuguese Vocabulary",
	}
}
