package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"codeberg.org/snonux/palavra/internal/audio"
	"codeberg.org/snonux/palavra/internal/llm"
	"codeberg.org/snonux/palavra/internal/sentence"
	"codeberg.org/snonux/palavra/internal/verbs"
	"codeberg.org/snonux/palavra/internal/wordlist"
)

// Credentials are read from the environment (and a .env file)
type Credentials struct {
	OpenAIKey         string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string `env:"OPENAI_BASE_URL"`
	GeminiKey         string `env:"GEMINI_API_KEY"`
	GoogleCredentials string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
}

// LoadCredentials parses Credentials from the environment. Keys missing
// there fall back to the config file.
func LoadCredentials() (Credentials, error) {
	creds, err := env.ParseAs[Credentials]()
	if err != nil {
		return Credentials{}, fmt.Errorf("error parsing environment: %w", err)
	}

	if creds.OpenAIKey == "" {
		creds.OpenAIKey = viper.GetString("generator.openai_key")
	}
	if creds.GeminiKey == "" {
		creds.GeminiKey = viper.GetString("generator.gemini_key")
	}
	if creds.GoogleCredentials == "" {
		creds.GoogleCredentials = viper.GetString("audio.google_credentials")
	}

	return creds, nil
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("generator.openai_key")
}

// SetupLogging configures the global logger
func SetupLogging(debug bool) {
	log.SetReportTimestamp(false)
	if debug {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.InfoLevel)
}

// Config is the resolved configuration handed to every pipeline.
// Nothing reads flags or viper after it is built.
type Config struct {
	Debug     bool
	OutputDir string
	Master    string
	Archive   bool
	Append    bool

	Input      string
	SkipHeader bool
	Rule       wordlist.ExclusionRule

	LLM *llm.Config

	Words struct {
		Cards  string
		ENDir  string
		PTDir  string
		EN, PT *audio.Config
	}

	Sentences struct {
		Options         sentence.Options
		ListSize        int
		StripInfinitive bool
		Cards           string
		ENDir           string
		PTDir           string
		EN, PT          *audio.Config
	}

	Verbs struct {
		Options verbs.Options
		Dir     string
		Audio   *audio.Config
	}

	Export struct {
		DeckName  string
		Output    string
		MediaDirs []string
	}
}

// BuildConfig resolves flags, config file and environment into a Config
func BuildConfig(flags *Flags) (*Config, error) {
	creds, err := LoadCredentials()
	if err != nil {
		return nil, err
	}

	rule, err := wordlist.ParseExclusionRule(stringOr("filter.rule", flags.Rule))
	if err != nil {
		return nil, err
	}

	outputDir := stringOr("output.directory", flags.OutputDir)
	master := stringOr("output.master", flags.Master)
	if master == "" {
		master = filepath.Join(outputDir, "filtered.csv")
	}

	cfg := &Config{
		Debug:      flags.Debug,
		OutputDir:  outputDir,
		Master:     master,
		Archive:    flags.Archive,
		Append:     !boolOr("output.overwrite", flags.Overwrite),
		Input:      flags.Input,
		SkipHeader: boolOr("filter.skip_header", flags.SkipHeader),
		Rule:       rule,
	}

	cfg.LLM = llm.DefaultConfig()
	cfg.LLM.Backend = stringOr("generator.backend", flags.Backend)
	cfg.LLM.Model = stringOr("generator.model", flags.Model)
	cfg.LLM.OpenAIKey = creds.OpenAIKey
	cfg.LLM.OpenAIBaseURL = creds.OpenAIBaseURL
	cfg.LLM.GeminiKey = creds.GeminiKey

	batchSize := intOr("generator.batch_size", flags.BatchSize)
	batchPause := durationOr("generator.batch_pause", flags.BatchPause)

	audioConfig := func(lang, provider string) *audio.Config {
		c := audio.DefaultProviderConfig(lang)
		c.Provider = provider
		c.Fallback = stringOr("audio.fallback", flags.FallbackProvider)
		c.OpenAIKey = creds.OpenAIKey
		c.OpenAIBaseURL = creds.OpenAIBaseURL
		c.OpenAIVoice = stringOr("audio.openai_voice", flags.OpenAIVoice)
		c.OpenAISpeed = floatOr("audio.openai_speed", flags.OpenAISpeed)
		c.GoogleCredentialsFile = creds.GoogleCredentials
		c.GTTSTLD = stringOr("audio.gtts_tld", flags.GTTSTLD)
		if lang == "pt" {
			c.GoogleVoice = stringOr("audio.google_voice", flags.GoogleVoice)
			c.GoogleSpeakingRate = floatOr("audio.google_rate", flags.GoogleSpeakingRate)
		}
		return c
	}

	mediaDir := filepath.Join(outputDir, "media")
	cfg.Words.Cards = filepath.Join(outputDir, "words.csv")
	cfg.Words.ENDir = mediaDir
	cfg.Words.PTDir = mediaDir
	cfg.Words.EN = audioConfig("en", stringOr("words.en_provider", flags.WordsENProvider))
	cfg.Words.PT = audioConfig("pt", stringOr("words.pt_provider", flags.WordsPTProvider))

	opts := sentence.DefaultOptions()
	opts.BatchSize = batchSize
	opts.BatchPause = batchPause
	opts.MaxRetries = intOr("sentences.max_retries", flags.MaxRetries)
	opts.RetryPause = durationOr("sentences.retry_pause", flags.RetryPause)
	opts.Fallback = !flags.NoFallback
	cfg.Sentences.Options = opts
	cfg.Sentences.ListSize = intOr("sentences.list_size", flags.ListSize)
	cfg.Sentences.StripInfinitive = !flags.KeepInfinitive
	cfg.Sentences.Cards = filepath.Join(outputDir, "sentences.csv")
	cfg.Sentences.ENDir = filepath.Join(outputDir, "EN_")
	cfg.Sentences.PTDir = filepath.Join(outputDir, "PT_")
	cfg.Sentences.EN = audioConfig("en", stringOr("sentences.en_provider", flags.SentencesENProvider))
	cfg.Sentences.PT = audioConfig("pt", stringOr("sentences.pt_provider", flags.SentencesPTProvider))

	vopts := verbs.DefaultOptions()
	vopts.BatchSize = batchSize
	vopts.BatchPause = batchPause
	vopts.MaxBatches = intOr("verbs.max_batches", flags.MaxBatches)
	cfg.Verbs.Options = vopts
	cfg.Verbs.Dir = filepath.Join(outputDir, "Verbs")
	cfg.Verbs.Audio = audioConfig("pt", stringOr("verbs.provider", flags.VerbsProvider))

	cfg.Export.DeckName = stringOr("export.deck_name", flags.DeckName)
	cfg.Export.Output = flags.ExportOutput
	cfg.Export.MediaDirs = []string{mediaDir, cfg.Sentences.ENDir, cfg.Sentences.PTDir}
	for _, t := range verbs.Tenses {
		cfg.Export.MediaDirs = append(cfg.Export.MediaDirs, filepath.Join(cfg.Verbs.Dir, t.Folder))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no pipeline can run with
func (c *Config) Validate() error {
	if c.Sentences.Options.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", c.Sentences.Options.BatchSize)
	}
	if c.Sentences.Options.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.Sentences.Options.MaxRetries)
	}
	if c.Sentences.ListSize < 1 {
		return fmt.Errorf("list size must be at least 1, got %d", c.Sentences.ListSize)
	}
	if c.Verbs.Options.MaxBatches < 0 {
		return fmt.Errorf("max batches must not be negative, got %d", c.Verbs.Options.MaxBatches)
	}
	return nil
}

// CardsFile returns the flashcard file for a tense
func (c *Config) CardsFile(t verbs.Tense) string {
	return filepath.Join(c.OutputDir, t.CSV)
}

func stringOr(key, fallback string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return fallback
}

func boolOr(key string, fallback bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return fallback
}

func floatOr(key string, fallback float64) float64 {
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return fallback
}
