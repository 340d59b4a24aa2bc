package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/palavra/internal"
)

// Runner executes a subcommand once flags and configuration are resolved
type Runner func(ctx context.Context, command string, cfg *Config, args []string) error

// Subcommand names
const (
	CommandFilter    = "filter"
	CommandWords     = "words"
	CommandSentences = "sentences"
	CommandVerbs     = "verbs"
	CommandExport    = "export"
	CommandModels    = "models"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags, run Runner) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "palavra",
		Short: "Portuguese-English Anki Flashcard Generator",
		Long: `palavra turns a spreadsheet export of English/Portuguese word pairs
into Anki flashcards with audio.

It filters the word list, generates example sentences and verb
conjugations with a language model, and speaks everything with a
text-to-speech provider.

Examples:
  palavra filter --input "PT 2-6.csv"    # Merge new pairs into filtered.csv
  palavra words --input "PT 2-6.csv"     # Word cards with audio
  palavra sentences --list-size 50       # Sentence cards for 50 random words
  palavra verbs                          # Present/past/future conjugation cards
  palavra export sentences.csv           # Package cards and audio as .apkg`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			SetupLogging(flags.Debug)
		},
	}

	setupPersistentFlags(rootCmd, flags)

	commands := []*cobra.Command{
		{
			Use:   CommandFilter,
			Short: "Filter a word list export into the master list",
			Args:  cobra.NoArgs,
		},
		{
			Use:   CommandWords,
			Short: "Create word cards with English and Portuguese audio",
			Args:  cobra.NoArgs,
		},
		{
			Use:   CommandSentences,
			Short: "Generate example sentences with audio for random master list words",
			Args:  cobra.NoArgs,
		},
		{
			Use:   CommandVerbs,
			Short: "Generate present, past and future conjugation cards for verbs",
			Args:  cobra.NoArgs,
		},
		{
			Use:   CommandExport + " <cards.csv>",
			Short: "Package a flashcard file and its audio as an Anki .apkg",
			Args:  cobra.ExactArgs(1),
		},
		{
			Use:   CommandModels,
			Short: "List available OpenAI models for the current API key",
			Args:  cobra.NoArgs,
		},
	}

	for _, cmd := range commands {
		bindings := setupCommandFlags(cmd, flags)
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			// filter and words share flag fields, so viper keys are
			// bound only for the command that actually runs.
			bindPFlags(cmd.Flags().Lookup, bindings)

			cfg, err := BuildConfig(flags)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.Name(), cfg, args)
		}
		rootCmd.AddCommand(cmd)
	}

	return rootCmd
}

func setupPersistentFlags(cmd *cobra.Command, flags *Flags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.palavra.yaml)")
	pf.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	pf.StringVarP(&flags.OutputDir, "output-dir", "o", flags.OutputDir, "Directory for flashcard files and audio")
	pf.StringVar(&flags.Master, "master", "", "Master word list (default is <output-dir>/filtered.csv)")
	pf.BoolVar(&flags.Archive, "archive", false, "Move existing flashcard files to <output-dir>/archive before writing")
	pf.BoolVar(&flags.Overwrite, "overwrite", false, "Truncate flashcard files instead of appending")

	pf.StringVar(&flags.Backend, "llm", flags.Backend, "Text generation backend: openai or gemini")
	pf.StringVar(&flags.Model, "model", flags.Model, "Text generation model")
	pf.IntVar(&flags.BatchSize, "batch-size", flags.BatchSize, "Words per generation request")
	pf.DurationVar(&flags.BatchPause, "batch-pause", flags.BatchPause, "Pause between generation requests")
	pf.StringVar(&flags.FallbackProvider, "fallback-provider", "", "Audio provider used when the primary one fails (e.g. espeak)")

	pf.StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, nova, sage, ...")
	pf.Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")
	pf.StringVar(&flags.GoogleVoice, "google-voice", flags.GoogleVoice, "Google Cloud voice for Portuguese")
	pf.Float64Var(&flags.GoogleSpeakingRate, "google-rate", flags.GoogleSpeakingRate, "Google Cloud speaking rate for Portuguese")
	pf.StringVar(&flags.GTTSTLD, "gtts-tld", "", "gTTS host domain, e.g. com.br")

	bindPFlags(pf.Lookup, map[string]string{
		"output.directory":      "output-dir",
		"output.master":         "master",
		"output.overwrite":      "overwrite",
		"generator.backend":     "llm",
		"generator.model":       "model",
		"generator.batch_size":  "batch-size",
		"generator.batch_pause": "batch-pause",
		"audio.fallback":        "fallback-provider",
		"audio.openai_voice":    "openai-voice",
		"audio.openai_speed":    "openai-speed",
		"audio.google_voice":    "google-voice",
		"audio.google_rate":     "google-rate",
		"audio.gtts_tld":        "gtts-tld",
	})
}

// setupCommandFlags defines the flags of a subcommand and returns their
// viper keys
func setupCommandFlags(cmd *cobra.Command, flags *Flags) map[string]string {
	f := cmd.Flags()
	bindings := make(map[string]string)

	switch cmd.Name() {
	case CommandFilter, CommandWords:
		f.StringVarP(&flags.Input, "input", "i", "", "Word list export (two columns: English, Portuguese)")
		f.BoolVar(&flags.SkipHeader, "skip-header", flags.SkipHeader, "Skip the first row of the input")
		f.StringVar(&flags.Rule, "rule", flags.Rule, "Exclude title-cased pairs when both or either side is title-cased")
		cmd.MarkFlagRequired("input")
		addBindings(bindings, map[string]string{
			"filter.skip_header": "skip-header",
			"filter.rule":        "rule",
		})
		if cmd.Name() == CommandWords {
			f.StringVar(&flags.WordsENProvider, "en-provider", flags.WordsENProvider, "Audio provider for English words")
			f.StringVar(&flags.WordsPTProvider, "pt-provider", flags.WordsPTProvider, "Audio provider for Portuguese words")
			addBindings(bindings, map[string]string{
				"words.en_provider": "en-provider",
				"words.pt_provider": "pt-provider",
			})
		}
	case CommandSentences:
		f.IntVar(&flags.ListSize, "list-size", flags.ListSize, "Random words to draw from the master list")
		f.IntVar(&flags.MaxRetries, "max-retries", flags.MaxRetries, "Extra requests per batch for words still missing")
		f.DurationVar(&flags.RetryPause, "retry-pause", flags.RetryPause, "Pause before each retry")
		f.BoolVar(&flags.NoFallback, "no-fallback", false, "Do not search generated sentences for words the model did not echo")
		f.BoolVar(&flags.KeepInfinitive, "keep-infinitive", false, "Keep the leading \"to \" of English verbs in prompts")
		f.StringVar(&flags.SentencesENProvider, "en-provider", flags.SentencesENProvider, "Audio provider for English sentences")
		f.StringVar(&flags.SentencesPTProvider, "pt-provider", flags.SentencesPTProvider, "Audio provider for Portuguese sentences")
		addBindings(bindings, map[string]string{
			"sentences.list_size":   "list-size",
			"sentences.max_retries": "max-retries",
			"sentences.retry_pause": "retry-pause",
			"sentences.en_provider": "en-provider",
			"sentences.pt_provider": "pt-provider",
		})
	case CommandVerbs:
		f.IntVar(&flags.MaxBatches, "max-batches", flags.MaxBatches, "Stop after this many requests (0 = no limit)")
		f.StringVar(&flags.VerbsProvider, "provider", flags.VerbsProvider, "Audio provider for conjugations")
		addBindings(bindings, map[string]string{
			"verbs.max_batches": "max-batches",
			"verbs.provider":    "provider",
		})
	case CommandExport:
		f.StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
		f.StringVar(&flags.ExportOutput, "output", "", "Output .apkg file (default is the cards file with .apkg extension)")
		addBindings(bindings, map[string]string{
			"export.deck_name": "deck-name",
		})
	}

	return bindings
}

func addBindings(dst, src map[string]string) {
	for key, name := range src {
		dst[key] = name
	}
}

func bindPFlags(lookup func(string) *pflag.Flag, keys map[string]string) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, lookup(name)); err != nil {
			log.Warn("failed to bind flag", "flag", name, "error", err)
		}
	}
}

// InitConfig loads a .env file and the viper configuration
func InitConfig(cfgFile string) {
	// A missing .env file is normal.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("could not load .env file", "error", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")

		scope := gap.NewScope(gap.User, "palavra")
		if dirs, err := scope.ConfigDirs(); err == nil {
			for _, dir := range dirs {
				viper.AddConfigPath(dir)
			}
		}
		if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
			viper.AddConfigPath(filepath.Join(c, "palavra"))
		}

		viper.SetConfigType("yaml")
		viper.SetConfigName(".palavra")
	}

	viper.SetEnvPrefix("PALAVRA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("could not parse configuration file", "error", err)
		}
		return
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
}
