package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackwell-systems/textstat/internal/config"
	"github.com/blackwell-systems/textstat/internal/output"
)

var (
	dbPath    string
	cfgDir    string
	colorMode string

	// settings holds the merged config file, TEXTSTAT_* environment and
	// persistent flags for the current invocation.
	settings = viper.New()

	// RootCmd is the root command for textstat
	RootCmd = &cobra.Command{
		Use:   "textstat",
		Short: "Word, character and sentence statistics for text",
		Long: `textstat counts words, characters and sentences and tabulates word
frequencies for files, stdin or inline text.

Counting rules:
  • Words are runs of non-whitespace characters
  • Characters include every character; --no-spaces drops only ASCII spaces
  • Sentences are the non-blank fragments between '.' characters
  • Word frequencies are case-insensitive

Reports can be saved to a local history database and a file can be watched
so that every save is re-analyzed.

Examples:
  # Analyze a file
  textstat analyze notes.txt

  # Count words from stdin
  cat notes.txt | textstat analyze --metric words

  # Show the 20 most frequent words
  textstat freq notes.txt --top 20

  # Save a report and list saved reports
  textstat analyze notes.txt --save
  textstat history

  # Re-analyze a file every time it changes
  textstat watch notes.txt`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initSettings,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "textstat: word, character and sentence statistics")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run 'textstat analyze FILE' to get started.")
			fmt.Fprintln(out, "Run 'textstat --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "history database path (default: ~/.textstat/textstat.db)")
	RootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default: ~/.config/textstat)")
	RootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "color output: auto, always or never")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(analyzeCmd)
	RootCmd.AddCommand(freqCmd)
	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(watchCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// initSettings layers the config file, TEXTSTAT_* environment variables and
// persistent flags into settings, lowest precedence first.
func initSettings(cmd *cobra.Command, args []string) error {
	dir := cfgDir
	if dir == "" {
		d, err := config.Dir()
		if err != nil {
			return fmt.Errorf("failed to locate config directory: %w", err)
		}
		dir = d
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetDefault("top_words", cfg.TopWords)
	v.SetDefault("include_spaces", cfg.IncludeSpaces)
	v.SetDefault("color", cfg.Color)
	v.SetDefault("db", cfg.DBPath)

	v.SetEnvPrefix("TEXTSTAT")
	v.AutomaticEnv()

	if err := v.BindPFlag("db", cmd.Root().PersistentFlags().Lookup("db")); err != nil {
		return fmt.Errorf("failed to bind --db: %w", err)
	}
	if err := v.BindPFlag("color", cmd.Root().PersistentFlags().Lookup("color")); err != nil {
		return fmt.Errorf("failed to bind --color: %w", err)
	}

	merged := &config.Config{
		TopWords:      v.GetInt("top_words"),
		IncludeSpaces: v.GetBool("include_spaces"),
		Color:         v.GetString("color"),
		DBPath:        v.GetString("db"),
	}
	if err := merged.Validate(); err != nil {
		return err
	}

	output.SetColorMode(merged.Color)
	settings = v
	return nil
}

// getDBPath returns the database path, using the flag, environment or config
// value, or the default under ~/.textstat.
func getDBPath() (string, error) {
	if p := settings.GetString("db"); p != "" {
		return p, nil
	}

	dir, err := getDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "textstat.db"), nil
}

// getDataDir returns ~/.textstat, creating it if needed.
func getDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".textstat")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create textstat directory: %w", err)
	}

	return dir, nil
}

// getDefaultPIDFile returns the default PID file path
func getDefaultPIDFile() (string, error) {
	dir, err := getDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.pid"), nil
}

// getDefaultLogFile returns the default log file path
func getDefaultLogFile() (string, error) {
	dir, err := getDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.log"), nil
}
