package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellquest/internal/config"
	"github.com/abhisek/spellquest/internal/history"
	"github.com/abhisek/spellquest/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "spellquest",
	Short: "Spelling bee quizzes for kids",
	Long:  "SpellQuest is a terminal spelling bee that helps children practice words, beat the clock, and collect badges.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SPELLQUEST_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides SPELLQUEST_CONFIG env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then SPELLQUEST_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return history.DefaultDBPath()
}

// loadConfig reads the config file named by --config, the env var, or
// the default location. A missing file yields a zero config.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	return config.Load(path)
}

// setupLogging installs the default slog logger. The interactive quiz
// takes over the terminal, so logs are discarded unless --verbose
// keeps them on stderr.
func setupLogging(cmd *cobra.Command, cfg config.Config, interactive bool) *slog.Logger {
	level := logging.ParseLevel(cfg.Log.Level)
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if interactive && !verbose {
		out = io.Discard
	}
	return logging.Setup(out, level)
}
