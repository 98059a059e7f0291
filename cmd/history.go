package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellquest/internal/history"
	"github.com/abhisek/spellquest/internal/remote"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded rounds, merged with the shared record when available",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := setupLogging(cmd, cfg, false)

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		store, err := history.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		ctx := cmd.Context()
		results, err := store.LoadAll(ctx)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		offline := false
		if cfg.Postgres.URL != "" {
			prefs, err := store.LoadPreferences(ctx)
			if err == nil && prefs != nil && prefs.UserID != "" {
				if rem, err := remote.Open(cfg.Postgres.URL); err == nil {
					if fetched, err := rem.FetchHistory(ctx, prefs.UserID); err == nil {
						results = history.MergeWithRemote(results, fetched)
					} else {
						log.Warn("fetching remote history failed", "error", err)
						offline = true
					}
					rem.Close()
				} else {
					log.Warn("connecting to remote failed", "error", err)
					offline = true
				}
			}
		}

		if len(results) == 0 {
			fmt.Println("No rounds recorded yet. Run `spellquest play` to start.")
			return nil
		}

		fmt.Printf("%-16s %6s %8s %-8s %-16s\n", "Date", "Score", "Words", "Level", "Challenge")
		for _, r := range results {
			date := r.CreatedAt
			if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
				date = t.Local().Format("Jan 02 15:04")
			}
			challenge := r.Settings.ChallengeMode
			if challenge == "" {
				challenge = "-"
			}
			mark := " "
			if r.PendingSync {
				mark = "●"
			}
			fmt.Printf("%-16s %5d%% %4d/%-3d %-8s %-16s %s\n",
				date, r.Score, r.CorrectAnswers, r.TotalQuestions,
				string(r.Settings.Difficulty), challenge, mark)
		}
		if offline {
			fmt.Println("\nShared record unreachable; showing local rounds only.")
		}
		return nil
	},
}
