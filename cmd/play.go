package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellquest/internal/app"
	"github.com/abhisek/spellquest/internal/history"
	"github.com/abhisek/spellquest/internal/remote"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a spelling quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the stores and launches the interactive quiz. The
// remote record is optional; without it rounds queue locally until a
// sync.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := setupLogging(cmd, cfg, true)

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	store, err := history.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	var rem *remote.Store
	if cfg.Postgres.URL != "" {
		r, err := remote.Open(cfg.Postgres.URL)
		if err != nil {
			log.Warn("remote record unavailable", "error", err)
		} else {
			if err := r.Migrate(cmd.Context()); err != nil {
				log.Warn("remote migration failed", "error", err)
				r.Close()
			} else {
				rem = r
				defer rem.Close()
			}
		}
	}

	recorder := newRecorder(store, rem, log)

	playerName := cfg.Player.Name
	if playerName == "" {
		if prefs, err := store.LoadPreferences(context.Background()); err == nil {
			playerName = prefs.UserName
		}
	}

	return app.Run(app.Options{
		Store:      store,
		Recorder:   recorder,
		Remote:     rem,
		PlayerName: playerName,
		Logger:     log,
	})
}

// newRecorder avoids handing the recorder a typed-nil RemoteStore when
// no remote is configured.
func newRecorder(store *history.Store, rem *remote.Store, log *slog.Logger) *history.Recorder {
	if rem == nil {
		return history.NewRecorder(store, nil, log)
	}
	return history.NewRecorder(store, rem, log)
}
