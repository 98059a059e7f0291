package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellquest/internal/history"
	"github.com/abhisek/spellquest/internal/remote"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push locally queued rounds to the shared record",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := setupLogging(cmd, cfg, false)

		if cfg.Postgres.URL == "" {
			return errors.New("no postgres URL configured; set postgres.url in the config file")
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		store, err := history.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		rem, err := remote.Open(cfg.Postgres.URL)
		if err != nil {
			return fmt.Errorf("connect to remote: %w", err)
		}
		defer rem.Close()

		ctx := cmd.Context()
		if err := rem.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate remote schema: %w", err)
		}

		recorder := history.NewRecorder(store, rem, log)
		n, err := recorder.SyncPending(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("Nothing to sync.")
			return nil
		}
		fmt.Printf("Synced %d round(s).\n", n)
		return nil
	},
}
