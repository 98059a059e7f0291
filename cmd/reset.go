package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellquest/internal/history"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete saved rounds and preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Println("This deletes all local rounds and preferences. Re-run with --yes to confirm.")
			return nil
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

		ctx := cmd.Context()
		if err := store.ClearHistory(ctx); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		if err := store.ClearPreferences(ctx); err != nil {
			return fmt.Errorf("clear preferences: %w", err)
		}
		fmt.Println("Local data cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
