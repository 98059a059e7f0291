package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellquest/internal/history"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		store, err := history.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		results, err := store.LoadAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No rounds recorded yet. Run `spellquest play` to start.")
			return nil
		}

		st := history.Summarize(results)
		fmt.Printf("Rounds played:    %d\n", st.Games)
		fmt.Printf("Words answered:   %d (%d correct, %d missed)\n", st.Questions, st.Correct, st.Incorrect)
		fmt.Printf("Average score:    %d%%\n", st.AverageScore)
		fmt.Printf("Best score:       %d%%\n", st.BestScore)
		fmt.Printf("Best streak:      %d\n", st.BestStreak)
		fmt.Printf("Perfect rounds:   %d\n", st.PerfectRounds)
		fmt.Printf("Time spent:       %dm %ds\n", st.TotalPlaySecs/60, st.TotalPlaySecs%60)
		if st.PendingSync > 0 {
			fmt.Printf("Unsynced rounds:  %d (run `spellquest sync`)\n", st.PendingSync)
		}
		return nil
	},
}
