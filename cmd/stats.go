package cmd

import (
	"fmt"

	"github.com/saisha/letterly/internal/progress"
	"github.com/saisha/letterly/internal/rewards"
	"github.com/saisha/letterly/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		learner, _ := cmd.Flags().GetString("learner")
		svc, err := progress.Load(ctx, learner, rewards.DefaultCatalog(), st.ProgressRepo(), st.EventRepo())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		stats := svc.Stats()
		fmt.Printf("Learner:          %s\n", svc.LearnerID())
		fmt.Printf("Quizzes answered: %d\n", stats.TotalQuizzesCompleted)
		fmt.Printf("Average accuracy: %.0f%%\n", stats.AverageAccuracy)
		fmt.Printf("Total points:     %d\n", svc.TotalPoints())
		fmt.Printf("Badges earned:    %d\n", len(svc.Badges()))
		fmt.Printf("Daily streak:     %d (best %d)\n", stats.CurrentStreak, stats.BestStreak)
		if !stats.LastActive.IsZero() {
			fmt.Printf("Last active:      %s\n", stats.LastActive.Format("Jan 2, 2006"))
		}

		totals, err := st.EventRepo().AnswerTotals(ctx)
		if err != nil {
			return fmt.Errorf("load answer totals: %w", err)
		}
		if len(totals) > 0 {
			fmt.Println("\nPer letter:")
			for _, t := range totals {
				pct := 0.0
				if t.Attempts > 0 {
					pct = float64(t.Correct) / float64(t.Attempts) * 100
				}
				fmt.Printf("  %-12s %3d/%3d correct (%.0f%%)\n", t.SkillID, t.Correct, t.Attempts, pct)
			}
		}
		return nil
	},
}
