package cmd

import (
	"github.com/saisha/letterly/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "letterly",
	Short: "Letter learning tutor for kids",
	Long:  "Letterly — a terminal app that helps young children learn their letters through playful quizzes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LETTERLY_DB env var)")
	rootCmd.PersistentFlags().String("learner", "default", "Learner profile to load")
	rootCmd.PersistentFlags().String("content", "", "Path to a custom content pack (JSON)")
	rootCmd.PersistentFlags().String("locale", "en", "Preferred locale for question text")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LETTERLY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
