package cmd

import (
	"fmt"

	"github.com/saisha/letterly/internal/app"
	"github.com/saisha/letterly/internal/catalog"
	"github.com/saisha/letterly/internal/progress"
	"github.com/saisha/letterly/internal/rewards"
	"github.com/saisha/letterly/internal/store"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start practicing letters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func runPlay(cmd *cobra.Command) error {
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

	cat, err := loadCatalog(cmd)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	learner, _ := cmd.Flags().GetString("learner")
	locale, _ := cmd.Flags().GetString("locale")

	svc, err := progress.Load(ctx, learner, rewards.DefaultCatalog(), st.ProgressRepo(), st.EventRepo())
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	return app.Run(svc, cat, st.EventRepo(), locale)
}

// loadCatalog uses the --content pack when given, the embedded alphabet
// pack otherwise. Lessons run one at a time in the app, so the catalog
// keeps order-sequence questions.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	if p, _ := cmd.Flags().GetString("content"); p != "" {
		return catalog.Load(p, catalog.ModeSingle)
	}
	return catalog.Default(catalog.ModeSingle)
}
