package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"recipebox/internal/app"
)

// ingestCmd pulls recipes from the Ghost blog
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch and normalize recipes from Ghost",
	Long: `Fetch every post from the configured Ghost blog and extract it into a
recipe. Posts that have not changed since the last run are skipped.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		report, err := a.IngestFromGhost(ctx)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d posts: %d imported, %d unchanged, %d failed\n",
			report.Fetched, report.Imported, report.Skipped, report.Failed)
		return nil
	})
}
