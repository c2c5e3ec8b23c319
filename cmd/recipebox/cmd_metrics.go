package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"recipebox/internal/app"
)

var cleanupDays int

// metricsCleanupCmd prunes old LLM execution metrics
var metricsCleanupCmd = &cobra.Command{
	Use:   "metrics-cleanup",
	Short: "Remove old metric records",
	Args:  cobra.NoArgs,
	RunE:  runMetricsCleanup,
}

func init() {
	metricsCleanupCmd.Flags().IntVar(&cleanupDays, "days", 30, "Keep records for the last N days")
}

func runMetricsCleanup(cmd *cobra.Command, args []string) error {
	if cleanupDays < 0 {
		return fmt.Errorf("--days must not be negative")
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		affected, err := a.Metrics.Cleanup(ctx, cleanupDays)
		if err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d old metric records\n", affected)
		return nil
	})
}
