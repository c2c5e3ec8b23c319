package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"recipebox/internal/app"
	"recipebox/internal/config"
	"recipebox/internal/logger"
)

var (
	verbose bool

	// newApp opens the application for commands that need it.
	newApp = func(ctx context.Context) (*app.App, error) {
		cfg, err := config.NewFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		level := cfg.LogLevel
		if verbose {
			level = "DEBUG"
		}
		logger.Setup(level, cfg.LogFormat)
		return app.New(ctx, cfg)
	}
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "recipebox",
	Short: "Recipe library, shopping lists and shop orders",
	Long: `recipebox manages a recipe library with semantic search, consolidated
shopping lists and small shop storefronts.

Configuration is read from the environment (and a .env file when present).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(shoppingListCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(metricsCleanupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withApp opens the application, runs fn and closes it again.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("Failed to close application", "error", err)
		}
	}()

	return fn(ctx, a)
}
