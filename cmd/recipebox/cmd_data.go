package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"recipebox/internal/app"
)

// seedCmd loads recipes from a YAML file
var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load recipes from a YAML file",
	Long: `Load recipes from a YAML file with a top-level "recipes" list.
Seeding is idempotent: recipes are keyed by id, or by a slug of the title.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

// backupCmd writes recipe JSON backups
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write every recipe to the backup directory",
	Args:  cobra.NoArgs,
	RunE:  runBackup,
}

// restoreCmd reloads recipe JSON backups
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Load recipes from the backup directory",
	Args:  cobra.NoArgs,
	RunE:  runRestore,
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		n, err := a.SeedFromYAML(ctx, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d recipes\n", n)
		return nil
	})
}

func runBackup(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		n, err := a.Backup(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d recipes to %s\n", n, a.Config().BackupPath)
		return nil
	})
}

func runRestore(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		n, err := a.Restore(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d recipes\n", n)
		return nil
	})
}
