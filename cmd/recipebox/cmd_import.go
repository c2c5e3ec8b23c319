package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"recipebox/internal/app"
	"recipebox/internal/domain"
)

var importUser string

// importCmd clips a single recipe page
var importCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Import a recipe from a web page",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importUser, "user", "", "Owner of the imported recipe")
}

func runImport(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if a.Clipper == nil {
			return fmt.Errorf("%w: set GROQ_API_KEY or GEMINI_API_KEY", domain.ErrSuggestionsDisabled)
		}

		res, err := a.Clipper.ImportURL(ctx, importUser, args[0])
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %q as %s (%d ingredients)\n", res.Recipe.Title, res.Recipe.ID, len(res.Recipe.Ingredients))
		if res.Post != nil {
			fmt.Fprintf(out, "Published to %s\n", res.Post.URL)
		}
		return nil
	})
}
