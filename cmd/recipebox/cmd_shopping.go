package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"recipebox/internal/app"
	"recipebox/internal/shopping"
)

var (
	listUser string
	listName string
)

// shoppingListCmd consolidates recipes into a shopping list
var shoppingListCmd = &cobra.Command{
	Use:   "shopping-list <recipe-id>...",
	Short: "Consolidate recipe ingredients into a shopping list",
	Long: `Print the consolidated ingredients of the given recipes. Repeating an id
counts the recipe twice. With --user the list is also saved for that user.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShoppingList,
}

func init() {
	shoppingListCmd.Flags().StringVar(&listUser, "user", "", "Save the list for this user")
	shoppingListCmd.Flags().StringVar(&listName, "name", "", "Name of the saved list")
}

func runShoppingList(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		out := cmd.OutOrStdout()

		if listUser == "" {
			res, err := a.Shopping.Preview(ctx, args)
			if err != nil {
				return err
			}
			printConsolidated(out, res.ConsolidatedItems)
			return nil
		}

		list, err := a.Shopping.Generate(ctx, listUser, listName, args)
		if err != nil {
			return err
		}
		printConsolidated(out, list.ConsolidatedItems)
		fmt.Fprintf(out, "Saved as %s\n", list.ID)
		return nil
	})
}

func printConsolidated(w io.Writer, items []shopping.ConsolidatedItem) {
	for _, item := range items {
		qty := strconv.FormatFloat(item.TotalQuantity, 'f', -1, 64)
		if item.Unit != "" {
			qty += " " + item.Unit
		}
		fmt.Fprintf(w, "- %s: %s", item.Ingredient, qty)
		if n := len(item.Recipes); n > 1 {
			fmt.Fprintf(w, " (%d recipes)", n)
		}
		fmt.Fprintln(w)
	}
}
