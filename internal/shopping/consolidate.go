package shopping

import (
	"strings"

	"recipebox/internal/recipe"
)

// RecipeItem is one ingredient line of one recipe, kept unmerged so a
// shopper can tick it off per recipe.
type RecipeItem struct {
	RecipeID string  `json:"recipe_id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Checked  bool    `json:"checked"`
}

// ConsolidatedItem is the merged total of every line sharing a name and unit.
// Ingredient and Unit come from the first contributing line. Recipes lists the
// contributing recipe ids in input order, one entry per line.
type ConsolidatedItem struct {
	Ingredient    string   `json:"ingredient"`
	TotalQuantity float64  `json:"total_quantity"`
	Unit          string   `json:"unit"`
	Recipes       []string `json:"recipes"`
	Checked       bool     `json:"checked"`
}

// Result is the output of Consolidate.
type Result struct {
	RecipeItems       []RecipeItem       `json:"recipe_items"`
	ConsolidatedItems []ConsolidatedItem `json:"consolidated_items"`
}

// GroupKey identifies the consolidation bucket of an ingredient line.
// Names compare case-insensitively after trimming; units compare exactly.
func GroupKey(name, unit string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "-" + unit
}

// Consolidate flattens the ingredient lines of recipes into per-recipe items
// and merges lines with the same GroupKey into consolidated items.
//
// Groups appear in the order their key was first seen. Quantities are summed
// in input order, and non-finite quantities count as 0. The function is pure;
// it never fails and never returns nil slices.
func Consolidate(recipes []recipe.Recipe) Result {
	res := Result{
		RecipeItems:       []RecipeItem{},
		ConsolidatedItems: []ConsolidatedItem{},
	}
	index := make(map[string]int)

	for _, r := range recipes {
		for _, line := range r.Ingredients {
			qty := line.Quantity.Float()

			res.RecipeItems = append(res.RecipeItems, RecipeItem{
				RecipeID: r.ID,
				Name:     line.Name,
				Quantity: qty,
				Unit:     line.Unit,
			})

			key := GroupKey(line.Name, line.Unit)
			if i, ok := index[key]; ok {
				item := &res.ConsolidatedItems[i]
				item.TotalQuantity += qty
				item.Recipes = append(item.Recipes, r.ID)
				continue
			}

			index[key] = len(res.ConsolidatedItems)
			res.ConsolidatedItems = append(res.ConsolidatedItems, ConsolidatedItem{
				Ingredient:    line.Name,
				TotalQuantity: qty,
				Unit:          line.Unit,
				Recipes:       []string{r.ID},
			})
		}
	}

	return res
}
