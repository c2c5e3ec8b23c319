package shopping

import "time"

// ShoppingList is a persisted consolidation of one or more recipes.
type ShoppingList struct {
	ID                string             `json:"id"`
	UserID            string             `json:"user_id"`
	Name              string             `json:"name"`
	RecipeIDs         []string           `json:"recipe_ids"`
	RecipeItems       []RecipeItem       `json:"recipe_items"`
	ConsolidatedItems []ConsolidatedItem `json:"consolidated_items"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// ItemKind selects which collection of a list a checked toggle applies to.
type ItemKind string

const (
	KindConsolidated ItemKind = "consolidated"
	KindRecipe       ItemKind = "recipe"
)
