package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"recipebox/internal/domain"
	"recipebox/internal/shopping/shoppingdb"
)

// Repository handles persistence of shopping lists.
type Repository struct {
	queries *shoppingdb.Queries
}

// NewRepository creates a new shopping list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: shoppingdb.New(d),
	}
}

// Create stores a new shopping list.
func (r *Repository) Create(ctx context.Context, list ShoppingList) error {
	ids, recipeItems, consolidated, err := encodeCollections(list.RecipeIDs, list.RecipeItems, list.ConsolidatedItems)
	if err != nil {
		return err
	}

	err = r.queries.InsertShoppingList(ctx, shoppingdb.InsertShoppingListParams{
		ID:                list.ID,
		UserID:            list.UserID,
		Name:              list.Name,
		RecipeIds:         ids,
		RecipeItems:       recipeItems,
		ConsolidatedItems: consolidated,
		CreatedAt:         list.CreatedAt.UTC(),
		UpdatedAt:         list.UpdatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to insert shopping list: %w", err)
	}
	return nil
}

// ReplaceItems overwrites the recipe ids and both item collections of a list
// in a single statement, so readers never observe a half-updated list.
func (r *Repository) ReplaceItems(ctx context.Context, id string, recipeIDs []string, res Result, updatedAt time.Time) error {
	ids, recipeItems, consolidated, err := encodeCollections(recipeIDs, res.RecipeItems, res.ConsolidatedItems)
	if err != nil {
		return err
	}

	n, err := r.queries.ReplaceShoppingListItems(ctx, shoppingdb.ReplaceShoppingListItemsParams{
		RecipeIds:         ids,
		RecipeItems:       recipeItems,
		ConsolidatedItems: consolidated,
		UpdatedAt:         updatedAt.UTC(),
		ID:                id,
	})
	if err != nil {
		return fmt.Errorf("failed to replace shopping list items: %w", err)
	}
	if n == 0 {
		return domain.ErrShoppingListNotFound
	}
	return nil
}

// SetChecked flips the checked flag of one item in place. An index outside
// the collection reports ErrInvalidInput.
func (r *Repository) SetChecked(ctx context.Context, id string, kind ItemKind, index int, checked bool) error {
	now := time.Now().UTC()

	var (
		n   int64
		err error
	)
	switch kind {
	case KindConsolidated:
		n, err = r.queries.SetConsolidatedItemChecked(ctx, shoppingdb.SetConsolidatedItemCheckedParams{
			ItemIndex: int64(index),
			Checked:   checked,
			UpdatedAt: now,
			ID:        id,
		})
	case KindRecipe:
		n, err = r.queries.SetRecipeItemChecked(ctx, shoppingdb.SetRecipeItemCheckedParams{
			ItemIndex: int64(index),
			Checked:   checked,
			UpdatedAt: now,
			ID:        id,
		})
	default:
		return fmt.Errorf("%w: unknown item kind %q", domain.ErrInvalidInput, kind)
	}
	if err != nil {
		return fmt.Errorf("failed to update checked flag: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: item index %d out of range", domain.ErrInvalidInput, index)
	}
	return nil
}

// Get retrieves a shopping list by id.
func (r *Repository) Get(ctx context.Context, id string) (*ShoppingList, error) {
	row, err := r.queries.GetShoppingList(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrShoppingListNotFound
		}
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	list, err := fromRow(row)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ListByUser retrieves a user's shopping lists, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]ShoppingList, error) {
	rows, err := r.queries.ListShoppingListsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}

	lists := make([]ShoppingList, 0, len(rows))
	for _, row := range rows {
		list, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, nil
}

// Delete removes a shopping list.
func (r *Repository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteShoppingList(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	if n == 0 {
		return domain.ErrShoppingListNotFound
	}
	return nil
}

func encodeCollections(recipeIDs []string, recipeItems []RecipeItem, consolidated []ConsolidatedItem) (string, string, string, error) {
	if recipeIDs == nil {
		recipeIDs = []string{}
	}
	if recipeItems == nil {
		recipeItems = []RecipeItem{}
	}
	if consolidated == nil {
		consolidated = []ConsolidatedItem{}
	}

	ids, err := json.Marshal(recipeIDs)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal recipe ids: %w", err)
	}
	items, err := json.Marshal(recipeItems)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal recipe items: %w", err)
	}
	merged, err := json.Marshal(consolidated)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal consolidated items: %w", err)
	}
	return string(ids), string(items), string(merged), nil
}

func fromRow(row shoppingdb.ShoppingList) (ShoppingList, error) {
	list := ShoppingList{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.RecipeIds), &list.RecipeIDs); err != nil {
		return ShoppingList{}, fmt.Errorf("failed to unmarshal recipe ids of list %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.RecipeItems), &list.RecipeItems); err != nil {
		return ShoppingList{}, fmt.Errorf("failed to unmarshal recipe items of list %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.ConsolidatedItems), &list.ConsolidatedItems); err != nil {
		return ShoppingList{}, fmt.Errorf("failed to unmarshal consolidated items of list %s: %w", row.ID, err)
	}
	return list, nil
}
