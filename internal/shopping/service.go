package shopping

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"recipebox/internal/domain"
	"recipebox/internal/logger"
	"recipebox/internal/metrics"
	"recipebox/internal/recipe"
)

// RecipeSource resolves recipe ids in order, repeats included.
type RecipeSource interface {
	GetMany(ctx context.Context, ids []string) ([]recipe.Recipe, error)
}

// Service builds and maintains users' shopping lists.
type Service struct {
	repo    *Repository
	recipes RecipeSource
}

// NewService creates a shopping Service.
func NewService(repo *Repository, recipes RecipeSource) *Service {
	return &Service{repo: repo, recipes: recipes}
}

// Preview consolidates recipes without storing anything. Totals that
// overflow a float64 are rejected.
func (s *Service) Preview(ctx context.Context, recipeIDs []string) (Result, error) {
	recipes, err := s.recipes.GetMany(ctx, recipeIDs)
	if err != nil {
		return Result{}, err
	}
	res := Consolidate(recipes)
	for _, item := range res.ConsolidatedItems {
		if math.IsInf(item.TotalQuantity, 0) {
			return Result{}, fmt.Errorf("%w: total quantity of %s is out of range", domain.ErrInvalidInput, item.Ingredient)
		}
	}
	return res, nil
}

// Generate consolidates the given recipes into a new list owned by userID.
func (s *Service) Generate(ctx context.Context, userID, name string, recipeIDs []string) (ShoppingList, error) {
	res, err := s.Preview(ctx, recipeIDs)
	if err != nil {
		return ShoppingList{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Shopping list"
	}

	now := time.Now().UTC()
	list := ShoppingList{
		ID:                uuid.NewString(),
		UserID:            userID,
		Name:              name,
		RecipeIDs:         slices.Clone(recipeIDs),
		RecipeItems:       res.RecipeItems,
		ConsolidatedItems: res.ConsolidatedItems,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if list.RecipeIDs == nil {
		list.RecipeIDs = []string{}
	}

	if err := s.repo.Create(ctx, list); err != nil {
		return ShoppingList{}, err
	}
	observe(res)

	logger.FromContext(ctx).Info("Shopping list generated",
		"list_id", list.ID, "recipes", len(recipeIDs), "items", len(res.ConsolidatedItems))
	return list, nil
}

// Regenerate rebuilds both item collections of an existing list from
// recipeIDs, or from the list's current recipes when recipeIDs is nil.
// Checked flags are reset.
func (s *Service) Regenerate(ctx context.Context, userID, listID string, recipeIDs []string) (ShoppingList, error) {
	list, err := s.Get(ctx, userID, listID)
	if err != nil {
		return ShoppingList{}, err
	}
	if recipeIDs == nil {
		recipeIDs = list.RecipeIDs
	}

	res, err := s.Preview(ctx, recipeIDs)
	if err != nil {
		return ShoppingList{}, err
	}

	if err := s.repo.ReplaceItems(ctx, listID, recipeIDs, res, time.Now().UTC()); err != nil {
		return ShoppingList{}, err
	}
	observe(res)

	return s.Get(ctx, userID, listID)
}

// SetChecked ticks or unticks one item of a list owned by userID.
func (s *Service) SetChecked(ctx context.Context, userID, listID string, kind ItemKind, index int, checked bool) (ShoppingList, error) {
	if _, err := s.Get(ctx, userID, listID); err != nil {
		return ShoppingList{}, err
	}
	if err := s.repo.SetChecked(ctx, listID, kind, index, checked); err != nil {
		return ShoppingList{}, err
	}
	return s.Get(ctx, userID, listID)
}

// SetConsolidatedChecked ticks or unticks one consolidated item.
func (s *Service) SetConsolidatedChecked(ctx context.Context, userID, listID string, index int, checked bool) (ShoppingList, error) {
	return s.SetChecked(ctx, userID, listID, KindConsolidated, index, checked)
}

// SetRecipeItemChecked ticks or unticks one per-recipe item.
func (s *Service) SetRecipeItemChecked(ctx context.Context, userID, listID string, index int, checked bool) (ShoppingList, error) {
	return s.SetChecked(ctx, userID, listID, KindRecipe, index, checked)
}

// Get returns a list owned by userID.
func (s *Service) Get(ctx context.Context, userID, listID string) (ShoppingList, error) {
	list, err := s.repo.Get(ctx, listID)
	if err != nil {
		return ShoppingList{}, err
	}
	if list.UserID != userID {
		return ShoppingList{}, fmt.Errorf("%w: shopping list belongs to another user", domain.ErrForbidden)
	}
	return *list, nil
}

// ListByUser returns the user's lists, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]ShoppingList, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes a list owned by userID.
func (s *Service) Delete(ctx context.Context, userID, listID string) error {
	if _, err := s.Get(ctx, userID, listID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, listID)
}

func observe(res Result) {
	metrics.ShoppingListsGenerated.Inc()
	metrics.ConsolidatedItems.Observe(float64(len(res.ConsolidatedItems)))
}
