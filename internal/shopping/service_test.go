package shopping_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/database/dbtest"
	"recipebox/internal/domain"
	"recipebox/internal/recipe"
	"recipebox/internal/shopping"
)

func setup(t *testing.T) (*shopping.Service, *recipe.Repository) {
	t.Helper()
	d := dbtest.Open(t)
	recipes := recipe.NewRepository(d.SQL)
	svc := shopping.NewService(shopping.NewRepository(d.SQL), recipe.NewService(recipes))

	now := time.Now().UTC()
	require.NoError(t, recipes.Create(context.Background(), recipe.Recipe{
		ID: "r1", Title: "Pancakes", CreatedAt: now, UpdatedAt: now,
		Ingredients: []recipe.Ingredient{
			{Name: "Flour", Quantity: 200, Unit: "g"},
			{Name: "Egg", Quantity: 2, Unit: "pcs"},
		},
	}))
	require.NoError(t, recipes.Create(context.Background(), recipe.Recipe{
		ID: "r2", Title: "Crepes", CreatedAt: now, UpdatedAt: now,
		Ingredients: []recipe.Ingredient{
			{Name: "flour", Quantity: 100, Unit: "g"},
			{Name: "Milk", Quantity: 250, Unit: "ml"},
		},
	}))
	return svc, recipes
}

func TestGenerateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	list, err := svc.Generate(ctx, "alice", "  Weekend ", []string{"r1", "r2"})
	require.NoError(t, err)
	assert.Equal(t, "Weekend", list.Name)
	require.Len(t, list.ConsolidatedItems, 3)
	assert.Equal(t, "Flour", list.ConsolidatedItems[0].Ingredient)
	assert.Equal(t, 300.0, list.ConsolidatedItems[0].TotalQuantity)
	assert.Equal(t, []string{"r1", "r2"}, list.ConsolidatedItems[0].Recipes)
	assert.Len(t, list.RecipeItems, 4)

	stored, err := svc.Get(ctx, "alice", list.ID)
	require.NoError(t, err)
	assert.Equal(t, list.ConsolidatedItems, stored.ConsolidatedItems)
	assert.Equal(t, list.RecipeItems, stored.RecipeItems)
	assert.Equal(t, []string{"r1", "r2"}, stored.RecipeIDs)

	_, err = svc.Get(ctx, "bob", list.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Get(ctx, "alice", "missing")
	assert.ErrorIs(t, err, domain.ErrShoppingListNotFound)
}

func TestGenerateUnknownRecipe(t *testing.T) {
	svc, _ := setup(t)
	_, err := svc.Generate(context.Background(), "alice", "", []string{"r1", "nope"})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestGenerateEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	list, err := svc.Generate(ctx, "alice", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Shopping list", list.Name)

	stored, err := svc.Get(ctx, "alice", list.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.RecipeItems)
	assert.NotNil(t, stored.ConsolidatedItems)
	assert.Empty(t, stored.ConsolidatedItems)
}

func TestSetChecked(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	list, err := svc.Generate(ctx, "alice", "", []string{"r1", "r2"})
	require.NoError(t, err)

	updated, err := svc.SetConsolidatedChecked(ctx, "alice", list.ID, 1, true)
	require.NoError(t, err)
	assert.False(t, updated.ConsolidatedItems[0].Checked)
	assert.True(t, updated.ConsolidatedItems[1].Checked)
	assert.Equal(t, "Egg", updated.ConsolidatedItems[1].Ingredient)

	updated, err = svc.SetRecipeItemChecked(ctx, "alice", list.ID, 3, true)
	require.NoError(t, err)
	assert.True(t, updated.RecipeItems[3].Checked)

	updated, err = svc.SetChecked(ctx, "alice", list.ID, shopping.KindConsolidated, 1, false)
	require.NoError(t, err)
	assert.False(t, updated.ConsolidatedItems[1].Checked)

	_, err = svc.SetChecked(ctx, "alice", list.ID, shopping.KindConsolidated, 3, true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.SetChecked(ctx, "alice", list.ID, shopping.KindRecipe, -1, true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.SetChecked(ctx, "alice", list.ID, "bogus", 0, true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.SetChecked(ctx, "bob", list.ID, shopping.KindRecipe, 0, true)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegenerateReplacesBothCollections(t *testing.T) {
	ctx := context.Background()
	svc, recipes := setup(t)

	list, err := svc.Generate(ctx, "alice", "", []string{"r1", "r2"})
	require.NoError(t, err)
	_, err = svc.SetChecked(ctx, "alice", list.ID, shopping.KindConsolidated, 0, true)
	require.NoError(t, err)

	regenerated, err := svc.Regenerate(ctx, "alice", list.ID, []string{"r2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, regenerated.RecipeIDs)
	require.Len(t, regenerated.ConsolidatedItems, 2)
	assert.Equal(t, "flour", regenerated.ConsolidatedItems[0].Ingredient)
	assert.False(t, regenerated.ConsolidatedItems[0].Checked)
	assert.Len(t, regenerated.RecipeItems, 2)

	// recipe edits are picked up when regenerating from the stored ids
	r2, err := recipes.Get(ctx, "r2")
	require.NoError(t, err)
	r2.Ingredients = append(r2.Ingredients, recipe.Ingredient{Name: "Butter", Quantity: 20, Unit: "g"})
	require.NoError(t, recipes.Update(ctx, *r2))

	refreshed, err := svc.Regenerate(ctx, "alice", list.ID, nil)
	require.NoError(t, err)
	assert.Len(t, refreshed.ConsolidatedItems, 3)
	assert.Len(t, refreshed.RecipeItems, 3)

	_, err = svc.Regenerate(ctx, "alice", list.ID, []string{"nope"})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	unchanged, err := svc.Get(ctx, "alice", list.ID)
	require.NoError(t, err)
	assert.Len(t, unchanged.ConsolidatedItems, 3)
}

func TestListByUserAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	first, err := svc.Generate(ctx, "alice", "one", []string{"r1"})
	require.NoError(t, err)
	_, err = svc.Generate(ctx, "alice", "two", []string{"r2"})
	require.NoError(t, err)
	_, err = svc.Generate(ctx, "bob", "bob's", []string{"r2"})
	require.NoError(t, err)

	lists, err := svc.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, lists, 2)

	assert.ErrorIs(t, svc.Delete(ctx, "bob", first.ID), domain.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, "alice", first.ID))
	_, err = svc.Get(ctx, "alice", first.ID)
	assert.ErrorIs(t, err, domain.ErrShoppingListNotFound)
}

func TestOverflowingTotalsAreRejected(t *testing.T) {
	ctx := context.Background()
	svc, recipes := setup(t)

	now := time.Now().UTC()
	require.NoError(t, recipes.Create(ctx, recipe.Recipe{
		ID: "huge", Title: "Huge", CreatedAt: now, UpdatedAt: now,
		Ingredients: []recipe.Ingredient{
			{Name: "Salt", Quantity: 1e308, Unit: "g"},
			{Name: "salt", Quantity: 1e308, Unit: "g"},
		},
	}))

	_, err := svc.Preview(ctx, []string{"huge"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Generate(ctx, "alice", "", []string{"huge"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	lists, err := svc.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, lists)
}
