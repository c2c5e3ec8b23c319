package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
recipes:
  - title: "Crème Brûlée!"
    category: dessert
    servings: 4
    ingredients:
      - name: Cream
        quantity: 500
        unit: ml
      - name: Sugar
        quantity: "100"
        unit: g
    instructions:
      - Bake
  - id: custom-id
    title: Toast
`

func TestSeedFromYAML(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, Deps{})

	n, err := a.SeedFromYAML(ctx, strings.NewReader(seedYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec, err := a.Recipes.Get(ctx, "seed-cr-me-br-l-e")
	require.NoError(t, err)
	assert.Equal(t, "dessert", rec.Category)
	require.Len(t, rec.Ingredients, 2)
	assert.InDelta(t, 100, rec.Ingredients[1].Quantity.Float(), 0.001)

	_, err = a.Recipes.Get(ctx, "custom-id")
	require.NoError(t, err)

	// Seeding again updates in place.
	_, err = a.SeedFromYAML(ctx, strings.NewReader(seedYAML))
	require.NoError(t, err)
	count, err := a.Recipes.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSeedFromYAMLRejectsInvalidRecipes(t *testing.T) {
	a := newTestApp(t, Deps{})
	_, err := a.SeedFromYAML(context.Background(), strings.NewReader("recipes:\n  - title: \"\"\n"))
	assert.Error(t, err)

	_, err = a.SeedFromYAML(context.Background(), strings.NewReader("recipes: [unclosed"))
	assert.Error(t, err)
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Pancakes":          "pancakes",
		"  Mac & Cheese  ":  "mac-cheese",
		"Grandma's Pie #2!": "grandma-s-pie-2",
		"":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, slug(in), in)
	}
}
