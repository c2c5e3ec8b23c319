package recipe

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestQuantityUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"integer", `{"name":"Flour","quantity":200,"unit":"g"}`, 200},
		{"fraction", `{"name":"Flour","quantity":0.25,"unit":"g"}`, 0.25},
		{"negative kept", `{"name":"Flour","quantity":-3,"unit":"g"}`, -3},
		{"numeric string", `{"name":"Flour","quantity":" 1.5 ","unit":"g"}`, 1.5},
		{"text", `{"name":"Salt","quantity":"a pinch","unit":""}`, 0},
		{"null", `{"name":"Salt","quantity":null,"unit":""}`, 0},
		{"missing", `{"name":"Salt","unit":""}`, 0},
		{"bool", `{"name":"Salt","quantity":true,"unit":""}`, 0},
		{"object", `{"name":"Salt","quantity":{"v":1},"unit":""}`, 0},
		{"NaN string", `{"name":"Salt","quantity":"NaN","unit":""}`, 0},
		{"Inf string", `{"name":"Salt","quantity":"+Inf","unit":""}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ing Ingredient
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ing))
			assert.Equal(t, tt.want, ing.Quantity.Float())
		})
	}
}

func TestQuantityFloatGuardsNonFinite(t *testing.T) {
	assert.Equal(t, 0.0, Quantity(math.NaN()).Float())
	assert.Equal(t, 0.0, Quantity(math.Inf(-1)).Float())

	b, err := json.Marshal(Ingredient{Name: "x", Quantity: Quantity(math.Inf(1))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","quantity":0,"unit":""}`, string(b))
}

func TestQuantityUnmarshalYAML(t *testing.T) {
	var ings []Ingredient
	err := yaml.Unmarshal([]byte(`
- {name: Flour, quantity: 200, unit: g}
- {name: Salt, quantity: to taste, unit: ""}
- {name: Milk, quantity: "250", unit: ml}
`), &ings)
	require.NoError(t, err)
	require.Len(t, ings, 3)
	assert.Equal(t, 200.0, ings[0].Quantity.Float())
	assert.Equal(t, 0.0, ings[1].Quantity.Float())
	assert.Equal(t, 250.0, ings[2].Quantity.Float())
}

func TestIngredientString(t *testing.T) {
	assert.Equal(t, "200 g Flour", Ingredient{Name: "Flour", Quantity: 200, Unit: "g"}.String())
	assert.Equal(t, "2 Egg", Ingredient{Name: "Egg", Quantity: 2}.String())
	assert.Equal(t, "0.5 tsp Salt", Ingredient{Name: "Salt", Quantity: 0.5, Unit: "tsp"}.String())
}

func TestFilterNormalize(t *testing.T) {
	f := Filter{Limit: 1000, Offset: -5, Sort: "bogus"}.Normalize()
	assert.Equal(t, MaxListLimit, f.Limit)
	assert.Equal(t, 0, f.Offset)
	assert.Equal(t, SortNewest, f.Sort)

	f = Filter{Sort: SortRating}.Normalize()
	assert.Equal(t, DefaultListLimit, f.Limit)
	assert.Equal(t, SortRating, f.Sort)
}

func TestRecipeCloneDoesNotShareSlices(t *testing.T) {
	orig := Recipe{Tags: []string{"a"}, Ingredients: []Ingredient{{Name: "x"}}}
	c := orig.Clone()
	c.Tags[0] = "b"
	c.Ingredients[0].Name = "y"
	assert.Equal(t, "a", orig.Tags[0])
	assert.Equal(t, "x", orig.Ingredients[0].Name)
}

func TestToEmbeddingText(t *testing.T) {
	r := Recipe{
		Title:       "Pancakes",
		Category:    "breakfast",
		Tags:        []string{"sweet", "quick"},
		Ingredients: []Ingredient{{Name: "Flour"}, {Name: "Milk"}},
		PrepMinutes: 15,
	}
	text := r.ToEmbeddingText()
	assert.Contains(t, text, "Title: Pancakes")
	assert.Contains(t, text, "Tags: sweet, quick")
	assert.Contains(t, text, "Ingredients: Flour, Milk")
	assert.Contains(t, text, "Prep Time: 15 min")
}
