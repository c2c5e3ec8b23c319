package suggest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/database/dbtest"
	"recipebox/internal/domain"
	"recipebox/internal/llm"
	"recipebox/internal/metrics"
	"recipebox/internal/recipe"
	"recipebox/internal/shared"
)

type mockTextGen struct {
	content string
	err     error
	prompts []string
}

func (m *mockTextGen) GenerateContent(_ context.Context, prompt string) (llm.ContentResponse, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{
		Content: m.content,
		Usage:   shared.TokenUsage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120, Model: "mock"},
	}, nil
}

type fakeFinder struct {
	embeddings bool
	similar    []recipe.Recipe
	similarErr error
	newest     []recipe.Recipe
	queries    []string
}

func (f *fakeFinder) EmbeddingsEnabled() bool { return f.embeddings }

func (f *fakeFinder) SimilarToText(_ context.Context, text string, _ int) ([]recipe.Recipe, error) {
	f.queries = append(f.queries, text)
	return f.similar, f.similarErr
}

func (f *fakeFinder) List(_ context.Context, _ recipe.Filter) ([]recipe.Recipe, error) {
	return f.newest, nil
}

var (
	pasta = recipe.Recipe{ID: "r1", Title: "Pasta", Tags: []string{"italian"},
		Ingredients: []recipe.Ingredient{{Name: "Spaghetti", Quantity: 200, Unit: "g"}}}
	salad = recipe.Recipe{ID: "r2", Title: "Salad", Ingredients: []recipe.Ingredient{{Name: "Lettuce", Quantity: 1}}}
)

func TestSuggestRecipesFiltersUnknownIDs(t *testing.T) {
	ctx := context.Background()
	gen := &mockTextGen{content: "```json\n" + `{"suggestions": [
		{"recipe_id": "r2", "reason": "light"},
		{"recipe_id": "ghost", "reason": "invented"},
		{"recipe_id": "r2", "reason": "again"},
		{"recipe_id": "r1", "reason": "filling", "missing_ingredients": ["parmesan"]}
	]}` + "\n```"}
	finder := &fakeFinder{embeddings: true, similar: []recipe.Recipe{pasta, salad}}

	d := dbtest.Open(t)
	store := metrics.NewStore(d.SQL)
	s := NewSuggester(finder, gen, store)

	got, meta, err := s.SuggestRecipes(ctx, RecipeRequest{Request: "something quick", Pantry: []string{"tomato"}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Suggestion{RecipeID: "r2", Title: "Salad", Reason: "light", MissingIngredients: []string{}}, got[0])
	assert.Equal(t, []string{"parmesan"}, got[1].MissingIngredients)
	assert.Equal(t, AgentRecipeSuggester, meta.AgentName)
	assert.Equal(t, 120, meta.Usage.TotalTokens)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "something quick")
	assert.Contains(t, gen.prompts[0], "The cook already has: tomato")
	assert.Contains(t, gen.prompts[0], "200 g Spaghetti")
	assert.Contains(t, finder.queries[0], "Ingredients: tomato")

	summary, err := store.GetAgentSummary(ctx, 1)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, AgentRecipeSuggester, summary[0].AgentName)
	assert.Equal(t, 120, summary[0].TotalTokens)
}

func TestSuggestRecipesLimit(t *testing.T) {
	gen := &mockTextGen{content: `{"suggestions": [{"recipe_id": "r1"}, {"recipe_id": "r2"}]}`}
	s := NewSuggester(&fakeFinder{newest: []recipe.Recipe{pasta, salad}}, gen, nil)

	got, _, err := s.SuggestRecipes(context.Background(), RecipeRequest{Request: "dinner", Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].RecipeID)
	assert.Contains(t, gen.prompts[0], "Return at most 1 suggestions")
}

func TestSuggestRecipesFallsBackToNewest(t *testing.T) {
	gen := &mockTextGen{content: `{"suggestions": [{"recipe_id": "r1"}]}`}
	finder := &fakeFinder{embeddings: true, similarErr: errors.New("quota"), newest: []recipe.Recipe{pasta}}
	s := NewSuggester(finder, gen, nil)

	got, _, err := s.SuggestRecipes(context.Background(), RecipeRequest{Request: "dinner"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pasta", got[0].Title)
}

func TestSuggestRecipesWithoutCandidates(t *testing.T) {
	gen := &mockTextGen{}
	s := NewSuggester(&fakeFinder{}, gen, nil)

	got, _, err := s.SuggestRecipes(context.Background(), RecipeRequest{Request: "dinner"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, gen.prompts)
}

func TestSuggestRecipesErrors(t *testing.T) {
	ctx := context.Background()

	_, _, err := NewSuggester(&fakeFinder{}, nil, nil).SuggestRecipes(ctx, RecipeRequest{Request: "x"})
	assert.ErrorIs(t, err, domain.ErrSuggestionsDisabled)

	s := NewSuggester(&fakeFinder{newest: []recipe.Recipe{pasta}}, &mockTextGen{content: "not json"}, nil)
	_, _, err = s.SuggestRecipes(ctx, RecipeRequest{Request: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, meta, err := s.SuggestRecipes(ctx, RecipeRequest{Request: "dinner"})
	assert.ErrorContains(t, err, "failed to parse suggestions")
	assert.Equal(t, AgentRecipeSuggester, meta.AgentName)

	s = NewSuggester(&fakeFinder{newest: []recipe.Recipe{pasta}}, &mockTextGen{err: errors.New("boom")}, nil)
	_, _, err = s.SuggestRecipes(ctx, RecipeRequest{Request: "dinner"})
	assert.ErrorContains(t, err, "boom")
}

func TestSuggestIngredients(t *testing.T) {
	ctx := context.Background()
	gen := &mockTextGen{content: `{"ingredients": [
		{"name": " Flour ", "quantity": "250", "unit": "g "},
		{"name": "Salt", "quantity": null, "unit": ""},
		{"name": "", "quantity": 1, "unit": "pcs"},
		{"name": "Eggs", "quantity": 2, "unit": "pcs"}
	]}`}
	s := NewSuggester(&fakeFinder{}, gen, nil)

	got, meta, err := s.SuggestIngredients(ctx, "Pancakes", 0)
	require.NoError(t, err)
	assert.Equal(t, []recipe.Ingredient{
		{Name: "Flour", Quantity: 250, Unit: "g"},
		{Name: "Salt", Quantity: 0, Unit: ""},
		{Name: "Eggs", Quantity: 2, Unit: "pcs"},
	}, got)
	assert.Equal(t, AgentIngredientSuggester, meta.AgentName)
	assert.Contains(t, gen.prompts[0], `"Pancakes" for 2 servings`)

	_, _, err = s.SuggestIngredients(ctx, "", 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, _, err = s.SuggestIngredients(ctx, "Feast", maxServings+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, _, err = NewSuggester(&fakeFinder{}, nil, nil).SuggestIngredients(ctx, "Pancakes", 2)
	assert.ErrorIs(t, err, domain.ErrSuggestionsDisabled)
}
