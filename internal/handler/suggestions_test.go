package handler

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recipebox/internal/recipe"
	"recipebox/internal/shared"
	"recipebox/internal/suggest"
)

func suggestionRouter(h *SuggestionHandler) *chi.Mux {
	return userRouter(func(r chi.Router) {
		r.Post("/suggestions/recipes", h.HandleSuggestRecipes)
		r.Post("/suggestions/ingredients", h.HandleSuggestIngredients)
	})
}

func TestSuggestionsDisabled(t *testing.T) {
	svc := &MockSuggester{}
	svc.On("Enabled").Return(false)
	r := suggestionRouter(NewSuggestionHandler(svc))

	rec := do(t, r, http.MethodPost, "/suggestions/recipes", "alice", `{"request": "soup"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, r, http.MethodPost, "/suggestions/ingredients", "alice", `{"title": "soup"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSuggestRecipes(t *testing.T) {
	svc := &MockSuggester{}
	svc.On("Enabled").Return(true)
	svc.On("SuggestRecipes", mock.Anything, suggest.RecipeRequest{Request: "soup", Pantry: []string{"leek"}, Limit: 2}).
		Return([]suggest.Suggestion{{RecipeID: "r1", Title: "Leek soup"}}, shared.AgentMeta{}, nil)

	rec := do(t, suggestionRouter(NewSuggestionHandler(svc)), http.MethodPost, "/suggestions/recipes", "alice",
		`{"request": "soup", "pantry": ["leek"], "limit": 2}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode[SuggestRecipesResponse](t, rec)
	assert.Equal(t, "r1", resp.Suggestions[0].RecipeID)
	svc.AssertExpectations(t)
}

func TestSuggestIngredients(t *testing.T) {
	svc := &MockSuggester{}
	svc.On("Enabled").Return(true)
	svc.On("SuggestIngredients", mock.Anything, "Pesto", 4).
		Return(nil, shared.AgentMeta{}, nil)

	r := suggestionRouter(NewSuggestionHandler(svc))
	rec := do(t, r, http.MethodPost, "/suggestions/ingredients", "alice", `{"title": "Pesto", "servings": 4}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []recipe.Ingredient{}, decode[SuggestIngredientsResponse](t, rec).Ingredients)

	rec = do(t, r, http.MethodPost, "/suggestions/ingredients", "alice", `{"title": "Pesto", "servings": 80}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
