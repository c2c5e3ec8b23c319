package handler

import (
	"net/http"

	"recipebox/internal/domain"
	"recipebox/internal/recipe"
	"recipebox/internal/suggest"
)

// SuggestRecipesRequest asks for stored recipes matching a request.
type SuggestRecipesRequest struct {
	Request string   `json:"request" validate:"required,max=500"`
	Pantry  []string `json:"pantry" validate:"max=50,dive,required,max=100"`
	Limit   int      `json:"limit" validate:"gte=0,lte=10"`
}

// SuggestIngredientsRequest asks for an ingredient list for a dish.
type SuggestIngredientsRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Servings int    `json:"servings" validate:"gte=0,lte=50"`
}

// SuggestRecipesResponse wraps recipe suggestions.
type SuggestRecipesResponse struct {
	Suggestions []suggest.Suggestion `json:"suggestions"`
}

// SuggestIngredientsResponse wraps suggested ingredient lines.
type SuggestIngredientsResponse struct {
	Ingredients []recipe.Ingredient `json:"ingredients"`
}

// SuggestionHandler serves the LLM backed suggestion endpoints.
type SuggestionHandler struct {
	suggester SuggestionService
}

// NewSuggestionHandler creates a SuggestionHandler.
func NewSuggestionHandler(suggester SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggester: suggester}
}

// HandleSuggestRecipes proposes stored recipes.
func (h *SuggestionHandler) HandleSuggestRecipes(w http.ResponseWriter, r *http.Request) {
	if !h.suggester.Enabled() {
		respondServiceError(w, r, "Suggest recipes", domain.ErrSuggestionsDisabled)
		return
	}
	var req SuggestRecipesRequest
	if err := DecodeAndValidateRequest(r, w, &req, "suggest recipes"); err != nil {
		return
	}

	suggestions, meta, err := h.suggester.SuggestRecipes(r.Context(), suggest.RecipeRequest{
		Request: req.Request,
		Pantry:  req.Pantry,
		Limit:   req.Limit,
	})
	if err != nil {
		respondServiceError(w, r, "Suggest recipes", err)
		return
	}
	slogFor(r).Info("Recipes suggested", "count", len(suggestions), "tokens", meta.Usage.TotalTokens)
	respondJSON(w, http.StatusOK, SuggestRecipesResponse{Suggestions: nonNil(suggestions)})
}

// HandleSuggestIngredients proposes ingredients for a dish.
func (h *SuggestionHandler) HandleSuggestIngredients(w http.ResponseWriter, r *http.Request) {
	if !h.suggester.Enabled() {
		respondServiceError(w, r, "Suggest ingredients", domain.ErrSuggestionsDisabled)
		return
	}
	var req SuggestIngredientsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "suggest ingredients"); err != nil {
		return
	}

	ingredients, _, err := h.suggester.SuggestIngredients(r.Context(), req.Title, req.Servings)
	if err != nil {
		respondServiceError(w, r, "Suggest ingredients", err)
		return
	}
	respondJSON(w, http.StatusOK, SuggestIngredientsResponse{Ingredients: nonNil(ingredients)})
}
