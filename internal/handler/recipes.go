package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"recipebox/internal/domain"
	"recipebox/internal/recipe"
)

// RecipeRequest is the body of create and update calls.
type RecipeRequest struct {
	Title        string              `json:"title" validate:"required,max=200"`
	Description  string              `json:"description" validate:"max=5000"`
	Instructions []string            `json:"instructions" validate:"max=100,dive,max=2000"`
	Ingredients  []IngredientRequest `json:"ingredients" validate:"max=200,dive"`
	Tags         []string            `json:"tags" validate:"max=30,dive,required,max=50"`
	Category     string              `json:"category" validate:"max=100"`
	PrepMinutes  int                 `json:"prep_minutes" validate:"gte=0,lte=10080"`
	Servings     int                 `json:"servings" validate:"gte=0,lte=1000"`
	SourceURL    string              `json:"source_url" validate:"omitempty,http_url"`
}

// IngredientRequest is one ingredient line. The quantity decodes leniently.
type IngredientRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Quantity recipe.Quantity `json:"quantity"`
	Unit     string          `json:"unit" validate:"max=50"`
}

func (req RecipeRequest) toRecipe() recipe.Recipe {
	ingredients := make([]recipe.Ingredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, recipe.Ingredient{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit})
	}
	return recipe.Recipe{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: nonNil(req.Instructions),
		Ingredients:  ingredients,
		Tags:         nonNil(req.Tags),
		Category:     req.Category,
		PrepMinutes:  req.PrepMinutes,
		Servings:     req.Servings,
		SourceURL:    req.SourceURL,
	}
}

// ReviewRequest rates a recipe.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ImportRequest clips a recipe from a web page.
type ImportRequest struct {
	URL string `json:"url" validate:"required,http_url"`
}

// RecipeHandler serves recipes, favorites and reviews.
type RecipeHandler struct {
	recipes  RecipeService
	importer URLImporter
}

// NewRecipeHandler creates a RecipeHandler. A nil importer answers 503 on import.
func NewRecipeHandler(recipes RecipeService, importer URLImporter) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, importer: importer}
}

// HandleList lists recipes.
// Query: q, tag, category, ingredient, max_prep_minutes, sort (newest|rating|title), limit, offset.
func (h *RecipeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	f, ok := parseFilter(w, r)
	if !ok {
		return
	}
	recipes, err := h.recipes.List(r.Context(), f)
	if err != nil {
		respondServiceError(w, r, "List recipes", err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(recipes))
}

// HandleListFavorites lists the acting user's favorites with the same filters as HandleList.
func (h *RecipeHandler) HandleListFavorites(w http.ResponseWriter, r *http.Request) {
	f, ok := parseFilter(w, r)
	if !ok {
		return
	}
	recipes, err := h.recipes.ListFavorites(r.Context(), UserIDFromContext(r.Context()), f)
	if err != nil {
		respondServiceError(w, r, "List favorites", err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(recipes))
}

func parseFilter(w http.ResponseWriter, r *http.Request) (recipe.Filter, bool) {
	q := r.URL.Query()
	f := recipe.Filter{
		Query:      q.Get("q"),
		Tag:        q.Get("tag"),
		Category:   q.Get("category"),
		Ingredient: q.Get("ingredient"),
		Sort:       recipe.SortOrder(q.Get("sort")),
	}

	var ok bool
	if f.MaxPrepMinutes, ok = queryInt(w, r, "max_prep_minutes", 0); !ok {
		return f, false
	}
	if f.Limit, ok = queryInt(w, r, "limit", recipe.DefaultListLimit); !ok {
		return f, false
	}
	if f.Offset, ok = queryInt(w, r, "offset", 0); !ok {
		return f, false
	}
	return f.Normalize(), true
}

// HandleCreate stores a recipe owned by the acting user.
func (h *RecipeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req RecipeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "create recipe"); err != nil {
		return
	}
	rec, err := h.recipes.Create(r.Context(), UserIDFromContext(r.Context()), req.toRecipe())
	if err != nil {
		respondServiceError(w, r, "Create recipe", err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// HandleGet returns one recipe.
func (h *RecipeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.recipes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, "Get recipe", err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// HandleUpdate replaces the editable fields of the user's recipe.
func (h *RecipeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req RecipeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "update recipe"); err != nil {
		return
	}
	rec, err := h.recipes.Update(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id"), req.toRecipe())
	if err != nil {
		respondServiceError(w, r, "Update recipe", err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// HandleDelete removes the user's recipe.
func (h *RecipeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.recipes.Delete(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, "Delete recipe", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSimilar ranks other recipes by embedding similarity. Query: limit.
func (h *RecipeHandler) HandleSimilar(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit", 5)
	if !ok {
		return
	}
	recipes, err := h.recipes.Similar(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		respondServiceError(w, r, "Similar recipes", err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(recipes))
}

// HandleAddFavorite marks a recipe as the user's favorite. Repeating it is a no-op.
func (h *RecipeHandler) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.recipes.AddFavorite(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, "Add favorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemoveFavorite unmarks a favorite.
func (h *RecipeHandler) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.recipes.RemoveFavorite(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, "Remove favorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddReview rates a recipe; a user's second review replaces the first.
func (h *RecipeHandler) HandleAddReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := DecodeAndValidateRequest(r, w, &req, "review"); err != nil {
		return
	}
	review, err := h.recipes.AddReview(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id"), req.Rating, req.Comment)
	if err != nil {
		respondServiceError(w, r, "Add review", err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

// HandleListReviews lists a recipe's reviews.
func (h *RecipeHandler) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.recipes.ListReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, "List reviews", err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(reviews))
}

// HandleImport clips a recipe from a URL for the acting user.
func (h *RecipeHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if h.importer == nil {
		respondServiceError(w, r, "Import recipe", domain.ErrSuggestionsDisabled)
		return
	}
	var req ImportRequest
	if err := DecodeAndValidateRequest(r, w, &req, "import"); err != nil {
		return
	}
	res, err := h.importer.ImportURL(r.Context(), UserIDFromContext(r.Context()), req.URL)
	if err != nil {
		respondServiceError(w, r, "Import recipe", err)
		return
	}
	if res.Post != nil {
		w.Header().Set("X-Ghost-Post-ID", res.Post.ID)
	}
	w.Header().Set("Location", "/api/v1/recipes/"+res.Recipe.ID)
	respondJSON(w, http.StatusCreated, res.Recipe)
}
