package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"recipebox/internal/shopping"
)

// GenerateListRequest builds a shopping list from recipes, in order.
// Repeating an id counts the recipe twice.
type GenerateListRequest struct {
	Name      string   `json:"name" validate:"max=100"`
	RecipeIDs []string `json:"recipe_ids" validate:"max=50,dive,required"`
}

// RegenerateListRequest rebuilds a list. Omitting recipe_ids keeps the list's recipes.
type RegenerateListRequest struct {
	RecipeIDs []string `json:"recipe_ids" validate:"omitempty,max=50,dive,required"`
}

// CheckedRequest ticks or unticks an item.
type CheckedRequest struct {
	Checked *bool `json:"checked" validate:"required"`
}

// ShoppingHandler serves shopping lists.
type ShoppingHandler struct {
	lists ShoppingService
}

// NewShoppingHandler creates a ShoppingHandler.
func NewShoppingHandler(lists ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{lists: lists}
}

// HandlePreview consolidates recipes without saving a list.
func (h *ShoppingHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var req GenerateListRequest
	if err := DecodeAndValidateRequest(r, w, &req, "preview shopping list"); err != nil {
		return
	}
	res, err := h.lists.Preview(r.Context(), req.RecipeIDs)
	if err != nil {
		respondServiceError(w, r, "Preview shopping list", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleGenerate creates a list for the acting user.
func (h *ShoppingHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateListRequest
	if err := DecodeAndValidateRequest(r, w, &req, "generate shopping list"); err != nil {
		return
	}
	list, err := h.lists.Generate(r.Context(), UserIDFromContext(r.Context()), req.Name, nonNil(req.RecipeIDs))
	if err != nil {
		respondServiceError(w, r, "Generate shopping list", err)
		return
	}
	respondJSON(w, http.StatusCreated, list)
}

// HandleRegenerate replaces both item collections of a list.
func (h *ShoppingHandler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	var req RegenerateListRequest
	if err := DecodeAndValidateRequest(r, w, &req, "regenerate shopping list"); err != nil {
		return
	}
	list, err := h.lists.Regenerate(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id"), req.RecipeIDs)
	if err != nil {
		respondServiceError(w, r, "Regenerate shopping list", err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// HandleList lists the acting user's lists, newest first.
func (h *ShoppingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.ListByUser(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, "List shopping lists", err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(lists))
}

// HandleGet returns one of the user's lists.
func (h *ShoppingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	list, err := h.lists.Get(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, "Get shopping list", err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// HandleDelete removes one of the user's lists.
func (h *ShoppingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.lists.Delete(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, "Delete shopping list", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetConsolidatedChecked toggles consolidated_items[index].
func (h *ShoppingHandler) HandleSetConsolidatedChecked(w http.ResponseWriter, r *http.Request) {
	h.setChecked(w, r, shopping.KindConsolidated)
}

// HandleSetRecipeItemChecked toggles recipe_items[index].
func (h *ShoppingHandler) HandleSetRecipeItemChecked(w http.ResponseWriter, r *http.Request) {
	h.setChecked(w, r, shopping.KindRecipe)
}

func (h *ShoppingHandler) setChecked(w http.ResponseWriter, r *http.Request, kind shopping.ItemKind) {
	index, ok := pathIndex(w, r, "index")
	if !ok {
		return
	}
	var req CheckedRequest
	if err := DecodeAndValidateRequest(r, w, &req, "check item"); err != nil {
		return
	}

	ctx := r.Context()
	userID, listID := UserIDFromContext(ctx), chi.URLParam(r, "id")

	var (
		list shopping.ShoppingList
		err  error
	)
	if kind == shopping.KindConsolidated {
		list, err = h.lists.SetConsolidatedChecked(ctx, userID, listID, index, *req.Checked)
	} else {
		list, err = h.lists.SetRecipeItemChecked(ctx, userID, listID, index, *req.Checked)
	}
	if err != nil {
		respondServiceError(w, r, "Check item", err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}
