package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"recipebox/internal/shop"
)

// CreateShopRequest opens a shop owned by the acting user.
type CreateShopRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// MenuRequest replaces a shop's menu.
type MenuRequest struct {
	Items []MenuItemRequest `json:"items" validate:"max=200,dive"`
}

// MenuItemRequest prices one recipe. Available defaults to true.
type MenuItemRequest struct {
	RecipeID   string `json:"recipe_id" validate:"required"`
	PriceCents int64  `json:"price_cents" validate:"gte=0"`
	Available  *bool  `json:"available"`
}

// OrderRequest places an order.
type OrderRequest struct {
	Items []OrderLineRequest `json:"items" validate:"required,min=1,max=50,dive"`
}

// OrderLineRequest is one ordered recipe.
type OrderLineRequest struct {
	RecipeID string `json:"recipe_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=99"`
}

// StatusRequest moves an order along its lifecycle.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted preparing ready completed cancelled"`
}

// ShopHandler serves shops, menus and orders.
type ShopHandler struct {
	shops ShopService
}

// NewShopHandler creates a ShopHandler.
func NewShopHandler(shops ShopService) *ShopHandler {
	return &ShopHandler{shops: shops}
}

// HandleCreateShop opens a shop.
func (h *ShopHandler) HandleCreateShop(w http.ResponseWriter, r *http.Request) {
	var req CreateShopRequest
	if err := DecodeAndValidateRequest(r, w, &req, "create shop"); err != nil {
		return
	}
	s, err := h.shops.CreateShop(r.Context(), UserIDFromContext(r.Context()), req.Name, req.Description)
	if err != nil {
		respondServiceError(w, r, "Create shop", err)
		return
	}
	respondJSON(w, http.StatusCreated, s)
}

// HandleListShops lists every shop.
func (h *ShopHandler) HandleListShops(w http.ResponseWriter, r *http.Request) {
	shops, err := h.shops.ListShops(r.Context())
	if err != nil {
		respondServiceError(w, r, "List shops", err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(shops))
}

// HandleGetShop returns one shop.
func (h *ShopHandler) HandleGetShop(w http.ResponseWriter, r *http.Request) {
	s, err := h.shops.GetShop(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, "Get shop", err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}

// HandleGetMenu returns a shop's menu.
func (h *ShopHandler) HandleGetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.shops.Menu(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, "Get menu", err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(menu))
}

// HandlePublishMenu replaces the menu of the user's shop.
func (h *ShopHandler) HandlePublishMenu(w http.ResponseWriter, r *http.Request) {
	var req MenuRequest
	if err := DecodeAndValidateRequest(r, w, &req, "publish menu"); err != nil {
		return
	}

	entries := make([]shop.MenuEntry, 0, len(req.Items))
	for _, item := range req.Items {
		available := item.Available == nil || *item.Available
		entries = append(entries, shop.MenuEntry{RecipeID: item.RecipeID, PriceCents: item.PriceCents, Available: available})
	}

	menu, err := h.shops.PublishMenu(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id"), entries)
	if err != nil {
		respondServiceError(w, r, "Publish menu", err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(menu))
}

// HandlePlaceOrder orders from a shop as the acting user.
func (h *ShopHandler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := DecodeAndValidateRequest(r, w, &req, "place order"); err != nil {
		return
	}

	lines := make([]shop.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, shop.OrderLine{RecipeID: item.RecipeID, Quantity: item.Quantity})
	}

	order, err := h.shops.PlaceOrder(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id"), lines)
	if err != nil {
		respondServiceError(w, r, "Place order", err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// HandleListShopOrders lists the orders of the user's shop.
func (h *ShopHandler) HandleListShopOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.shops.ListShopOrders(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, "List shop orders", err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(orders))
}

// HandleListMyOrders lists the acting user's orders.
func (h *ShopHandler) HandleListMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.shops.ListCustomerOrders(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, "List orders", err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(orders))
}

// HandleGetOrder returns an order to its customer or the shop owner.
func (h *ShopHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.shops.GetOrder(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, "Get order", err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// HandleUpdateStatus advances or cancels an order.
func (h *ShopHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := DecodeAndValidateRequest(r, w, &req, "update order status"); err != nil {
		return
	}
	order, err := h.shops.UpdateStatus(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id"), shop.Status(req.Status))
	if err != nil {
		respondServiceError(w, r, "Update order status", err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
