package domain

import "errors"

// Error message strings shared by errors and tests.
const (
	ErrMsgNotFound                = "not found"
	ErrMsgRecipeNotFound          = "recipe not found"
	ErrMsgShoppingListNotFound    = "shopping list not found"
	ErrMsgShopNotFound            = "shop not found"
	ErrMsgOrderNotFound           = "order not found"
	ErrMsgMenuItemUnavailable     = "menu item unavailable"
	ErrMsgInvalidStatusTransition = "invalid order status transition"
	ErrMsgForbidden               = "forbidden"
	ErrMsgInvalidInput            = "invalid input"
	ErrMsgSuggestionsDisabled     = "suggestions are not configured"
)

// Domain errors. Wrap them with fmt.Errorf("%w: details", domain.ErrXxx) for context.
var (
	ErrNotFound                = errors.New(ErrMsgNotFound)
	ErrRecipeNotFound          = errors.New(ErrMsgRecipeNotFound)
	ErrShoppingListNotFound    = errors.New(ErrMsgShoppingListNotFound)
	ErrShopNotFound            = errors.New(ErrMsgShopNotFound)
	ErrOrderNotFound           = errors.New(ErrMsgOrderNotFound)
	ErrMenuItemUnavailable     = errors.New(ErrMsgMenuItemUnavailable)
	ErrInvalidStatusTransition = errors.New(ErrMsgInvalidStatusTransition)
	ErrForbidden               = errors.New(ErrMsgForbidden)
	ErrInvalidInput            = errors.New(ErrMsgInvalidInput)
	ErrSuggestionsDisabled     = errors.New(ErrMsgSuggestionsDisabled)
)
