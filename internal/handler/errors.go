package handler

// Client facing messages. Handlers and tests share them.
const (
	ErrMsgGenericServerError      = "Something went wrong"
	ErrMsgInvalidRequest          = "Invalid request body"
	ErrMsgInvalidRequestSummary   = "Invalid request"
	ErrMsgInvalidQueryParam       = "Invalid %s query parameter"
	ErrMsgInvalidPathParam        = "Invalid %s"
	ErrMsgUnauthorized            = "Missing X-User-ID header"
	ErrMsgForbidden               = "You are not allowed to do that"
	ErrMsgResourceNotFound        = "Resource not found"
	ErrMsgRecipeNotFound          = "Recipe not found"
	ErrMsgShoppingListNotFound    = "Shopping list not found"
	ErrMsgShopNotFound            = "Shop not found"
	ErrMsgOrderNotFound           = "Order not found"
	ErrMsgMenuItemUnavailable     = "Menu item is not available"
	ErrMsgInvalidStatusTransition = "Order cannot move to that status"
	ErrMsgFeatureUnavailable      = "This feature is not configured on the server"
)
