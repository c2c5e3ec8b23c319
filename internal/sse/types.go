package sse

// OrderPayload is the payload of order.placed and order.status_changed.
type OrderPayload struct {
	OrderID        string `json:"order_id"`
	ShopID         string `json:"shop_id"`
	CustomerID     string `json:"customer_id"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status,omitempty"`
	TotalCents     int64  `json:"total_cents"`
}

// MenuPayload is the payload of menu.published.
type MenuPayload struct {
	ShopID string `json:"shop_id"`
	Items  int    `json:"items"`
}
