package shop

import "time"

// Shop sells recipes from its menu.
type Shop struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// MenuEntry is one recipe on a shop's menu.
type MenuEntry struct {
	RecipeID   string `json:"recipe_id"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
	Available  bool   `json:"available"`
}

// OrderLine is what a customer asks for.
type OrderLine struct {
	RecipeID string `json:"recipe_id"`
	Quantity int    `json:"quantity"`
}

// OrderItem is a priced line of a placed order.
type OrderItem struct {
	RecipeID   string `json:"recipe_id"`
	Title      string `json:"title"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

// Order is a customer's order at a shop.
type Order struct {
	ID         string      `json:"id"`
	ShopID     string      `json:"shop_id"`
	CustomerID string      `json:"customer_id"`
	Items      []OrderItem `json:"items"`
	TotalCents int64       `json:"total_cents"`
	Status     Status      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// MaxLineQuantity caps the quantity of a single order line.
const MaxLineQuantity = 99
