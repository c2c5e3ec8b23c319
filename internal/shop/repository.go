package shop

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"recipebox/internal/domain"
	"recipebox/internal/shop/shopdb"
)

// Repository persists shops, menus and orders.
type Repository struct {
	queries *shopdb.Queries
	db      *sql.DB
}

// NewRepository creates a new shop repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: shopdb.New(d),
		db:      d,
	}
}

// CreateShop stores a new shop.
func (r *Repository) CreateShop(ctx context.Context, s Shop) error {
	err := r.queries.InsertShop(ctx, shopdb.InsertShopParams{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to insert shop: %w", err)
	}
	return nil
}

// GetShop retrieves a shop by id.
func (r *Repository) GetShop(ctx context.Context, id string) (*Shop, error) {
	row, err := r.queries.GetShop(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrShopNotFound
		}
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	s := shopFromRow(row)
	return &s, nil
}

// ListShops returns all shops, newest first.
func (r *Repository) ListShops(ctx context.Context) ([]Shop, error) {
	rows, err := r.queries.ListShops(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	shops := make([]Shop, 0, len(rows))
	for _, row := range rows {
		shops = append(shops, shopFromRow(row))
	}
	return shops, nil
}

// ReplaceMenu swaps the shop's whole menu in one transaction.
func (r *Repository) ReplaceMenu(ctx context.Context, shopID string, entries []MenuEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	if err := q.DeleteMenuItems(ctx, shopID); err != nil {
		return fmt.Errorf("failed to clear menu: %w", err)
	}
	for i, e := range entries {
		var available int64
		if e.Available {
			available = 1
		}
		err := q.InsertMenuItem(ctx, shopdb.InsertMenuItemParams{
			ShopID:     shopID,
			RecipeID:   e.RecipeID,
			Position:   int64(i),
			PriceCents: e.PriceCents,
			Available:  available,
		})
		if err != nil {
			return fmt.Errorf("failed to insert menu item %s: %w", e.RecipeID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit menu: %w", err)
	}
	return nil
}

// Menu returns the shop's menu in published order.
func (r *Repository) Menu(ctx context.Context, shopID string) ([]MenuEntry, error) {
	rows, err := r.queries.ListMenuItems(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	menu := make([]MenuEntry, 0, len(rows))
	for _, row := range rows {
		menu = append(menu, MenuEntry{
			RecipeID:   row.RecipeID,
			Title:      row.Title,
			PriceCents: row.PriceCents,
			Available:  row.Available != 0,
		})
	}
	return menu, nil
}

// CreateOrder stores a new order.
func (r *Repository) CreateOrder(ctx context.Context, o Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	err = r.queries.InsertOrder(ctx, shopdb.InsertOrderParams{
		ID:         o.ID,
		ShopID:     o.ShopID,
		CustomerID: o.CustomerID,
		Items:      string(items),
		TotalCents: o.TotalCents,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt.UTC(),
		UpdatedAt:  o.UpdatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// GetOrder retrieves an order by id.
func (r *Repository) GetOrder(ctx context.Context, id string) (*Order, error) {
	row, err := r.queries.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	o, err := orderFromRow(row)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOrdersByShop returns a shop's orders, newest first.
func (r *Repository) ListOrdersByShop(ctx context.Context, shopID string) ([]Order, error) {
	rows, err := r.queries.ListOrdersByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop orders: %w", err)
	}
	return ordersFromRows(rows)
}

// ListOrdersByCustomer returns a customer's orders, newest first.
func (r *Repository) ListOrdersByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	rows, err := r.queries.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer orders: %w", err)
	}
	return ordersFromRows(rows)
}

// UpdateStatus moves an order from `from` to `to`. It reports false when the
// order is no longer in `from`.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (bool, error) {
	n, err := r.queries.UpdateOrderStatus(ctx, shopdb.UpdateOrderStatusParams{
		Status:         string(to),
		UpdatedAt:      at.UTC(),
		ID:             id,
		ExpectedStatus: string(from),
	})
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return n == 1, nil
}

func shopFromRow(row shopdb.Shop) Shop {
	return Shop{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}
}

func orderFromRow(row shopdb.Order) (Order, error) {
	o := Order{
		ID:         row.ID,
		ShopID:     row.ShopID,
		CustomerID: row.CustomerID,
		TotalCents: row.TotalCents,
		Status:     Status(row.Status),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.Items), &o.Items); err != nil {
		return Order{}, fmt.Errorf("failed to unmarshal items of order %s: %w", row.ID, err)
	}
	return o, nil
}

func ordersFromRows(rows []shopdb.Order) ([]Order, error) {
	orders := make([]Order, 0, len(rows))
	for _, row := range rows {
		o, err := orderFromRow(row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
