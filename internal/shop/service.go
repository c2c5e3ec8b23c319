package shop

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"recipebox/internal/domain"
	"recipebox/internal/logger"
	"recipebox/internal/metrics"
	"recipebox/internal/recipe"
	"recipebox/internal/sse"
)

// RecipeSource resolves recipe ids; unknown ids fail with domain.ErrRecipeNotFound.
type RecipeSource interface {
	GetMany(ctx context.Context, ids []string) ([]recipe.Recipe, error)
}

// Broadcaster fans events out to live subscribers.
type Broadcaster interface {
	Broadcast(eventType string, payload any)
}

type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(string, any) {}

// Service implements shops, menus and the order workflow.
type Service struct {
	repo    *Repository
	recipes RecipeSource
	events  Broadcaster
}

// NewService creates a shop Service. A nil events drops all notifications.
func NewService(repo *Repository, recipes RecipeSource, events Broadcaster) *Service {
	if events == nil {
		events = noopBroadcaster{}
	}
	return &Service{repo: repo, recipes: recipes, events: events}
}

// CreateShop opens a shop owned by ownerID.
func (s *Service) CreateShop(ctx context.Context, ownerID, name, description string) (Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Shop{}, fmt.Errorf("%w: shop name is required", domain.ErrInvalidInput)
	}

	sh := Shop{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.CreateShop(ctx, sh); err != nil {
		return Shop{}, err
	}
	logger.FromContext(ctx).Info("Shop created", "shop_id", sh.ID)
	return sh, nil
}

// GetShop returns a shop by id.
func (s *Service) GetShop(ctx context.Context, id string) (Shop, error) {
	sh, err := s.repo.GetShop(ctx, id)
	if err != nil {
		return Shop{}, err
	}
	return *sh, nil
}

// ListShops returns every shop.
func (s *Service) ListShops(ctx context.Context) ([]Shop, error) {
	return s.repo.ListShops(ctx)
}

// Menu returns a shop's current menu.
func (s *Service) Menu(ctx context.Context, shopID string) ([]MenuEntry, error) {
	if _, err := s.repo.GetShop(ctx, shopID); err != nil {
		return nil, err
	}
	return s.repo.Menu(ctx, shopID)
}

// PublishMenu replaces the shop's menu. Only the owner may publish and every
// entry must reference an existing recipe exactly once.
func (s *Service) PublishMenu(ctx context.Context, userID, shopID string, entries []MenuEntry) ([]MenuEntry, error) {
	if _, err := s.ownedShop(ctx, userID, shopID); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.RecipeID == "" {
			return nil, fmt.Errorf("%w: menu entry without recipe id", domain.ErrInvalidInput)
		}
		if e.PriceCents < 0 {
			return nil, fmt.Errorf("%w: negative price for %s", domain.ErrInvalidInput, e.RecipeID)
		}
		if seen[e.RecipeID] {
			return nil, fmt.Errorf("%w: recipe %s listed twice", domain.ErrInvalidInput, e.RecipeID)
		}
		seen[e.RecipeID] = true
		ids = append(ids, e.RecipeID)
	}
	if _, err := s.recipes.GetMany(ctx, ids); err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceMenu(ctx, shopID, entries); err != nil {
		return nil, err
	}

	s.events.Broadcast(sse.EventTypeMenuPublished, sse.MenuPayload{ShopID: shopID, Items: len(entries)})
	return s.repo.Menu(ctx, shopID)
}

// PlaceOrder prices lines against the shop's available menu entries and
// stores a pending order.
func (s *Service) PlaceOrder(ctx context.Context, customerID, shopID string, lines []OrderLine) (Order, error) {
	if len(lines) == 0 {
		return Order{}, fmt.Errorf("%w: order has no items", domain.ErrInvalidInput)
	}

	menu, err := s.Menu(ctx, shopID)
	if err != nil {
		return Order{}, err
	}
	byRecipe := make(map[string]MenuEntry, len(menu))
	for _, e := range menu {
		byRecipe[e.RecipeID] = e
	}

	items := make([]OrderItem, 0, len(lines))
	var total int64
	for _, line := range lines {
		if line.Quantity < 1 || line.Quantity > MaxLineQuantity {
			return Order{}, fmt.Errorf("%w: quantity for %s must be between 1 and %d",
				domain.ErrInvalidInput, line.RecipeID, MaxLineQuantity)
		}
		entry, ok := byRecipe[line.RecipeID]
		if !ok || !entry.Available {
			return Order{}, fmt.Errorf("%w: %s", domain.ErrMenuItemUnavailable, line.RecipeID)
		}
		items = append(items, OrderItem{
			RecipeID:   entry.RecipeID,
			Title:      entry.Title,
			Quantity:   line.Quantity,
			PriceCents: entry.PriceCents,
		})
		total += entry.PriceCents * int64(line.Quantity)
	}

	now := time.Now().UTC()
	o := Order{
		ID:         uuid.NewString(),
		ShopID:     shopID,
		CustomerID: customerID,
		Items:      items,
		TotalCents: total,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	s.events.Broadcast(sse.EventTypeOrderPlaced, orderPayload(o, ""))
	logger.FromContext(ctx).Info("Order placed", "order_id", o.ID, "shop_id", shopID, "total_cents", total)
	return o, nil
}

// UpdateStatus moves an order to next. The shop owner drives the workflow;
// the customer may only cancel a pending order.
func (s *Service) UpdateStatus(ctx context.Context, userID, orderID string, next Status) (Order, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	sh, err := s.repo.GetShop(ctx, o.ShopID)
	if err != nil {
		return Order{}, err
	}

	isOwner := sh.OwnerID == userID
	isCustomer := o.CustomerID == userID
	switch {
	case isOwner:
	case isCustomer && next == StatusCancelled && o.Status == StatusPending:
	case isCustomer && next == StatusCancelled:
		return Order{}, fmt.Errorf("%w: only pending orders can be cancelled by the customer", domain.ErrInvalidStatusTransition)
	default:
		return Order{}, fmt.Errorf("%w: only the shop owner can update this order", domain.ErrForbidden)
	}

	if !o.Status.CanTransition(next) {
		return Order{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, o.Status, next)
	}

	now := time.Now().UTC()
	ok, err := s.repo.UpdateStatus(ctx, orderID, o.Status, next, now)
	if err != nil {
		return Order{}, err
	}
	if !ok {
		return Order{}, fmt.Errorf("%w: order changed concurrently", domain.ErrInvalidStatusTransition)
	}

	previous := o.Status
	o.Status = next
	o.UpdatedAt = now

	metrics.OrderStatusChanges.WithLabelValues(string(next)).Inc()
	s.events.Broadcast(sse.EventTypeOrderStatusChanged, orderPayload(*o, previous))
	logger.FromContext(ctx).Info("Order status changed", "order_id", orderID, "from", previous, "to", next)
	return *o, nil
}

// GetOrder returns an order visible to its customer or the shop owner.
func (s *Service) GetOrder(ctx context.Context, userID, orderID string) (Order, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.CustomerID == userID {
		return *o, nil
	}
	if _, err := s.ownedShop(ctx, userID, o.ShopID); err != nil {
		return Order{}, err
	}
	return *o, nil
}

// ListShopOrders returns the orders of a shop owned by userID.
func (s *Service) ListShopOrders(ctx context.Context, userID, shopID string) ([]Order, error) {
	if _, err := s.ownedShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	return s.repo.ListOrdersByShop(ctx, shopID)
}

// ListCustomerOrders returns the orders placed by userID.
func (s *Service) ListCustomerOrders(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListOrdersByCustomer(ctx, userID)
}

func (s *Service) ownedShop(ctx context.Context, userID, shopID string) (*Shop, error) {
	sh, err := s.repo.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if sh.OwnerID != userID {
		return nil, fmt.Errorf("%w: shop belongs to another user", domain.ErrForbidden)
	}
	return sh, nil
}

func orderPayload(o Order, previous Status) sse.OrderPayload {
	return sse.OrderPayload{
		OrderID:        o.ID,
		ShopID:         o.ShopID,
		CustomerID:     o.CustomerID,
		Status:         string(o.Status),
		PreviousStatus: string(previous),
		TotalCents:     o.TotalCents,
	}
}
