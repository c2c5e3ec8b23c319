package handler

import (
	"context"

	"recipebox/internal/clipper"
	"recipebox/internal/recipe"
	"recipebox/internal/shared"
	"recipebox/internal/shop"
	"recipebox/internal/shopping"
	"recipebox/internal/suggest"
)

// RecipeService is implemented by *recipe.Service.
type RecipeService interface {
	Create(ctx context.Context, ownerID string, rec recipe.Recipe) (recipe.Recipe, error)
	Get(ctx context.Context, id string) (recipe.Recipe, error)
	Update(ctx context.Context, userID, id string, in recipe.Recipe) (recipe.Recipe, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, f recipe.Filter) ([]recipe.Recipe, error)
	AddFavorite(ctx context.Context, userID, id string) error
	RemoveFavorite(ctx context.Context, userID, id string) error
	ListFavorites(ctx context.Context, userID string, f recipe.Filter) ([]recipe.Recipe, error)
	AddReview(ctx context.Context, userID, id string, rating int, comment string) (recipe.Review, error)
	ListReviews(ctx context.Context, id string) ([]recipe.Review, error)
	Similar(ctx context.Context, id string, limit int) ([]recipe.Recipe, error)
}

// URLImporter is implemented by *clipper.Clipper.
type URLImporter interface {
	ImportURL(ctx context.Context, userID, rawURL string) (clipper.Result, error)
}

// ShoppingService is implemented by *shopping.Service.
type ShoppingService interface {
	Preview(ctx context.Context, recipeIDs []string) (shopping.Result, error)
	Generate(ctx context.Context, userID, name string, recipeIDs []string) (shopping.ShoppingList, error)
	Regenerate(ctx context.Context, userID, listID string, recipeIDs []string) (shopping.ShoppingList, error)
	SetConsolidatedChecked(ctx context.Context, userID, listID string, index int, checked bool) (shopping.ShoppingList, error)
	SetRecipeItemChecked(ctx context.Context, userID, listID string, index int, checked bool) (shopping.ShoppingList, error)
	Get(ctx context.Context, userID, listID string) (shopping.ShoppingList, error)
	ListByUser(ctx context.Context, userID string) ([]shopping.ShoppingList, error)
	Delete(ctx context.Context, userID, listID string) error
}

// ShopService is implemented by *shop.Service.
type ShopService interface {
	CreateShop(ctx context.Context, ownerID, name, description string) (shop.Shop, error)
	GetShop(ctx context.Context, id string) (shop.Shop, error)
	ListShops(ctx context.Context) ([]shop.Shop, error)
	Menu(ctx context.Context, shopID string) ([]shop.MenuEntry, error)
	PublishMenu(ctx context.Context, userID, shopID string, entries []shop.MenuEntry) ([]shop.MenuEntry, error)
	PlaceOrder(ctx context.Context, customerID, shopID string, lines []shop.OrderLine) (shop.Order, error)
	UpdateStatus(ctx context.Context, userID, orderID string, next shop.Status) (shop.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (shop.Order, error)
	ListShopOrders(ctx context.Context, userID, shopID string) ([]shop.Order, error)
	ListCustomerOrders(ctx context.Context, userID string) ([]shop.Order, error)
}

// SuggestionService is implemented by *suggest.Suggester.
type SuggestionService interface {
	Enabled() bool
	SuggestRecipes(ctx context.Context, req suggest.RecipeRequest) ([]suggest.Suggestion, shared.AgentMeta, error)
	SuggestIngredients(ctx context.Context, title string, servings int) ([]recipe.Ingredient, shared.AgentMeta, error)
}
