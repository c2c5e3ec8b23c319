package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recipebox/internal/clipper"
	"recipebox/internal/recipe"
	"recipebox/internal/shared"
	"recipebox/internal/shop"
	"recipebox/internal/suggest"
)

type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Create(ctx context.Context, ownerID string, rec recipe.Recipe) (recipe.Recipe, error) {
	args := m.Called(ctx, ownerID, rec)
	return args.Get(0).(recipe.Recipe), args.Error(1)
}

func (m *MockRecipeService) Get(ctx context.Context, id string) (recipe.Recipe, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(recipe.Recipe), args.Error(1)
}

func (m *MockRecipeService) Update(ctx context.Context, userID, id string, in recipe.Recipe) (recipe.Recipe, error) {
	args := m.Called(ctx, userID, id, in)
	return args.Get(0).(recipe.Recipe), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockRecipeService) List(ctx context.Context, f recipe.Filter) ([]recipe.Recipe, error) {
	args := m.Called(ctx, f)
	recipes, _ := args.Get(0).([]recipe.Recipe)
	return recipes, args.Error(1)
}

func (m *MockRecipeService) AddFavorite(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockRecipeService) RemoveFavorite(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockRecipeService) ListFavorites(ctx context.Context, userID string, f recipe.Filter) ([]recipe.Recipe, error) {
	args := m.Called(ctx, userID, f)
	recipes, _ := args.Get(0).([]recipe.Recipe)
	return recipes, args.Error(1)
}

func (m *MockRecipeService) AddReview(ctx context.Context, userID, id string, rating int, comment string) (recipe.Review, error) {
	args := m.Called(ctx, userID, id, rating, comment)
	return args.Get(0).(recipe.Review), args.Error(1)
}

func (m *MockRecipeService) ListReviews(ctx context.Context, id string) ([]recipe.Review, error) {
	args := m.Called(ctx, id)
	reviews, _ := args.Get(0).([]recipe.Review)
	return reviews, args.Error(1)
}

func (m *MockRecipeService) Similar(ctx context.Context, id string, limit int) ([]recipe.Recipe, error) {
	args := m.Called(ctx, id, limit)
	recipes, _ := args.Get(0).([]recipe.Recipe)
	return recipes, args.Error(1)
}

type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) ImportURL(ctx context.Context, userID, rawURL string) (clipper.Result, error) {
	args := m.Called(ctx, userID, rawURL)
	return args.Get(0).(clipper.Result), args.Error(1)
}

type MockShopService struct {
	mock.Mock
}

func (m *MockShopService) CreateShop(ctx context.Context, ownerID, name, description string) (shop.Shop, error) {
	args := m.Called(ctx, ownerID, name, description)
	return args.Get(0).(shop.Shop), args.Error(1)
}

func (m *MockShopService) GetShop(ctx context.Context, id string) (shop.Shop, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(shop.Shop), args.Error(1)
}

func (m *MockShopService) ListShops(ctx context.Context) ([]shop.Shop, error) {
	args := m.Called(ctx)
	shops, _ := args.Get(0).([]shop.Shop)
	return shops, args.Error(1)
}

func (m *MockShopService) Menu(ctx context.Context, shopID string) ([]shop.MenuEntry, error) {
	args := m.Called(ctx, shopID)
	menu, _ := args.Get(0).([]shop.MenuEntry)
	return menu, args.Error(1)
}

func (m *MockShopService) PublishMenu(ctx context.Context, userID, shopID string, entries []shop.MenuEntry) ([]shop.MenuEntry, error) {
	args := m.Called(ctx, userID, shopID, entries)
	menu, _ := args.Get(0).([]shop.MenuEntry)
	return menu, args.Error(1)
}

func (m *MockShopService) PlaceOrder(ctx context.Context, customerID, shopID string, lines []shop.OrderLine) (shop.Order, error) {
	args := m.Called(ctx, customerID, shopID, lines)
	return args.Get(0).(shop.Order), args.Error(1)
}

func (m *MockShopService) UpdateStatus(ctx context.Context, userID, orderID string, next shop.Status) (shop.Order, error) {
	args := m.Called(ctx, userID, orderID, next)
	return args.Get(0).(shop.Order), args.Error(1)
}

func (m *MockShopService) GetOrder(ctx context.Context, userID, orderID string) (shop.Order, error) {
	args := m.Called(ctx, userID, orderID)
	return args.Get(0).(shop.Order), args.Error(1)
}

func (m *MockShopService) ListShopOrders(ctx context.Context, userID, shopID string) ([]shop.Order, error) {
	args := m.Called(ctx, userID, shopID)
	orders, _ := args.Get(0).([]shop.Order)
	return orders, args.Error(1)
}

func (m *MockShopService) ListCustomerOrders(ctx context.Context, userID string) ([]shop.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]shop.Order)
	return orders, args.Error(1)
}

type MockSuggester struct {
	mock.Mock
}

func (m *MockSuggester) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockSuggester) SuggestRecipes(ctx context.Context, req suggest.RecipeRequest) ([]suggest.Suggestion, shared.AgentMeta, error) {
	args := m.Called(ctx, req)
	suggestions, _ := args.Get(0).([]suggest.Suggestion)
	return suggestions, args.Get(1).(shared.AgentMeta), args.Error(2)
}

func (m *MockSuggester) SuggestIngredients(ctx context.Context, title string, servings int) ([]recipe.Ingredient, shared.AgentMeta, error) {
	args := m.Called(ctx, title, servings)
	ingredients, _ := args.Get(0).([]recipe.Ingredient)
	return ingredients, args.Get(1).(shared.AgentMeta), args.Error(2)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
