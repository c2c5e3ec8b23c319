package acceptance_tests

import (
	"context"
	"strings"
	"testing"
	"time"

	"recipebox/internal/app"
	"recipebox/internal/config"
	"recipebox/internal/database/dbtest"
	"recipebox/internal/ghost"
	"recipebox/internal/llm"
	"recipebox/internal/shared"
	"recipebox/internal/shop"
	"recipebox/internal/suggest"
)

// --- Mock Ghost Client ---
type mockGhostClient struct {
	fetchRecipesCalls int
}

func (m *mockGhostClient) FetchRecipes(ctx context.Context) ([]ghost.Post, error) {
	m.fetchRecipesCalls++
	return []ghost.Post{
		{ID: "1", Title: "Tomato Soup", HTML: "<h1>Tomato Soup</h1>", URL: "https://blog.test/soup", UpdatedAt: "2023-10-27T10:00:00Z"},
		{ID: "2", Title: "Tomato Salad", HTML: "<h1>Tomato Salad</h1>", URL: "https://blog.test/salad", UpdatedAt: "2023-10-27T11:00:00Z"},
	}, nil
}

func (m *mockGhostClient) CreatePost(ctx context.Context, title, html string, publish bool) (*ghost.Post, error) {
	return &ghost.Post{ID: "new", Title: title, HTML: html}, nil
}

// --- Mock LLM Client ---
type mockLLMClient struct {
	generateContentCalls int
}

func (m *mockLLMClient) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.generateContentCalls++
	usage := shared.TokenUsage{PromptTokens: 200, CompletionTokens: 40, TotalTokens: 240, Model: "mock"}

	// Determine the agent from the prompt content
	switch {
	case strings.Contains(prompt, "<h1>Tomato Soup</h1>"):
		return llm.ContentResponse{Content: `{
			"title": "Tomato Soup",
			"category": "soup",
			"ingredients": [{"name": "Tomatoes", "quantity": 6, "unit": "pcs"}, {"name": "Onion", "quantity": 1, "unit": "pcs"}],
			"instructions": ["Simmer", "Blend"],
			"prep_minutes": 30,
			"servings": 4
		}`, Usage: usage}, nil
	case strings.Contains(prompt, "<h1>Tomato Salad</h1>"):
		return llm.ContentResponse{Content: `{
			"title": "Tomato Salad",
			"category": "salad",
			"ingredients": [{"name": "tomatoes", "quantity": 3, "unit": "pcs"}, {"name": "Basil", "quantity": "10", "unit": "g"}],
			"instructions": ["Slice", "Dress"],
			"prep_minutes": 10,
			"servings": 2
		}`, Usage: usage}, nil
	}

	return llm.ContentResponse{Content: `{
		"suggestions": [
			{"recipe_id": "ghost-2", "reason": "Quick and fresh", "missing_ingredients": ["Basil"]},
			{"recipe_id": "not-a-candidate", "reason": "Invented"}
		]
	}`, Usage: usage}, nil
}

func (m *mockLLMClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if strings.Contains(text, "salad") {
		return []float32{0.9, 0.1}, nil
	}
	return []float32{0.1, 0.9}, nil
}

// --- Acceptance Test ---
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()

	// 1. Build the application with mocks and a real database
	ghostClient := &mockGhostClient{}
	llmClient := &mockLLMClient{}
	cfg := &config.Config{
		BackupPath:      t.TempDir(),
		RecipeCacheSize: 16,
		RecipeCacheTTL:  time.Minute,
	}
	application, err := app.Build(cfg, dbtest.Open(t), app.Deps{
		TextGen:  llmClient,
		Embedder: llmClient,
		Ghost:    ghostClient,
	})
	if err != nil {
		t.Fatalf("Failed to build application: %v", err)
	}

	// --- 2. Step 1: Ingestion ---
	t.Log("--- Step 1: Ingesting Recipes ---")
	report, err := application.IngestFromGhost(ctx)
	if err != nil {
		t.Fatalf("Ingestion failed: %v", err)
	}
	if report.Imported != 2 {
		t.Errorf("Expected 2 imported recipes, got %+v", report)
	}
	if llmClient.generateContentCalls != 2 {
		t.Errorf("Expected 2 calls to LLM for extraction, got %d", llmClient.generateContentCalls)
	}

	// Unchanged posts are not extracted again
	llmClient.generateContentCalls = 0
	report, err = application.IngestFromGhost(ctx)
	if err != nil {
		t.Fatalf("Second ingestion failed: %v", err)
	}
	if report.Skipped != 2 || llmClient.generateContentCalls != 0 {
		t.Errorf("Expected both posts to be skipped without LLM calls, got %+v and %d calls", report, llmClient.generateContentCalls)
	}

	// --- 3. Step 2: Suggestions ---
	t.Log("--- Step 2: Suggesting Recipes ---")
	suggestions, _, err := application.Suggester.SuggestRecipes(ctx, suggest.RecipeRequest{Request: "a light salad", Pantry: []string{"tomatoes"}})
	if err != nil {
		t.Fatalf("Suggestion failed: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].RecipeID != "ghost-2" || suggestions[0].Title != "Tomato Salad" {
		t.Errorf("Expected only the salad to be suggested, got %+v", suggestions)
	}

	// --- 4. Step 3: Shopping list ---
	t.Log("--- Step 3: Generating Shopping List ---")
	list, err := application.Shopping.Generate(ctx, "alice", "Weekend", []string{"ghost-1", "ghost-2"})
	if err != nil {
		t.Fatalf("Shopping list failed: %v", err)
	}
	if len(list.RecipeItems) != 4 {
		t.Errorf("Expected 4 recipe items, got %d", len(list.RecipeItems))
	}
	if len(list.ConsolidatedItems) != 3 {
		t.Fatalf("Expected 3 consolidated items, got %+v", list.ConsolidatedItems)
	}
	if tomatoes := list.ConsolidatedItems[0]; tomatoes.TotalQuantity != 9 || len(tomatoes.Recipes) != 2 {
		t.Errorf("Expected 9 tomatoes from 2 recipes, got %+v", tomatoes)
	}

	// --- 5. Step 4: Shop order ---
	t.Log("--- Step 4: Ordering From a Shop ---")
	s, err := application.Shops.CreateShop(ctx, "bob", "Bob's Kitchen", "")
	if err != nil {
		t.Fatalf("Create shop failed: %v", err)
	}
	if _, err := application.Shops.PublishMenu(ctx, "bob", s.ID, []shop.MenuEntry{
		{RecipeID: "ghost-1", PriceCents: 750, Available: true},
	}); err != nil {
		t.Fatalf("Publish menu failed: %v", err)
	}
	order, err := application.Shops.PlaceOrder(ctx, "alice", s.ID, []shop.OrderLine{{RecipeID: "ghost-1", Quantity: 2}})
	if err != nil {
		t.Fatalf("Place order failed: %v", err)
	}
	if order.TotalCents != 1500 || order.Status != shop.StatusPending {
		t.Errorf("Expected a pending order of 1500 cents, got %+v", order)
	}

	// --- 6. Step 5: Backup ---
	t.Log("--- Step 5: Backing Up Recipes ---")
	n, err := application.Backup(ctx)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 recipes backed up, got %d", n)
	}
	rec, err := application.Recipes.Get(ctx, "ghost-1")
	if err != nil {
		t.Fatalf("Get recipe failed: %v", err)
	}
	if !application.Backups.Exists(rec.ID, rec.UpdatedAt) {
		t.Errorf("Expected recipe backup to exist")
	}
}
