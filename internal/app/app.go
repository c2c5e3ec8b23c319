package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"recipebox/internal/clipper"
	"recipebox/internal/config"
	"recipebox/internal/database"
	"recipebox/internal/ghost"
	"recipebox/internal/llm"
	"recipebox/internal/metrics"
	"recipebox/internal/recipe"
	"recipebox/internal/shop"
	"recipebox/internal/shopping"
	"recipebox/internal/sse"
	"recipebox/internal/storage"
	"recipebox/internal/suggest"
)

// Deps are the external collaborators of the application. Nil fields
// disable the features that need them.
type Deps struct {
	TextGen  llm.TextGenerator
	Embedder llm.EmbeddingGenerator
	Ghost    ghost.Client
}

// App holds the application's services.
type App struct {
	cfg *config.Config
	DB  *database.DB

	Recipes   *recipe.Service
	Shopping  *shopping.Service
	Shops     *shop.Service
	Suggester *suggest.Suggester
	Clipper   *clipper.Clipper // nil without a text generator
	Metrics   *metrics.Store
	Hub       *sse.Hub
	Backups   *storage.RecipeStore

	ghost      ghost.Client
	extractor  *recipe.Extractor
	embedCache *llm.CachedEmbeddingGenerator
	closers    []llm.Closer
}

// New opens the database and wires the LLM and Ghost clients configured in cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	var (
		deps    Deps
		closers []llm.Closer
	)
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			db.Close()
			return nil, err
		}
		closers = append(closers, gemini)
		deps.TextGen = gemini
		deps.Embedder = gemini
	}
	// Groq is preferred for text when both are configured.
	if cfg.GroqAPIKey != "" {
		deps.TextGen = llm.NewGroqClient(cfg)
	}
	if cfg.GhostEnabled() {
		deps.Ghost = ghost.NewClient(cfg)
	}

	a, err := Build(cfg, db, deps)
	if err != nil {
		for _, c := range closers {
			c.Close()
		}
		db.Close()
		return nil, err
	}
	a.closers = append(a.closers, closers...)
	return a, nil
}

// Build assembles the services on an open database.
func Build(cfg *config.Config, db *database.DB, deps Deps) (*App, error) {
	a := &App{
		cfg:     cfg,
		DB:      db,
		Metrics: metrics.NewStore(db.SQL),
		Hub:     sse.NewHub(),
		ghost:   deps.Ghost,
	}

	backups, err := storage.NewRecipeStore(cfg.BackupPath)
	if err != nil {
		return nil, err
	}
	a.Backups = backups

	opts := []recipe.ServiceOption{recipe.WithCache(cfg.RecipeCacheSize, cfg.RecipeCacheTTL)}
	if deps.Embedder != nil {
		cached, err := llm.NewCachedEmbeddingGenerator(deps.Embedder, cfg.EmbeddingCachePath)
		if err != nil {
			return nil, err
		}
		a.embedCache = cached
		opts = append(opts, recipe.WithEmbeddings(llm.NewVectorRepository(db.SQL), cached))
	}
	a.Recipes = recipe.NewService(recipe.NewRepository(db.SQL), opts...)

	a.Shopping = shopping.NewService(shopping.NewRepository(db.SQL), a.Recipes)
	a.Shops = shop.NewService(shop.NewRepository(db.SQL), a.Recipes, a.Hub)
	a.Suggester = suggest.NewSuggester(a.Recipes, deps.TextGen, a.Metrics)

	if deps.TextGen != nil {
		a.extractor = recipe.NewExtractor(deps.TextGen)
		clipOpts := []clipper.Option{clipper.WithRecorder(a.Metrics)}
		if deps.Ghost != nil && cfg.GhostPublish {
			clipOpts = append(clipOpts, clipper.WithPublisher(deps.Ghost))
		}
		a.Clipper = clipper.NewClipper(a.extractor, a.Recipes, clipOpts...)
	}

	return a, nil
}

// Config returns the configuration the app was built with.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Close persists the embedding cache and releases clients and the database.
func (a *App) Close() error {
	var errs []error
	if a.embedCache != nil {
		hits, misses := a.embedCache.Stats()
		slog.Debug("Embedding cache stats", "hits", hits, "misses", misses)
		if err := a.embedCache.SaveCache(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}
	return errors.Join(errs...)
}
