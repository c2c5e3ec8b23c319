package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recipebox/internal/app"
	"recipebox/internal/handler"
	"recipebox/internal/metrics"
	"recipebox/internal/sse"
)

// Server is the HTTP front of the application.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a Server listening on port. webhook is mounted at
// /webhook when not nil.
func NewServer(port int, a *app.App, webhook http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(a, webhook),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the route tree.
func NewRouter(a *app.App, webhook http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(a.DB))
	r.Handle("/metrics", promhttp.Handler())
	if webhook != nil {
		r.Method(http.MethodPost, "/webhook", webhook)
	}

	var importer handler.URLImporter
	if a.Clipper != nil {
		importer = a.Clipper
	}
	recipes := handler.NewRecipeHandler(a.Recipes, importer)
	lists := handler.NewShoppingHandler(a.Shopping)
	shops := handler.NewShopHandler(a.Shops)
	suggestions := handler.NewSuggestionHandler(a.Suggester)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/events", sse.Handler(a.Hub))

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipes.HandleList)
			r.With(handler.RequireUser).Post("/", recipes.HandleCreate)
			r.With(handler.RequireUser).Post("/import", recipes.HandleImport)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", recipes.HandleGet)
				r.Get("/similar", recipes.HandleSimilar)
				r.Get("/reviews", recipes.HandleListReviews)

				r.Group(func(r chi.Router) {
					r.Use(handler.RequireUser)
					r.Put("/", recipes.HandleUpdate)
					r.Delete("/", recipes.HandleDelete)
					r.Post("/reviews", recipes.HandleAddReview)
					r.Put("/favorite", recipes.HandleAddFavorite)
					r.Delete("/favorite", recipes.HandleRemoveFavorite)
				})
			})
		})

		r.With(handler.RequireUser).Get("/favorites", recipes.HandleListFavorites)

		r.Route("/shopping-lists", func(r chi.Router) {
			r.Use(handler.RequireUser)
			r.Get("/", lists.HandleList)
			r.Post("/", lists.HandleGenerate)
			r.Post("/preview", lists.HandlePreview)
			r.Get("/{id}", lists.HandleGet)
			r.Delete("/{id}", lists.HandleDelete)
			r.Post("/{id}/regenerate", lists.HandleRegenerate)
			r.Put("/{id}/consolidated/{index}", lists.HandleSetConsolidatedChecked)
			r.Put("/{id}/recipe-items/{index}", lists.HandleSetRecipeItemChecked)
		})

		r.Route("/shops", func(r chi.Router) {
			r.Get("/", shops.HandleListShops)
			r.Get("/{id}", shops.HandleGetShop)
			r.Get("/{id}/menu", shops.HandleGetMenu)

			r.Group(func(r chi.Router) {
				r.Use(handler.RequireUser)
				r.Post("/", shops.HandleCreateShop)
				r.Put("/{id}/menu", shops.HandlePublishMenu)
				r.Post("/{id}/orders", shops.HandlePlaceOrder)
				r.Get("/{id}/orders", shops.HandleListShopOrders)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(handler.RequireUser)
			r.Get("/", shops.HandleListMyOrders)
			r.Get("/{id}", shops.HandleGetOrder)
			r.Patch("/{id}/status", shops.HandleUpdateStatus)
		})

		r.Route("/suggestions", func(r chi.Router) {
			r.Use(handler.RequireUser)
			r.Post("/recipes", suggestions.HandleSuggestRecipes)
			r.Post("/ingredients", suggestions.HandleSuggestIngredients)
		})
	})

	return r
}

// Start serves until Stop is called. It returns http.ErrServerClosed after a
// graceful stop.
func (s *Server) Start() error {
	slog.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
