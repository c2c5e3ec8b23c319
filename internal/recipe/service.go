package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"recipebox/internal/domain"
	"recipebox/internal/llm"
	"recipebox/internal/logger"
	"recipebox/internal/metrics"
)

// Service implements the recipe use cases on top of the Repository.
type Service struct {
	repo     *Repository
	vectors  *llm.VectorRepository
	embedder llm.EmbeddingGenerator
	cache    *recipeCache
}

// ServiceOption configures optional Service collaborators.
type ServiceOption func(*Service)

// WithEmbeddings enables semantic search. Without it Similar returns nothing.
func WithEmbeddings(vectors *llm.VectorRepository, embedder llm.EmbeddingGenerator) ServiceOption {
	return func(s *Service) {
		s.vectors = vectors
		s.embedder = embedder
	}
}

// WithCache sets the size and TTL of the recipe lookup cache.
func WithCache(size int, ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.cache = newRecipeCache(size, ttl)
	}
}

// NewService creates a recipe Service.
func NewService(repo *Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:  repo,
		cache: newRecipeCache(256, 5*time.Minute),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EmbeddingsEnabled reports whether semantic search is available.
func (s *Service) EmbeddingsEnabled() bool {
	return s.vectors != nil && s.embedder != nil
}

// Validate checks the fields every stored recipe must have.
func Validate(rec Recipe) error {
	if strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	for i, ing := range rec.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("%w: ingredient %d has no name", domain.ErrInvalidInput, i)
		}
	}
	if rec.PrepMinutes < 0 || rec.Servings < 0 {
		return fmt.Errorf("%w: prep_minutes and servings must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

// Create stores a new recipe owned by ownerID and embeds it when embeddings are enabled.
func (s *Service) Create(ctx context.Context, ownerID string, rec Recipe) (Recipe, error) {
	if err := Validate(rec); err != nil {
		return Recipe{}, err
	}

	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.OwnerID = ownerID
	rec.RatingAvg, rec.RatingCount = 0, 0
	rec.CreatedAt, rec.UpdatedAt = now, now

	if err := s.repo.Create(ctx, rec); err != nil {
		return Recipe{}, fmt.Errorf("failed to create recipe: %w", err)
	}
	metrics.RecipesCreated.Inc()

	s.embed(ctx, rec)
	return rec, nil
}

// Import inserts or refreshes a recipe that came from an external source
// (Ghost, a clipped URL, a seed file, a backup). The id is kept when set.
func (s *Service) Import(ctx context.Context, source string, rec Recipe) (Recipe, error) {
	if err := Validate(rec); err != nil {
		return Recipe{}, err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, rec); err != nil {
		return Recipe{}, fmt.Errorf("failed to import recipe: %w", err)
	}
	s.cache.Invalidate(rec.ID)
	metrics.RecipesImported.WithLabelValues(source).Inc()

	s.embed(ctx, rec)
	return s.Get(ctx, rec.ID)
}

// SaveWithEmbedding stores a recipe together with a precomputed embedding.
func (s *Service) SaveWithEmbedding(ctx context.Context, rec Recipe, embedding []float32) error {
	if err := s.repo.Save(ctx, rec); err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	s.cache.Invalidate(rec.ID)
	if s.vectors != nil && len(embedding) > 0 {
		if err := s.vectors.Save(ctx, rec.ID, embedding); err != nil {
			return fmt.Errorf("failed to save embedding: %w", err)
		}
	}
	return nil
}

// embed stores the recipe's embedding. Failures are logged; the recipe itself is already saved.
func (s *Service) embed(ctx context.Context, rec Recipe) {
	if !s.EmbeddingsEnabled() {
		return
	}
	log := logger.FromContext(ctx)

	embedding, err := s.embedder.GenerateEmbedding(ctx, rec.ToEmbeddingText())
	if err != nil {
		log.Warn("Failed to generate recipe embedding", "recipe_id", rec.ID, "error", err)
		return
	}
	if err := s.vectors.Save(ctx, rec.ID, embedding); err != nil {
		log.Warn("Failed to save recipe embedding", "recipe_id", rec.ID, "error", err)
	}
}

// Embedding returns the stored embedding of a recipe, or nil.
func (s *Service) Embedding(ctx context.Context, id string) ([]float32, error) {
	if s.vectors == nil {
		return nil, nil
	}
	return s.vectors.Get(ctx, id)
}

// Get returns a recipe by id, serving from the cache when possible.
func (s *Service) Get(ctx context.Context, id string) (Recipe, error) {
	if rec, ok := s.cache.Get(id); ok {
		return rec, nil
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return Recipe{}, err
	}
	s.cache.Set(*rec)
	return *rec, nil
}

// GetMany returns recipes in the order of ids, repeats included.
func (s *Service) GetMany(ctx context.Context, ids []string) ([]Recipe, error) {
	return s.repo.GetByIDs(ctx, ids)
}

// Update replaces the editable fields of a recipe owned by userID.
func (s *Service) Update(ctx context.Context, userID, id string, in Recipe) (Recipe, error) {
	if err := Validate(in); err != nil {
		return Recipe{}, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return Recipe{}, err
	}
	if current.OwnerID == "" || current.OwnerID != userID {
		return Recipe{}, domain.ErrForbidden
	}

	in.ID = id
	in.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, in); err != nil {
		return Recipe{}, err
	}
	s.cache.Invalidate(id)

	s.embed(ctx, in)
	return s.Get(ctx, id)
}

// Delete removes a recipe owned by userID.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.OwnerID == "" || current.OwnerID != userID {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(id)
	return nil
}

// List returns recipes matching the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]Recipe, error) {
	return s.repo.List(ctx, f)
}

// ListAll returns every recipe, newest first.
func (s *Service) ListAll(ctx context.Context) ([]Recipe, error) {
	return s.repo.ListAll(ctx)
}

// Count returns the number of stored recipes.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// AddFavorite marks a recipe as a favorite of userID.
func (s *Service) AddFavorite(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.AddFavorite(ctx, userID, id)
}

// RemoveFavorite unmarks a favorite.
func (s *Service) RemoveFavorite(ctx context.Context, userID, id string) error {
	return s.repo.RemoveFavorite(ctx, userID, id)
}

// ListFavorites returns the user's favorite recipes using the filter's paging and sort.
func (s *Service) ListFavorites(ctx context.Context, userID string, f Filter) ([]Recipe, error) {
	f.FavoritesOf = userID
	return s.repo.List(ctx, f)
}

// AddReview records userID's rating of a recipe. A second review by the same
// user replaces the first.
func (s *Service) AddReview(ctx context.Context, userID, id string, rating int, comment string) (Review, error) {
	if !ValidRating(rating) {
		return Review{}, fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidInput, MinRating, MaxRating)
	}

	review, err := s.repo.SaveReview(ctx, id, userID, rating, strings.TrimSpace(comment))
	if err != nil {
		return Review{}, err
	}
	s.cache.Invalidate(id)
	metrics.ReviewsSubmitted.Inc()
	return review, nil
}

// ListReviews returns the reviews of a recipe.
func (s *Service) ListReviews(ctx context.Context, id string) ([]Review, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, id)
}

// Similar returns up to limit recipes closest to the given one. It is empty
// when embeddings are disabled or the recipe has no embedding.
func (s *Service) Similar(ctx context.Context, id string, limit int) ([]Recipe, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if s.vectors == nil {
		return []Recipe{}, nil
	}

	embedding, err := s.vectors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if embedding == nil {
		return []Recipe{}, nil
	}

	return s.nearest(ctx, embedding, limit, []string{id})
}

// SimilarToText embeds free text and returns the closest recipes.
func (s *Service) SimilarToText(ctx context.Context, text string, limit int) ([]Recipe, error) {
	if !s.EmbeddingsEnabled() {
		return []Recipe{}, nil
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return s.nearest(ctx, embedding, limit, nil)
}

func (s *Service) nearest(ctx context.Context, embedding []float32, limit int, exclude []string) ([]Recipe, error) {
	scored, err := s.vectors.FindSimilar(ctx, embedding, limit, exclude)
	if err != nil {
		return nil, err
	}

	recipes := make([]Recipe, 0, len(scored))
	for _, sc := range scored {
		rec, err := s.Get(ctx, sc.RecipeID)
		if errors.Is(err, domain.ErrRecipeNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}
