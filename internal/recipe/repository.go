package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"recipebox/internal/domain"
	db "recipebox/internal/recipe/recipedb"
)

// Repository is a database-backed repository for recipes, favorites and reviews.
type Repository struct {
	queries *db.Queries
	db      *sql.DB // Direct database access for transactions
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: db.New(d),
		db:      d,
	}
}

// Create inserts a new recipe. Timestamps default to now.
func (r *Repository) Create(ctx context.Context, rec Recipe) error {
	p, err := toRow(rec)
	if err != nil {
		return err
	}
	if err := r.queries.InsertRecipe(ctx, db.InsertRecipeParams(p)); err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}
	return nil
}

// Save inserts a recipe or overwrites the content of an existing one with the
// same id. Ratings and the original owner are preserved.
func (r *Repository) Save(ctx context.Context, rec Recipe) error {
	p, err := toRow(rec)
	if err != nil {
		return err
	}
	if err := r.queries.UpsertRecipe(ctx, p); err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

// Update overwrites the editable fields of a recipe.
func (r *Repository) Update(ctx context.Context, rec Recipe) error {
	p, err := toRow(rec)
	if err != nil {
		return err
	}
	n, err := r.queries.UpdateRecipe(ctx, db.UpdateRecipeParams{
		Title:        p.Title,
		Description:  p.Description,
		Instructions: p.Instructions,
		Ingredients:  p.Ingredients,
		Tags:         p.Tags,
		Category:     p.Category,
		PrepMinutes:  p.PrepMinutes,
		Servings:     p.Servings,
		SourceUrl:    p.SourceUrl,
		UpdatedAt:    p.UpdatedAt,
		ID:           p.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if n == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// Delete removes a recipe with its favorites, reviews and embedding.
func (r *Repository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteRecipe(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if n == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// Get retrieves a recipe by its ID.
func (r *Repository) Get(ctx context.Context, id string) (*Recipe, error) {
	row, err := r.queries.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	rec, err := fromRow(row)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetByIDs retrieves recipes in the order of ids. Repeated ids yield repeated
// recipes. Any unknown id fails the whole lookup with ErrRecipeNotFound.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]Recipe, error) {
	if len(ids) == 0 {
		return []Recipe{}, nil
	}

	rows, err := r.queries.GetRecipesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipes by IDs: %w", err)
	}

	byID := make(map[string]Recipe, len(rows))
	for _, row := range rows {
		rec, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		byID[rec.ID] = rec
	}

	recipes := make([]Recipe, 0, len(ids))
	for _, id := range ids {
		rec, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, id)
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

// List retrieves recipes matching the filter.
func (r *Repository) List(ctx context.Context, f Filter) ([]Recipe, error) {
	f = f.Normalize()
	rows, err := r.queries.ListRecipes(ctx, db.ListRecipesParams{
		Query:          f.Query,
		Tag:            f.Tag,
		Category:       f.Category,
		Ingredient:     f.Ingredient,
		MaxPrepMinutes: int64(f.MaxPrepMinutes),
		FavoritesOf:    f.FavoritesOf,
		Sort:           string(f.Sort),
		Limit:          int64(f.Limit),
		Offset:         int64(f.Offset),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return fromRows(rows)
}

// ListAll retrieves every recipe, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]Recipe, error) {
	rows, err := r.queries.ListAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return fromRows(rows)
}

// Count returns the number of recipes in the database.
func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.queries.CountRecipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return int(count), nil
}

// AddFavorite marks a recipe as a favorite of the user. Repeated calls are no-ops.
func (r *Repository) AddFavorite(ctx context.Context, userID, recipeID string) error {
	err := r.queries.AddFavorite(ctx, db.AddFavoriteParams{
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite unmarks a favorite. Removing a missing favorite is a no-op.
func (r *Repository) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	err := r.queries.RemoveFavorite(ctx, db.RemoveFavoriteParams{UserID: userID, RecipeID: recipeID})
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// SaveReview stores the user's review of a recipe, replacing any earlier one,
// and updates the recipe's running average in the same transaction.
func (r *Repository) SaveReview(ctx context.Context, recipeID, userID string, rating int, comment string) (Review, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Review{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)

	row, err := q.GetRecipe(ctx, recipeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Review{}, domain.ErrRecipeNotFound
		}
		return Review{}, fmt.Errorf("failed to get recipe for review: %w", err)
	}

	now := time.Now().UTC()
	avg, count := row.RatingAvg, int(row.RatingCount)

	existing, err := q.GetReviewByUser(ctx, db.GetReviewByUserParams{RecipeID: recipeID, UserID: userID})
	var review Review
	switch {
	case errors.Is(err, sql.ErrNoRows):
		review = Review{
			ID:        uuid.NewString(),
			RecipeID:  recipeID,
			UserID:    userID,
			Rating:    rating,
			Comment:   comment,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := q.InsertReview(ctx, db.InsertReviewParams{
			ID:        review.ID,
			RecipeID:  recipeID,
			UserID:    userID,
			Rating:    int64(rating),
			Comment:   comment,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return Review{}, fmt.Errorf("failed to insert review: %w", err)
		}
		avg, count = AddRating(avg, count, rating)
	case err != nil:
		return Review{}, fmt.Errorf("failed to get existing review: %w", err)
	default:
		if err := q.UpdateReview(ctx, db.UpdateReviewParams{
			Rating:    int64(rating),
			Comment:   comment,
			UpdatedAt: now,
			ID:        existing.ID,
		}); err != nil {
			return Review{}, fmt.Errorf("failed to update review: %w", err)
		}
		avg = ReplaceRating(avg, count, int(existing.Rating), rating)
		review = reviewFromRow(existing)
		review.Rating = rating
		review.Comment = comment
		review.UpdatedAt = now
	}

	if err := q.UpdateRecipeRating(ctx, db.UpdateRecipeRatingParams{
		RatingAvg:   avg,
		RatingCount: int64(count),
		ID:          recipeID,
	}); err != nil {
		return Review{}, fmt.Errorf("failed to update recipe rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Review{}, fmt.Errorf("failed to commit review: %w", err)
	}
	return review, nil
}

// ListReviews retrieves a recipe's reviews, newest first.
func (r *Repository) ListReviews(ctx context.Context, recipeID string) ([]Review, error) {
	rows, err := r.queries.ListReviews(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	reviews := make([]Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, reviewFromRow(row))
	}
	return reviews, nil
}

func toRow(rec Recipe) (db.UpsertRecipeParams, error) {
	instructions, err := marshalColumn(rec.Instructions)
	if err != nil {
		return db.UpsertRecipeParams{}, fmt.Errorf("failed to marshal recipe instructions: %w", err)
	}
	ingredients, err := marshalColumn(rec.Ingredients)
	if err != nil {
		return db.UpsertRecipeParams{}, fmt.Errorf("failed to marshal recipe ingredients: %w", err)
	}
	tags, err := marshalColumn(rec.Tags)
	if err != nil {
		return db.UpsertRecipeParams{}, fmt.Errorf("failed to marshal recipe tags: %w", err)
	}

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}

	return db.UpsertRecipeParams{
		ID:              rec.ID,
		OwnerID:         rec.OwnerID,
		Title:           rec.Title,
		Description:     rec.Description,
		Instructions:    instructions,
		Ingredients:     ingredients,
		Tags:            tags,
		Category:        rec.Category,
		PrepMinutes:     int64(rec.PrepMinutes),
		Servings:        int64(rec.Servings),
		SourceUrl:       rec.SourceURL,
		SourceUpdatedAt: rec.SourceUpdatedAt,
		CreatedAt:       rec.CreatedAt.UTC(),
		UpdatedAt:       rec.UpdatedAt.UTC(),
	}, nil
}

// marshalColumn encodes a slice column, storing nil as an empty JSON array.
func marshalColumn[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func fromRow(row db.Recipe) (Recipe, error) {
	rec := Recipe{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		Title:           row.Title,
		Description:     row.Description,
		Category:        row.Category,
		PrepMinutes:     int(row.PrepMinutes),
		Servings:        int(row.Servings),
		SourceURL:       row.SourceUrl,
		SourceUpdatedAt: row.SourceUpdatedAt,
		RatingAvg:       row.RatingAvg,
		RatingCount:     int(row.RatingCount),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.Instructions), &rec.Instructions); err != nil {
		return Recipe{}, fmt.Errorf("failed to unmarshal instructions for recipe %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Ingredients), &rec.Ingredients); err != nil {
		return Recipe{}, fmt.Errorf("failed to unmarshal ingredients for recipe %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Tags), &rec.Tags); err != nil {
		return Recipe{}, fmt.Errorf("failed to unmarshal tags for recipe %s: %w", row.ID, err)
	}
	return rec, nil
}

func fromRows(rows []db.Recipe) ([]Recipe, error) {
	recipes := make([]Recipe, 0, len(rows))
	for _, row := range rows {
		rec, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

func reviewFromRow(row db.Review) Review {
	return Review{
		ID:        row.ID,
		RecipeID:  row.RecipeID,
		UserID:    row.UserID,
		Rating:    int(row.Rating),
		Comment:   row.Comment,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
