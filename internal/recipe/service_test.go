package recipe_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/database/dbtest"
	"recipebox/internal/domain"
	"recipebox/internal/llm"
	"recipebox/internal/recipe"
)

// keywordEmbedder maps text onto fixed axes so similarity is predictable.
type keywordEmbedder struct{}

func (keywordEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = strings.ToLower(text)
	vec := []float32{0.01, 0.01, 0.01}
	for i, kw := range []string{"pasta", "salad", "cake"} {
		if strings.Contains(text, kw) {
			vec[i] = 1
		}
	}
	return vec, nil
}

func newService(t *testing.T) *recipe.Service {
	t.Helper()
	d := dbtest.Open(t)
	return recipe.NewService(
		recipe.NewRepository(d.SQL),
		recipe.WithEmbeddings(llm.NewVectorRepository(d.SQL), keywordEmbedder{}),
		recipe.WithCache(16, time.Minute),
	)
}

func TestServiceCreateValidates(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Create(ctx, "u1", recipe.Recipe{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(ctx, "u1", recipe.Recipe{Title: "X", Ingredients: []recipe.Ingredient{{Name: ""}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	created, err := svc.Create(ctx, "u1", recipe.Recipe{Title: "Pasta", RatingAvg: 5, RatingCount: 9})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.OwnerID)
	assert.Zero(t, created.RatingCount)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pasta", got.Title)
}

func TestServiceOwnership(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Create(ctx, "owner", recipe.Recipe{Title: "Pasta"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "intruder", created.ID, recipe.Recipe{Title: "Hacked"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, "intruder", created.ID), domain.ErrForbidden)

	updated, err := svc.Update(ctx, "owner", created.ID, recipe.Recipe{Title: "Pasta al forno"})
	require.NoError(t, err)
	assert.Equal(t, "Pasta al forno", updated.Title)

	// cached read must reflect the update
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pasta al forno", got.Title)

	require.NoError(t, svc.Delete(ctx, "owner", created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestServiceImportedRecipesAreReadOnly(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	imported, err := svc.Import(ctx, "seed", recipe.Recipe{ID: "seed-1", Title: "Cake"})
	require.NoError(t, err)
	assert.Equal(t, "seed-1", imported.ID)

	_, err = svc.Update(ctx, "", "seed-1", recipe.Recipe{Title: "Other"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestServiceFavoritesAndReviews(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Create(ctx, "owner", recipe.Recipe{Title: "Salad"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AddFavorite(ctx, "u1", "missing"), domain.ErrRecipeNotFound)
	require.NoError(t, svc.AddFavorite(ctx, "u1", created.ID))
	favs, err := svc.ListFavorites(ctx, "u1", recipe.Filter{})
	require.NoError(t, err)
	require.Len(t, favs, 1)

	_, err = svc.AddReview(ctx, "u1", created.ID, 6, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.AddReview(ctx, "u1", created.ID, 3, "  fine  ")
	require.NoError(t, err)
	_, err = svc.AddReview(ctx, "u2", created.ID, 5, "")
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got.RatingAvg, 1e-9)
	assert.Equal(t, 2, got.RatingCount)

	reviews, err := svc.ListReviews(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	_, err = svc.ListReviews(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestServiceSimilar(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	pasta, err := svc.Create(ctx, "o", recipe.Recipe{Title: "Pasta Carbonara"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "o", recipe.Recipe{Title: "Chocolate Cake"})
	require.NoError(t, err)
	pesto, err := svc.Create(ctx, "o", recipe.Recipe{Title: "Pesto Pasta"})
	require.NoError(t, err)

	similar, err := svc.Similar(ctx, pasta.ID, 1)
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, pesto.ID, similar[0].ID)

	byText, err := svc.SimilarToText(ctx, "something with cake", 1)
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, "Chocolate Cake", byText[0].Title)

	_, err = svc.Similar(ctx, "missing", 3)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestServiceWithoutEmbeddings(t *testing.T) {
	ctx := context.Background()
	svc := recipe.NewService(recipe.NewRepository(dbtest.Open(t).SQL))
	assert.False(t, svc.EmbeddingsEnabled())

	created, err := svc.Create(ctx, "o", recipe.Recipe{Title: "Pasta"})
	require.NoError(t, err)

	similar, err := svc.Similar(ctx, created.ID, 5)
	require.NoError(t, err)
	assert.Empty(t, similar)
}
