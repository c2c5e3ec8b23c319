package llm

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	db "recipebox/internal/llm/vectordb"
)

// ScoredRecipe is a recipe id ranked by cosine similarity to a query vector.
type ScoredRecipe struct {
	RecipeID string
	Score    float64
}

type VectorRepository struct {
	queries *db.Queries
	db      *sql.DB
}

func NewVectorRepository(d *sql.DB) *VectorRepository {
	return &VectorRepository{
		queries: db.New(d),
		db:      d,
	}
}

// WithTx returns a new VectorRepository that uses the provided transaction.
func (r *VectorRepository) WithTx(tx *sql.Tx) *VectorRepository {
	return &VectorRepository{
		queries: db.New(tx),
		db:      r.db,
	}
}

// Save stores or replaces the embedding of a recipe.
func (r *VectorRepository) Save(ctx context.Context, recipeID string, embedding []float32) error {
	if len(embedding) == 0 {
		return fmt.Errorf("refusing to save empty embedding for recipe %s", recipeID)
	}

	err := r.queries.UpsertEmbedding(ctx, db.UpsertEmbeddingParams{
		RecipeID:  recipeID,
		Embedding: float32SliceToByteSlice(embedding),
	})
	if err != nil {
		return fmt.Errorf("failed to save embedding: %w", err)
	}
	return nil
}

// Get returns the stored embedding, or nil when the recipe has none.
func (r *VectorRepository) Get(ctx context.Context, recipeID string) ([]float32, error) {
	row, err := r.queries.GetEmbeddingByRecipeID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get embedding by recipe ID: %w", err)
	}

	embedding, err := byteSliceToFloat32Slice(row.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to convert byte slice to float32 slice: %w", err)
	}
	return embedding, nil
}

// Delete removes a recipe's embedding.
func (r *VectorRepository) Delete(ctx context.Context, recipeID string) error {
	if err := r.queries.DeleteEmbedding(ctx, recipeID); err != nil {
		return fmt.Errorf("failed to delete embedding: %w", err)
	}
	return nil
}

// FindSimilar ranks every stored embedding by cosine similarity to the query,
// highest first, and returns the top limit entries not in excludeIDs.
func (r *VectorRepository) FindSimilar(ctx context.Context, queryEmbedding []float32, limit int, excludeIDs []string) ([]ScoredRecipe, error) {
	allEmbeddings, err := r.queries.ListAllEmbeddings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list all embeddings: %w", err)
	}

	excludeMap := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excludeMap[id] = struct{}{}
	}

	scored := make([]ScoredRecipe, 0, len(allEmbeddings))
	for _, row := range allEmbeddings {
		if _, excluded := excludeMap[row.RecipeID]; excluded {
			continue
		}

		embed, err := byteSliceToFloat32Slice(row.Embedding)
		if err != nil {
			slog.Warn("Skipping malformed embedding", "recipe_id", row.RecipeID, "error", err)
			continue
		}

		scored = append(scored, ScoredRecipe{
			RecipeID: row.RecipeID,
			Score:    cosineSimilarity(queryEmbedding, embed),
		})
	}

	slices.SortStableFunc(scored, func(a, b ScoredRecipe) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if limit >= 0 && limit < len(scored) {
		scored = scored[:limit]
	}
	return scored, nil
}

// float32SliceToByteSlice encodes floats as little-endian IEEE 754.
func float32SliceToByteSlice(floats []float32) []byte {
	buf := make([]byte, 4*len(floats))
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(f))
	}
	return buf
}

// byteSliceToFloat32Slice converts a byte slice to a slice of float32.
func byteSliceToFloat32Slice(bytes []byte) ([]float32, error) {
	if len(bytes) == 0 {
		return nil, nil
	}
	if len(bytes)%4 != 0 {
		return nil, fmt.Errorf("byte slice length is not a multiple of 4")
	}
	floats := make([]float32, len(bytes)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(bytes[i*4 : (i+1)*4]))
	}
	return floats, nil
}

// cosineSimilarity calculates the cosine similarity between two vectors.
// Vectors of different length score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
