package app

import (
	"context"
	"fmt"

	"recipebox/internal/logger"
	"recipebox/internal/storage"
)

// Backup writes the current version of every recipe to the backup directory
// and prunes older versions. It returns the number of files written.
func (a *App) Backup(ctx context.Context) (int, error) {
	recipes, err := a.Recipes.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, rec := range recipes {
		if a.Backups.Exists(rec.ID, rec.UpdatedAt) {
			continue
		}

		embedding, err := a.Recipes.Embedding(ctx, rec.ID)
		if err != nil {
			return written, err
		}
		if err := a.Backups.Save(storage.Backup{Recipe: rec, Embedding: embedding}); err != nil {
			return written, err
		}
		if err := a.Backups.RemoveStaleVersions(rec.ID, rec.UpdatedAt); err != nil {
			logger.FromContext(ctx).Warn("Failed to remove stale backups", "recipe_id", rec.ID, "error", err)
		}
		written++
	}
	return written, nil
}

// Restore loads every backup into the database. Embeddings are restored
// alongside when the backup carries one.
func (a *App) Restore(ctx context.Context) (int, error) {
	backups, err := a.Backups.ListAll()
	if err != nil {
		return 0, err
	}

	for i, b := range backups {
		if err := a.Recipes.SaveWithEmbedding(ctx, b.Recipe, b.Embedding); err != nil {
			return i, fmt.Errorf("failed to restore recipe %s: %w", b.Recipe.ID, err)
		}
	}
	return len(backups), nil
}
