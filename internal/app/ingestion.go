package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipebox/internal/domain"
	"recipebox/internal/ghost"
	"recipebox/internal/logger"
	"recipebox/internal/recipe"
)

// GhostIDPrefix namespaces recipes imported from Ghost posts.
const GhostIDPrefix = "ghost-"

// IngestReport summarizes one ingestion run.
type IngestReport struct {
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// IngestFromGhost imports every Ghost post as a read-only recipe. Posts whose
// updated_at matches the stored source stamp are skipped; failures of single
// posts are logged and counted.
func (a *App) IngestFromGhost(ctx context.Context) (IngestReport, error) {
	var report IngestReport
	if a.ghost == nil {
		return report, fmt.Errorf("%w: ghost is not configured", domain.ErrInvalidInput)
	}
	if a.extractor == nil {
		return report, domain.ErrSuggestionsDisabled
	}
	log := logger.FromContext(ctx)

	posts, err := a.ghost.FetchRecipes(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to fetch recipes from ghost: %w", err)
	}
	report.Fetched = len(posts)
	log.Info("Fetched recipe posts from Ghost", "count", len(posts))

	extracted := 0
	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		id := GhostIDPrefix + post.ID
		existing, err := a.Recipes.Get(ctx, id)
		switch {
		case err == nil && existing.SourceUpdatedAt == post.UpdatedAt:
			report.Skipped++
			log.Debug("Recipe up-to-date, skipping", "recipe_id", id)
			continue
		case err != nil && !errors.Is(err, domain.ErrRecipeNotFound):
			return report, err
		}

		if extracted > 0 && a.cfg.IngestDelay > 0 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(a.cfg.IngestDelay):
			}
		}
		extracted++

		if err := a.ingestPost(ctx, id, post); err != nil {
			report.Failed++
			log.Warn("Failed to ingest post", "post_id", post.ID, "title", post.Title, "error", err)
			continue
		}
		report.Imported++
	}

	log.Info("Ingestion complete",
		"imported", report.Imported, "skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}

func (a *App) ingestPost(ctx context.Context, id string, post ghost.Post) error {
	res, err := a.extractor.ExtractRecipe(ctx, recipe.PostData{
		ID:        id,
		Title:     post.Title,
		UpdatedAt: post.UpdatedAt,
		URL:       post.URL,
		HTML:      post.HTML,
	})
	if res.Meta.AgentName != "" {
		if err := a.Metrics.RecordMeta(ctx, res.Meta); err != nil {
			logger.FromContext(ctx).Warn("Failed to record execution metrics", "error", err)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to extract recipe: %w", err)
	}

	rec := res.Recipe
	rec.OwnerID = ""
	if _, err := a.Recipes.Import(ctx, "ghost", rec); err != nil {
		return err
	}
	return nil
}
