package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"recipebox/internal/recipe"
)

// SeedIDPrefix namespaces recipes loaded from seed files.
const SeedIDPrefix = "seed-"

type seedFile struct {
	Recipes []recipe.Recipe `yaml:"recipes"`
}

// SeedFromYAML imports the recipes of a seed file. Recipes without an id get
// one derived from the title so seeding twice updates instead of duplicating.
func (a *App) SeedFromYAML(ctx context.Context, r io.Reader) (int, error) {
	var f seedFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return 0, fmt.Errorf("failed to decode seed file: %w", err)
	}

	for i, rec := range f.Recipes {
		if rec.ID == "" {
			rec.ID = SeedIDPrefix + slug(rec.Title)
		}
		if _, err := a.Recipes.Import(ctx, "seed", rec); err != nil {
			return i, fmt.Errorf("failed to seed recipe %d (%s): %w", i, rec.Title, err)
		}
	}
	return len(f.Recipes), nil
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
