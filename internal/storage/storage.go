package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"recipebox/internal/recipe"
)

// versionLayout renders updated_at without characters that are unsafe in file names.
const versionLayout = "20060102T150405.000000000Z"

// Backup is the on-disk form of one recipe version.
type Backup struct {
	Recipe    recipe.Recipe `json:"recipe"`
	Embedding []float32     `json:"embedding,omitempty"`
}

// RecipeStore provides a file-based backup store for recipes. Each file is
// named "<id>_<updated_at>.json".
type RecipeStore struct {
	basePath string
}

// NewRecipeStore creates a new RecipeStore and ensures the base directory exists.
func NewRecipeStore(basePath string) (*RecipeStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &RecipeStore{basePath: basePath}, nil
}

// getVersionedPath returns the full path for a given recipe ID and version.
func (s *RecipeStore) getVersionedPath(recipeID string, updatedAt time.Time) string {
	filename := fmt.Sprintf("%s_%s.json", recipeID, updatedAt.UTC().Format(versionLayout))
	return filepath.Join(s.basePath, filename)
}

// Save writes one version of a recipe.
func (s *RecipeStore) Save(b Backup) error {
	if b.Recipe.ID == "" {
		return fmt.Errorf("cannot back up a recipe without id")
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	filePath := s.getVersionedPath(b.Recipe.ID, b.Recipe.UpdatedAt)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}
	return nil
}

// Load retrieves a specific version of a recipe.
func (s *RecipeStore) Load(recipeID string, updatedAt time.Time) (*Backup, error) {
	return readBackup(s.getVersionedPath(recipeID, updatedAt))
}

// Exists checks if a specific version of a recipe file exists.
func (s *RecipeStore) Exists(recipeID string, updatedAt time.Time) bool {
	_, err := os.Stat(s.getVersionedPath(recipeID, updatedAt))
	return err == nil
}

// RemoveStaleVersions removes every file of recipeID except the given version.
func (s *RecipeStore) RemoveStaleVersions(recipeID string, keep time.Time) error {
	pattern := filepath.Join(s.basePath, fmt.Sprintf("%s_*.json", recipeID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to glob stale files: %w", err)
	}

	keepPath := s.getVersionedPath(recipeID, keep)
	for _, match := range matches {
		if match == keepPath {
			continue
		}
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("failed to remove stale file %s: %w", match, err)
		}
	}
	return nil
}

// ListAll loads every stored version, ordered by file name.
func (s *RecipeStore) ListAll() ([]Backup, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	backups := make([]Backup, 0, len(names))
	for _, name := range names {
		b, err := readBackup(filepath.Join(s.basePath, name))
		if err != nil {
			return nil, err
		}
		backups = append(backups, *b)
	}
	return backups, nil
}

func readBackup(path string) (*Backup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe %s: %w", filepath.Base(path), err)
	}
	return &b, nil
}
