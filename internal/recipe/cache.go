package recipe

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"recipebox/internal/metrics"
)

// recipeCache is an in-memory LRU of recipes by id with time-based expiry.
// Entries are cloned on the way in and out so callers never share slices
// with the cache.
type recipeCache struct {
	lru *expirable.LRU[string, Recipe]
}

func newRecipeCache(size int, ttl time.Duration) *recipeCache {
	if size <= 0 {
		size = 1
	}
	return &recipeCache{
		lru: expirable.NewLRU[string, Recipe](size, nil, ttl),
	}
}

func (c *recipeCache) Get(id string) (Recipe, bool) {
	rec, ok := c.lru.Get(id)
	if !ok {
		metrics.RecipeCacheLookups.WithLabelValues("miss").Inc()
		return Recipe{}, false
	}
	metrics.RecipeCacheLookups.WithLabelValues("hit").Inc()
	return rec.Clone(), true
}

func (c *recipeCache) Set(rec Recipe) {
	c.lru.Add(rec.ID, rec.Clone())
}

func (c *recipeCache) Invalidate(id string) {
	c.lru.Remove(id)
}
