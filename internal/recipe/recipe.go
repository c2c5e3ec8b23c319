package recipe

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Quantity is an ingredient amount.
//
// Decoding is total: JSON numbers keep their value, numeric strings are parsed,
// and anything else (missing, null, booleans, text, NaN, ±Inf) becomes 0.
type Quantity float64

// Float returns the amount as a finite float64; non-finite values read as 0.
func (q Quantity) Float() float64 {
	f := float64(q)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*q = 0
		return nil
	}

	switch t := v.(type) {
	case float64:
		*q = Quantity(t)
	case string:
		*q = parseQuantity(t)
	default:
		*q = 0
	}
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Float())
}

func (q *Quantity) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		*q = 0
		return nil
	}
	*q = parseQuantity(value.Value)
	return nil
}

func parseQuantity(s string) Quantity {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Quantity(f)
}

// Ingredient is one (name, quantity, unit) line of a recipe.
type Ingredient struct {
	Name     string   `json:"name" yaml:"name"`
	Quantity Quantity `json:"quantity" yaml:"quantity"`
	Unit     string   `json:"unit" yaml:"unit"`
}

// String renders the line for prompts and chat messages, e.g. "200 g Flour".
func (i Ingredient) String() string {
	qty := strconv.FormatFloat(i.Quantity.Float(), 'f', -1, 64)
	if i.Unit == "" {
		return strings.TrimSpace(qty + " " + i.Name)
	}
	return fmt.Sprintf("%s %s %s", qty, i.Unit, i.Name)
}

// Recipe is a stored recipe.
type Recipe struct {
	ID              string       `json:"id" yaml:"id"`
	OwnerID         string       `json:"owner_id" yaml:"owner_id"`
	Title           string       `json:"title" yaml:"title"`
	Description     string       `json:"description" yaml:"description"`
	Instructions    []string     `json:"instructions" yaml:"instructions"`
	Ingredients     []Ingredient `json:"ingredients" yaml:"ingredients"`
	Tags            []string     `json:"tags" yaml:"tags"`
	Category        string       `json:"category" yaml:"category"`
	PrepMinutes     int          `json:"prep_minutes" yaml:"prep_minutes"`
	Servings        int          `json:"servings" yaml:"servings"`
	SourceURL       string       `json:"source_url,omitempty" yaml:"source_url"`
	SourceUpdatedAt string       `json:"source_updated_at,omitempty" yaml:"-"`
	RatingAvg       float64      `json:"rating_avg" yaml:"-"`
	RatingCount     int          `json:"rating_count" yaml:"-"`
	CreatedAt       time.Time    `json:"created_at" yaml:"-"`
	UpdatedAt       time.Time    `json:"updated_at" yaml:"-"`
}

// ToEmbeddingText is the semantic representation used for vector search.
func (r Recipe) ToEmbeddingText() string {
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name)
	}
	return fmt.Sprintf("Title: %s\nCategory: %s\nTags: %s\nIngredients: %s\nPrep Time: %d min",
		r.Title, r.Category, strings.Join(r.Tags, ", "), strings.Join(names, ", "), r.PrepMinutes)
}

// Review is one user's rating of a recipe. A user has at most one review per recipe.
type Review struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipe_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SortOrder selects the ordering of List results.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortRating SortOrder = "rating"
	SortTitle  SortOrder = "title"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Filter narrows List results. Zero values disable a criterion.
type Filter struct {
	Query          string
	Tag            string
	Category       string
	Ingredient     string
	MaxPrepMinutes int
	FavoritesOf    string
	Sort           SortOrder
	Limit          int
	Offset         int
}

// Normalize clamps paging and defaults the sort order.
func (f Filter) Normalize() Filter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	switch f.Sort {
	case SortRating, SortTitle:
	default:
		f.Sort = SortNewest
	}
	return f
}

// Clone returns a copy that shares no slices with r.
func (r Recipe) Clone() Recipe {
	r.Instructions = slices.Clone(r.Instructions)
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Tags = slices.Clone(r.Tags)
	return r
}
