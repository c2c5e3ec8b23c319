package suggest

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"recipebox/internal/domain"
	"recipebox/internal/llm"
	"recipebox/internal/logger"
	"recipebox/internal/recipe"
	"recipebox/internal/shared"
)

//go:embed recipes_prompt.md
var recipesPrompt string

//go:embed ingredients_prompt.md
var ingredientsPrompt string

var funcs = template.FuncMap{"join": strings.Join}

var (
	recipesTemplate     = template.Must(template.New("recipes").Funcs(funcs).Parse(recipesPrompt))
	ingredientsTemplate = template.Must(template.New("ingredients").Parse(ingredientsPrompt))
)

// Agent names recorded in execution metrics.
const (
	AgentRecipeSuggester     = "RecipeSuggester"
	AgentIngredientSuggester = "IngredientSuggester"
)

const (
	DefaultLimit  = 5
	MaxLimit      = 10
	candidatePool = 15
	maxServings   = 50
)

// RecipeFinder supplies the candidate recipes offered to the model.
type RecipeFinder interface {
	EmbeddingsEnabled() bool
	SimilarToText(ctx context.Context, text string, limit int) ([]recipe.Recipe, error)
	List(ctx context.Context, f recipe.Filter) ([]recipe.Recipe, error)
}

// UsageRecorder persists token usage of each call.
type UsageRecorder interface {
	RecordMeta(ctx context.Context, meta shared.AgentMeta) error
}

// RecipeRequest asks for recipes matching a free-text wish.
type RecipeRequest struct {
	Request string
	Pantry  []string
	Limit   int
}

// Suggestion is one recommended stored recipe.
type Suggestion struct {
	RecipeID           string   `json:"recipe_id"`
	Title              string   `json:"title"`
	Reason             string   `json:"reason"`
	MissingIngredients []string `json:"missing_ingredients"`
}

type rawSuggestions struct {
	Suggestions []Suggestion `json:"suggestions"`
}

type rawIngredients struct {
	Ingredients []recipe.Ingredient `json:"ingredients"`
}

type recipesPromptData struct {
	Request    string
	Pantry     []string
	Candidates []recipe.Recipe
	Limit      int
}

type ingredientsPromptData struct {
	Title    string
	Servings int
}

// Suggester answers recipe and ingredient questions with an LLM.
type Suggester struct {
	recipes  RecipeFinder
	textGen  llm.TextGenerator
	recorder UsageRecorder
}

// NewSuggester creates a Suggester. A nil textGen disables suggestions and a
// nil recorder skips usage bookkeeping.
func NewSuggester(recipes RecipeFinder, textGen llm.TextGenerator, recorder UsageRecorder) *Suggester {
	return &Suggester{recipes: recipes, textGen: textGen, recorder: recorder}
}

// Enabled reports whether a text generator is configured.
func (s *Suggester) Enabled() bool {
	return s.textGen != nil
}

// SuggestRecipes picks stored recipes for the request. Only ids from the
// candidate set are returned, each at most once.
func (s *Suggester) SuggestRecipes(ctx context.Context, req RecipeRequest) ([]Suggestion, shared.AgentMeta, error) {
	if !s.Enabled() {
		return nil, shared.AgentMeta{}, domain.ErrSuggestionsDisabled
	}
	req.Request = strings.TrimSpace(req.Request)
	if req.Request == "" {
		return nil, shared.AgentMeta{}, fmt.Errorf("%w: request is required", domain.ErrInvalidInput)
	}
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}

	candidates, err := s.candidates(ctx, req)
	if err != nil {
		return nil, shared.AgentMeta{}, err
	}
	if len(candidates) == 0 {
		return []Suggestion{}, shared.AgentMeta{AgentName: AgentRecipeSuggester}, nil
	}

	start := time.Now()
	prompt, err := render(recipesTemplate, recipesPromptData{
		Request:    req.Request,
		Pantry:     req.Pantry,
		Candidates: candidates,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, shared.AgentMeta{}, err
	}

	resp, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, shared.AgentMeta{}, fmt.Errorf("failed to get LLM response: %w", err)
	}
	meta := shared.NewAgentMeta(AgentRecipeSuggester, resp.Usage, start)
	s.record(ctx, meta)

	var raw rawSuggestions
	if err := json.Unmarshal([]byte(cleanJSON(resp.Content)), &raw); err != nil {
		return nil, meta, fmt.Errorf("failed to parse suggestions: %w. Response: %s", err, resp.Content)
	}

	byID := make(map[string]recipe.Recipe, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	out := make([]Suggestion, 0, req.Limit)
	seen := make(map[string]bool)
	for _, sug := range raw.Suggestions {
		rec, ok := byID[sug.RecipeID]
		if !ok || seen[sug.RecipeID] {
			continue
		}
		seen[sug.RecipeID] = true
		sug.Title = rec.Title
		if sug.MissingIngredients == nil {
			sug.MissingIngredients = []string{}
		}
		out = append(out, sug)
		if len(out) == req.Limit {
			break
		}
	}
	return out, meta, nil
}

// SuggestIngredients drafts an ingredient list for a dish.
func (s *Suggester) SuggestIngredients(ctx context.Context, title string, servings int) ([]recipe.Ingredient, shared.AgentMeta, error) {
	if !s.Enabled() {
		return nil, shared.AgentMeta{}, domain.ErrSuggestionsDisabled
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.AgentMeta{}, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if servings <= 0 {
		servings = 2
	}
	if servings > maxServings {
		return nil, shared.AgentMeta{}, fmt.Errorf("%w: servings must be at most %d", domain.ErrInvalidInput, maxServings)
	}

	start := time.Now()
	prompt, err := render(ingredientsTemplate, ingredientsPromptData{Title: title, Servings: servings})
	if err != nil {
		return nil, shared.AgentMeta{}, err
	}

	resp, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, shared.AgentMeta{}, fmt.Errorf("failed to get LLM response: %w", err)
	}
	meta := shared.NewAgentMeta(AgentIngredientSuggester, resp.Usage, start)
	s.record(ctx, meta)

	var raw rawIngredients
	if err := json.Unmarshal([]byte(cleanJSON(resp.Content)), &raw); err != nil {
		return nil, meta, fmt.Errorf("failed to parse ingredients: %w. Response: %s", err, resp.Content)
	}

	out := make([]recipe.Ingredient, 0, len(raw.Ingredients))
	for _, ing := range raw.Ingredients {
		ing.Name = strings.TrimSpace(ing.Name)
		if ing.Name == "" {
			continue
		}
		ing.Unit = strings.TrimSpace(ing.Unit)
		out = append(out, ing)
	}
	return out, meta, nil
}

// candidates prefers semantic neighbours of the request and falls back to
// the newest recipes.
func (s *Suggester) candidates(ctx context.Context, req RecipeRequest) ([]recipe.Recipe, error) {
	if s.recipes.EmbeddingsEnabled() {
		query := req.Request
		if len(req.Pantry) > 0 {
			query += "\nIngredients: " + strings.Join(req.Pantry, ", ")
		}
		similar, err := s.recipes.SimilarToText(ctx, query, candidatePool)
		if err != nil {
			logger.FromContext(ctx).Warn("Semantic search failed, falling back to newest recipes", "error", err)
		} else if len(similar) > 0 {
			return similar, nil
		}
	}
	return s.recipes.List(ctx, recipe.Filter{Sort: recipe.SortNewest, Limit: candidatePool})
}

func (s *Suggester) record(ctx context.Context, meta shared.AgentMeta) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordMeta(ctx, meta); err != nil {
		logger.FromContext(ctx).Warn("Failed to record execution metrics", "agent", meta.AgentName, "error", err)
	}
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to build %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
