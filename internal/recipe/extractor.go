package recipe

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"recipebox/internal/llm"
	"recipebox/internal/shared"
)

//go:embed extractor_prompt.md
var extractorPrompt string

var extractorTemplate = template.Must(template.New("extractor").Parse(extractorPrompt))

// AgentExtractor names the extraction step in execution metrics.
const AgentExtractor = "Extractor"

// PostData is the raw page handed to the extractor.
type PostData struct {
	ID        string
	Title     string
	UpdatedAt string
	URL       string
	HTML      string
}

type ExtractorResult struct {
	Recipe Recipe
	Meta   shared.AgentMeta
}

// Extractor turns unstructured recipe pages into Recipes with an LLM.
type Extractor struct {
	textGen llm.TextGenerator
}

// NewExtractor creates an Extractor.
func NewExtractor(textGen llm.TextGenerator) *Extractor {
	return &Extractor{textGen: textGen}
}

// ExtractRecipe asks the LLM for a structured recipe. The result carries the
// post's id, source stamp and URL; the page title fills in a missing title.
func (e *Extractor) ExtractRecipe(ctx context.Context, data PostData) (ExtractorResult, error) {
	start := time.Now()

	prompt, err := buildExtractorPrompt(data)
	if err != nil {
		return ExtractorResult{}, fmt.Errorf("failed to build extractor prompt: %w", err)
	}

	llmResp, err := e.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return ExtractorResult{}, fmt.Errorf("failed to get LLM response: %w", err)
	}

	meta := shared.NewAgentMeta(AgentExtractor, llmResp.Usage, start)

	var rec Recipe
	if err := json.Unmarshal([]byte(cleanJSON(llmResp.Content)), &rec); err != nil {
		return ExtractorResult{Meta: meta}, fmt.Errorf("failed to unmarshal LLM response: %w", err)
	}

	rec.ID = data.ID
	rec.SourceUpdatedAt = data.UpdatedAt
	if rec.SourceURL == "" {
		rec.SourceURL = data.URL
	}
	if strings.TrimSpace(rec.Title) == "" {
		rec.Title = data.Title
	}

	return ExtractorResult{Recipe: rec, Meta: meta}, nil
}

func buildExtractorPrompt(data PostData) (string, error) {
	var buf bytes.Buffer
	if err := extractorTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// cleanJSON strips markdown code fences some models wrap around JSON answers.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
