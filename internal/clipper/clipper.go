package clipper

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"recipebox/internal/domain"
	"recipebox/internal/ghost"
	"recipebox/internal/logger"
	"recipebox/internal/metrics"
	"recipebox/internal/recipe"
	"recipebox/internal/shared"
)

// maxContentChars bounds the page text handed to the LLM.
const maxContentChars = 20000

// RecipeExtractor turns page content into a structured recipe.
type RecipeExtractor interface {
	ExtractRecipe(ctx context.Context, data recipe.PostData) (recipe.ExtractorResult, error)
}

// RecipeCreator stores a recipe on behalf of a user.
type RecipeCreator interface {
	Create(ctx context.Context, ownerID string, rec recipe.Recipe) (recipe.Recipe, error)
}

// UsageRecorder persists token usage of each call.
type UsageRecorder interface {
	RecordMeta(ctx context.Context, meta shared.AgentMeta) error
}

// Result is the outcome of a clip.
type Result struct {
	Recipe recipe.Recipe    `json:"recipe"`
	Post   *ghost.Post      `json:"post,omitempty"`
	Meta   shared.AgentMeta `json:"-"`
}

// Clipper handles fetching and extracting recipes from URLs.
type Clipper struct {
	httpClient *http.Client
	extractor  RecipeExtractor
	recipes    RecipeCreator
	recorder   UsageRecorder
	publisher  ghost.Client
}

// Option configures a Clipper.
type Option func(*Clipper)

// WithPublisher publishes every clipped recipe to Ghost.
func WithPublisher(client ghost.Client) Option {
	return func(c *Clipper) { c.publisher = client }
}

// WithRecorder records extractor token usage.
func WithRecorder(r UsageRecorder) Option {
	return func(c *Clipper) { c.recorder = r }
}

// WithHTTPClient overrides the client used to download pages.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Clipper) { c.httpClient = hc }
}

// NewClipper creates a new Clipper instance.
func NewClipper(extractor RecipeExtractor, recipes RecipeCreator, opts ...Option) *Clipper {
	c := &Clipper{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		extractor:  extractor,
		recipes:    recipes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ImportURL fetches the page, extracts the recipe with the LLM and stores it
// owned by userID. Publishing to Ghost is best effort.
func (c *Clipper) ImportURL(ctx context.Context, userID, rawURL string) (Result, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Result{}, fmt.Errorf("%w: %q is not an http(s) URL", domain.ErrInvalidInput, rawURL)
	}
	log := logger.FromContext(ctx).With("url", u.String())

	title, content, err := c.fetchAndCleanHTML(ctx, u.String())
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	extracted, err := c.extractor.ExtractRecipe(ctx, recipe.PostData{
		Title: title,
		URL:   u.String(),
		HTML:  content,
	})
	c.record(ctx, extracted.Meta)
	if err != nil {
		return Result{}, fmt.Errorf("ai extraction failed: %w", err)
	}

	rec := extracted.Recipe
	rec.SourceURL = u.String()
	saved, err := c.recipes.Create(ctx, userID, rec)
	if err != nil {
		return Result{}, err
	}
	metrics.RecipesImported.WithLabelValues("url").Inc()
	log.Info("Recipe clipped", "recipe_id", saved.ID, "title", saved.Title)

	res := Result{Recipe: saved, Meta: extracted.Meta}
	if c.publisher != nil {
		post, err := c.publisher.CreatePost(ctx, saved.Title, formatToHTML(saved), true)
		if err != nil {
			log.Warn("Failed to publish clipped recipe to Ghost", "recipe_id", saved.ID, "error", err)
		} else {
			res.Post = post
		}
	}
	return res, nil
}

func (c *Clipper) record(ctx context.Context, meta shared.AgentMeta) {
	if c.recorder == nil || meta.AgentName == "" {
		return
	}
	if err := c.recorder.RecordMeta(ctx, meta); err != nil {
		logger.FromContext(ctx).Warn("Failed to record execution metrics", "agent", meta.AgentName, "error", err)
	}
}

// fetchAndCleanHTML downloads the page and returns its title and visible text
// with scripts, navigation and ads removed.
func (c *Clipper) fetchAndCleanHTML(ctx context.Context, pageURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", "recipebox-clipper/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", "", err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	doc.Find("script, style, noscript, nav, header, footer, aside, iframe, form, ads, .ads, #ads, .advert, .comments").Remove()

	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if len(text) > maxContentChars {
		text = text[:maxContentChars]
	}
	return title, text, nil
}

// formatToHTML renders a recipe as a Ghost post body.
func formatToHTML(r recipe.Recipe) string {
	var sb strings.Builder
	if r.SourceURL != "" {
		src := html.EscapeString(r.SourceURL)
		fmt.Fprintf(&sb, "<p><i>Imported from: <a href=\"%s\">%s</a></i></p>", src, src)
	}
	if r.Description != "" {
		fmt.Fprintf(&sb, "<p>%s</p>", html.EscapeString(r.Description))
	}

	sb.WriteString("<h2>Ingredients</h2><ul>")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&sb, "<li>%s</li>", html.EscapeString(ing.String()))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h2>Instructions</h2><ol>")
	for _, step := range r.Instructions {
		fmt.Fprintf(&sb, "<li>%s</li>", html.EscapeString(step))
	}
	sb.WriteString("</ol>")

	sb.WriteString("<hr>")
	fmt.Fprintf(&sb, "<p><strong>Prep Time:</strong> %d min | <strong>Servings:</strong> %d</p>", r.PrepMinutes, r.Servings)

	return sb.String()
}
