package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"recipebox/internal/clipper"
	"recipebox/internal/config"
	"recipebox/internal/domain"
	"recipebox/internal/metrics"
	"recipebox/internal/shared"
	"recipebox/internal/shopping"
	"recipebox/internal/suggest"
)

const (
	commandList    = "/list"
	commandSuggest = "/suggest"
	commandMetrics = "/metrics"

	// Context bloat alert threshold for a single LLM call.
	promptTokenAlert = 4000

	messageTimeout = 2 * time.Minute
	usageDays      = 7
)

// sender is the part of tgbotapi.BotAPI the bot uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Importer clips recipes from web pages.
type Importer interface {
	ImportURL(ctx context.Context, userID, rawURL string) (clipper.Result, error)
}

// ListGenerator builds shopping lists.
type ListGenerator interface {
	Generate(ctx context.Context, userID, name string, recipeIDs []string) (shopping.ShoppingList, error)
}

// RecipeSuggester proposes stored recipes for a free-text request.
type RecipeSuggester interface {
	Enabled() bool
	SuggestRecipes(ctx context.Context, req suggest.RecipeRequest) ([]suggest.Suggestion, shared.AgentMeta, error)
}

// UsageReporter reports LLM token usage.
type UsageReporter interface {
	GetDailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error)
}

// Services are the application features reachable from chat. A nil
// Importer disables URL clipping.
type Services struct {
	Importer  Importer
	Lists     ListGenerator
	Suggester RecipeSuggester
	Usage     UsageReporter
}

// Bot answers Telegram webhook updates.
type Bot struct {
	api sender
	cfg *config.Config
	svc Services
	wg  sync.WaitGroup
}

// NewBot initializes the Telegram API client and sets the webhook.
func NewBot(cfg *config.Config, svc Services) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	slog.Info("Authorized on Telegram", "account", api.Self.UserName)

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	slog.Info("Webhook set", "description", resp.Description)

	return newBot(api, cfg, svc), nil
}

func newBot(api sender, cfg *config.Config, svc Services) *Bot {
	return &Bot{api: api, cfg: cfg, svc: svc}
}

// HandleWebhook acknowledges the update immediately and processes allowed
// messages in the background.
func (b *Bot) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		slog.Warn("Error parsing update", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if !b.isAllowed(msg.From.ID) {
		slog.Warn("Unauthorized access attempt", "user_id", msg.From.ID, "username", msg.From.UserName)
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), messageTimeout)
		defer cancel()
		b.processMessage(ctx, msg)
	}()
}

// Wait blocks until every in-flight message has been answered.
func (b *Bot) Wait() {
	b.wg.Wait()
}

func (b *Bot) isAllowed(userID int64) bool {
	if userID != 0 && userID == b.cfg.AdminTelegramID {
		return true
	}
	return slices.Contains(b.cfg.TelegramAllowedUserIDs, userID)
}

// userID maps a Telegram account to the application's user namespace.
func userID(from *tgbotapi.User) string {
	return "tg:" + strconv.FormatInt(from.ID, 10)
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	command, args, _ := strings.Cut(text, " ")
	command, _, _ = strings.Cut(command, "@") // "/list@recipebox_bot"
	args = strings.TrimSpace(args)

	switch {
	case command == commandMetrics:
		b.handleMetrics(ctx, msg)
	case command == commandList:
		b.handleList(ctx, msg, strings.Fields(args))
	case command == commandSuggest:
		b.handleSuggest(ctx, msg, args)
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.handleClip(ctx, msg, text)
	default:
		b.reply(msg.Chat.ID, helpText)
	}
}

func (b *Bot) handleClip(ctx context.Context, msg *tgbotapi.Message, url string) {
	if b.svc.Importer == nil {
		b.reply(msg.Chat.ID, "⚠️ Recipe import is not configured.")
		return
	}

	sent, err := b.api.Send(markdown(tgbotapi.NewMessage(msg.Chat.ID, "✂️ *Clipping recipe...*")))
	if err != nil {
		slog.Error("Failed to send initial reply", "error", err)
		return
	}

	res, err := b.svc.Importer.ImportURL(ctx, userID(msg.From), url)
	b.checkBloat(res.Meta)

	var text string
	if err != nil {
		slog.Error("Error clipping recipe", "url", url, "error", err)
		text = formatError("Error clipping recipe", err)
	} else {
		text = formatClipResult(res)
	}
	b.send(markdownEdit(tgbotapi.NewEditMessageText(msg.Chat.ID, sent.MessageID, text)))
}

func (b *Bot) handleList(ctx context.Context, msg *tgbotapi.Message, ids []string) {
	if len(ids) == 0 {
		b.reply(msg.Chat.ID, "Usage: `/list <recipe id> <recipe id> ...`")
		return
	}

	list, err := b.svc.Lists.Generate(ctx, userID(msg.From), "", ids)
	if err != nil {
		b.reply(msg.Chat.ID, formatError("Error building shopping list", err))
		return
	}
	b.reply(msg.Chat.ID, formatShoppingList(list))
}

func (b *Bot) handleSuggest(ctx context.Context, msg *tgbotapi.Message, request string) {
	if b.svc.Suggester == nil || !b.svc.Suggester.Enabled() {
		b.reply(msg.Chat.ID, "⚠️ Suggestions are not configured.")
		return
	}
	if request == "" {
		b.reply(msg.Chat.ID, "Usage: `/suggest <what you feel like eating>`")
		return
	}

	suggestions, meta, err := b.svc.Suggester.SuggestRecipes(ctx, suggest.RecipeRequest{Request: request})
	b.checkBloat(meta)
	if err != nil {
		b.reply(msg.Chat.ID, formatError("Error generating suggestions", err))
		return
	}
	b.reply(msg.Chat.ID, formatSuggestions(suggestions))
}

func (b *Bot) handleMetrics(ctx context.Context, msg *tgbotapi.Message) {
	if b.cfg.AdminTelegramID == 0 || msg.From.ID != b.cfg.AdminTelegramID {
		b.reply(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}

	usage, err := b.svc.Usage.GetDailyUsage(ctx, usageDays)
	if err != nil {
		b.reply(msg.Chat.ID, "❌ Error fetching metrics.")
		return
	}
	b.reply(msg.Chat.ID, formatMetricsReport(usage, metrics.GetSysHealth(b.dataDir())))
}

func (b *Bot) dataDir() string {
	return filepath.Dir(b.cfg.DatabasePath)
}

func (b *Bot) checkBloat(meta shared.AgentMeta) {
	if meta.Usage.PromptTokens <= promptTokenAlert || b.cfg.AdminTelegramID == 0 {
		return
	}
	alert := fmt.Sprintf("⚠️ *Context Bloat Alert*\nAgent: %s\nModel: %s\nPrompt Tokens: %d",
		meta.AgentName, meta.Usage.Model, meta.Usage.PromptTokens)
	b.send(markdown(tgbotapi.NewMessage(b.cfg.AdminTelegramID, alert)))
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(markdown(tgbotapi.NewMessage(chatID, text)))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		slog.Error("Failed to send telegram message", "error", err)
	}
}

func markdown(m tgbotapi.MessageConfig) tgbotapi.MessageConfig {
	m.ParseMode = tgbotapi.ModeMarkdown
	return m
}

func markdownEdit(m tgbotapi.EditMessageTextConfig) tgbotapi.EditMessageTextConfig {
	m.ParseMode = tgbotapi.ModeMarkdown
	return m
}

// friendlyError hides internal details for errors users did not cause.
func friendlyError(err error) string {
	for _, known := range []error{
		domain.ErrInvalidInput,
		domain.ErrRecipeNotFound,
		domain.ErrForbidden,
		domain.ErrSuggestionsDisabled,
	} {
		if errors.Is(err, known) {
			return err.Error()
		}
	}
	return "something went wrong"
}
