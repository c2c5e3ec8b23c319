package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the application.
type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	DatabasePath string
	BackupPath   string

	RecipeCacheSize int
	RecipeCacheTTL  time.Duration

	GroqAPIKey         string
	GeminiAPIKey       string
	EmbeddingCachePath string

	GhostURL        string
	GhostContentKey string
	GhostAdminKey   string
	GhostPublish    bool

	// Pause between LLM extractions during ingestion (free-tier rate limits).
	IngestDelay time.Duration

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first when present.
func NewFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		DatabasePath:       getEnv("DATABASE_PATH", "data/recipebox.db"),
		BackupPath:         getEnv("BACKUP_PATH", "data/backup"),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		EmbeddingCachePath: os.Getenv("EMBEDDING_CACHE_PATH"),
		GhostURL:           strings.TrimRight(os.Getenv("GHOST_API_URL"), "/"),
		GhostContentKey:    os.Getenv("GHOST_CONTENT_API_KEY"),
		GhostAdminKey:      os.Getenv("GHOST_ADMIN_API_KEY"),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.RecipeCacheSize, err = getEnvInt("RECIPE_CACHE_SIZE", 256); err != nil {
		return nil, err
	}
	if cfg.RecipeCacheTTL, err = getEnvDuration("RECIPE_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.IngestDelay, err = getEnvDuration("INGEST_DELAY", 5*time.Second); err != nil {
		return nil, err
	}
	if v := os.Getenv("GHOST_PUBLISH_CLIPS"); v != "" {
		if cfg.GhostPublish, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid GHOST_PUBLISH_CLIPS value: %w", err)
		}
	}

	if cfg.GhostAdminKey == "" {
		// Fallback to content key if only one is provided
		cfg.GhostAdminKey = cfg.GhostContentKey
	}
	if cfg.GhostURL != "" && cfg.GhostContentKey == "" {
		return nil, fmt.Errorf("GHOST_CONTENT_API_KEY environment variable not set")
	}

	if cfg.TelegramAllowedUserIDs, err = parseIDList(os.Getenv("TELEGRAM_ALLOWED_USER_IDS")); err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS value: %w", err)
	}
	if v := os.Getenv("TELEGRAM_ADMIN_ID"); v != "" {
		if cfg.AdminTelegramID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_ID value: %w", err)
		}
	}
	if cfg.TelegramBotToken != "" && cfg.TelegramWebhookURL == "" {
		return nil, fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}

	return cfg, nil
}

// SuggestionsEnabled reports whether an LLM is configured for text generation.
func (c *Config) SuggestionsEnabled() bool {
	return c.GroqAPIKey != "" || c.GeminiAPIKey != ""
}

// EmbeddingsEnabled reports whether recipe embeddings can be generated.
func (c *Config) EmbeddingsEnabled() bool {
	return c.GeminiAPIKey != ""
}

// GhostEnabled reports whether the Ghost blog integration is configured.
func (c *Config) GhostEnabled() bool {
	return c.GhostURL != "" && c.GhostContentKey != ""
}

// TelegramEnabled reports whether the Telegram bot should be started.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func parseIDList(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
