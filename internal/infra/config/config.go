package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken         string
	DatabaseURL           string
	OwnerTelegramID       int64 // the only identity allowed to /broadcast
	LogLevel              string
	Environment           string
	CronSpecPersonalCheck string // daily personal-list birthday check
	CronSpecGroupCheck    string // daily group birthday check
	DocsURL               string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	ownerIDStr := os.Getenv("BOT_OWNER_ID")
	if ownerIDStr == "" {
		return nil, fmt.Errorf("BOT_OWNER_ID is not set")
	}
	cfg.OwnerTelegramID, err = strconv.ParseInt(ownerIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid BOT_OWNER_ID: %w", err)
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.CronSpecPersonalCheck = os.Getenv("CRON_SPEC_PERSONAL_CHECK")
	if cfg.CronSpecPersonalCheck == "" {
		cfg.CronSpecPersonalCheck = "0 0 * * *" // Default: midnight daily
	}

	cfg.CronSpecGroupCheck = os.Getenv("CRON_SPEC_GROUP_CHECK")
	if cfg.CronSpecGroupCheck == "" {
		cfg.CronSpecGroupCheck = "0 0 * * *" // Default: midnight daily
	}

	cfg.DocsURL = os.Getenv("DOCS_URL")
	if cfg.DocsURL == "" {
		cfg.DocsURL = "https://techtutezs-organization.gitbook.io/docs/"
	}

	return cfg, nil
}
