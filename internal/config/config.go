package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Discord DiscordConfig
	Redis   RedisConfig
	Sheets  SheetsConfig
	Guilds  GuildsConfig
	Wizard  WizardConfig
	Sync    SyncConfig
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string
	AppID   string
	GuildID string // Optional: for guild-specific commands
}

// RedisConfig holds Redis-specific configuration. An empty Addr selects
// the in-memory repositories.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SheetsConfig holds Google Sheets configuration. An empty SpreadsheetID
// disables the mirror and pushes go to a log-only keeper.
type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
}

// GuildsConfig holds the community's guild list
type GuildsConfig struct {
	Names []string
}

// WizardConfig holds registration wizard timing
type WizardConfig struct {
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

// SyncConfig holds record-keeper push timing
type SyncConfig struct {
	MinInterval time.Duration
	MaxInterval time.Duration
	PushTimeout time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Discord: DiscordConfig{
			Token:   os.Getenv("DISCORD_TOKEN"),
			AppID:   os.Getenv("DISCORD_APP_ID"),
			GuildID: os.Getenv("DISCORD_GUILD_ID"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
			SheetName:       getEnvOrDefault("SHEETS_TAB_NAME", "Roster"),
			CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		},
		Guilds: GuildsConfig{
			Names: splitCSV(os.Getenv("GUILD_NAMES")),
		},
		Wizard: WizardConfig{
			SessionTTL:    getEnvAsDurationOrDefault("WIZARD_SESSION_TTL", 30*time.Minute),
			SweepInterval: getEnvAsDurationOrDefault("WIZARD_SWEEP_INTERVAL", 5*time.Minute),
		},
		Sync: SyncConfig{
			MinInterval: getEnvAsDurationOrDefault("SYNC_MIN_INTERVAL", 30*time.Second),
			MaxInterval: getEnvAsDurationOrDefault("SYNC_MAX_INTERVAL", 5*time.Minute),
			PushTimeout: getEnvAsDurationOrDefault("SYNC_PUSH_TIMEOUT", time.Minute),
		},
	}

	// Validate required fields
	if cfg.Discord.Token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}
	if cfg.Discord.AppID == "" {
		return nil, fmt.Errorf("DISCORD_APP_ID is required")
	}
	if cfg.Sheets.SpreadsheetID != "" && cfg.Sheets.CredentialsFile == "" {
		return nil, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS is required when SHEETS_SPREADSHEET_ID is set")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
