package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissing is returned when a required variable is unset.
var ErrMissing = errors.New("missing required configuration")

type Config struct {
	Env         string
	Port        string
	LogLevel    string
	DatabaseURL string

	DiscordToken string
	// MonitoredChannels is the raw comma-delimited allow-list.
	// Parse it once with service.ParseChannelSet.
	MonitoredChannels string

	RulesFile       string
	ReplyRatePerSec float64
	EventTimeout    time.Duration
}

// Load reads the bot configuration from the environment, loading .env first
// if one exists. Unset required keys are reported as ErrMissing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Storage()
	cfg.Port = getEnv("PORT", "3000")
	cfg.DiscordToken = os.Getenv("DISCORD_TOKEN")
	cfg.RulesFile = os.Getenv("RULES_FILE")
	cfg.ReplyRatePerSec = getEnvFloat("REPLY_RATE_PER_SEC", 5)
	cfg.EventTimeout = getEnvDuration("EVENT_TIMEOUT", 10*time.Second)

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("%w: DISCORD_TOKEN", ErrMissing)
	}

	// Set-but-empty is a valid "monitor nothing"; unset is a mistake.
	channels, ok := os.LookupEnv("DISCORD_LISTENING_CHANNEL_IDS")
	if !ok {
		return nil, fmt.Errorf("%w: DISCORD_LISTENING_CHANNEL_IDS", ErrMissing)
	}
	cfg.MonitoredChannels = channels

	if cfg.ReplyRatePerSec <= 0 {
		return nil, fmt.Errorf("REPLY_RATE_PER_SEC must be positive, got %v", cfg.ReplyRatePerSec)
	}
	if cfg.EventTimeout <= 0 {
		return nil, fmt.Errorf("EVENT_TIMEOUT must be positive, got %s", cfg.EventTimeout)
	}

	return cfg, nil
}

// Storage loads only what the offline commands need: environment, logging
// and the database location.
func Storage() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: getEnv("DATABASE_URL", "sqlite://./data/r9k.db"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
