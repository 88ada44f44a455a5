// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/inikonoff/fridgechef/internal/domain"
)

// Config holds everything the process needs to start.
type Config struct {
	TelegramToken  string
	YandexAPIKey   string
	YandexFolderID string
	Port           string
	LogLevel       string
	MaxHistory     int
}

// Load reads configuration from environment variables. The three
// credentials are required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		MaxHistory: domain.DefaultMaxHistory,
	}

	var err error
	if cfg.TelegramToken, err = requireEnv("TELEGRAM_TOKEN"); err != nil {
		return nil, err
	}
	if cfg.YandexAPIKey, err = requireEnv("YANDEX_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.YandexFolderID, err = requireEnv("YANDEX_FOLDER_ID"); err != nil {
		return nil, err
	}

	if v := os.Getenv("MAX_HISTORY_MESSAGES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("config: MAX_HISTORY_MESSAGES must be a positive integer, got %q", v)
		}
		cfg.MaxHistory = n
	}

	return cfg, nil
}

func requireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("config: %s is not set", key)
	}
	return v, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
