// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Environment ("production" enables JSON logging).
	Env string

	// Monitoring
	ProductURLs  []string
	PollInterval time.Duration
	HTTPTimeout  time.Duration
	UserAgent    string

	// Telegram
	TelegramToken  string
	TelegramChatID int64

	// HTTP surfaces
	APIPort     string
	MetricsPort string
}

// defaultUserAgent mirrors a desktop Chrome identity; the monitored site
// serves a reduced page to unknown agents.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/111.0.0.0 Safari/537.36"

// Load reads configuration from environment variables and validates
// required fields. The URL list is fixed at process start; it is not
// runtime-mutable.
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Env:         getEnv("ENV", "development"),
		UserAgent:   getEnv("USER_AGENT", defaultUserAgent),
		APIPort:     getEnv("API_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if chatID == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is required")
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", chatID, err)
	}
	cfg.TelegramChatID = id

	urls, err := parseURLList(os.Getenv("PRODUCT_URLS"))
	if err != nil {
		return nil, err
	}
	cfg.ProductURLs = urls

	interval, err := parseDuration(os.Getenv("POLL_INTERVAL"), 300*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
	}
	cfg.PollInterval = interval

	timeout, err := parseDuration(os.Getenv("HTTP_TIMEOUT"), 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

// parseURLList splits the comma-separated PRODUCT_URLS value, trims each
// entry, and validates that every entry is a well-formed URL.
func parseURLList(raw string) ([]string, error) {
	if raw == "" {
		return nil, fmt.Errorf("PRODUCT_URLS is required")
	}

	validate := validator.New()

	var urls []string
	for _, u := range strings.Split(raw, ",") {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if err := validate.Var(u, "url"); err != nil {
			return nil, fmt.Errorf("invalid product URL %q", u)
		}
		urls = append(urls, u)
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("PRODUCT_URLS contains no URLs")
	}
	return urls, nil
}

func parseDuration(s string, defaultVal time.Duration) (time.Duration, error) {
	if s == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %v", d)
	}
	return d, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
