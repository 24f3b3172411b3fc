package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123456:test-token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")
	t.Setenv("PRODUCT_URLS", "https://example.com/product/1, https://example.com/product/2")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.PollInterval != 300*time.Second {
			t.Errorf("expected default poll interval 300s, got %v", cfg.PollInterval)
		}
		if cfg.HTTPTimeout != 10*time.Second {
			t.Errorf("expected default http timeout 10s, got %v", cfg.HTTPTimeout)
		}
		if cfg.TelegramChatID != -100200300 {
			t.Errorf("expected chat id -100200300, got %d", cfg.TelegramChatID)
		}
		if len(cfg.ProductURLs) != 2 {
			t.Fatalf("expected 2 product URLs, got %d", len(cfg.ProductURLs))
		}
		if cfg.ProductURLs[1] != "https://example.com/product/2" {
			t.Errorf("expected trimmed URL, got %q", cfg.ProductURLs[1])
		}
		if cfg.UserAgent == "" {
			t.Error("expected a default user agent")
		}
	})

	t.Run("custom_intervals", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("POLL_INTERVAL", "90s")
		t.Setenv("HTTP_TIMEOUT", "5s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.PollInterval != 90*time.Second {
			t.Errorf("expected poll interval 90s, got %v", cfg.PollInterval)
		}
		if cfg.HTTPTimeout != 5*time.Second {
			t.Errorf("expected http timeout 5s, got %v", cfg.HTTPTimeout)
		}
	})

	t.Run("missing_token", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TELEGRAM_TOKEN", "")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for missing TELEGRAM_TOKEN")
		}
	})

	t.Run("bad_chat_id", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for non-numeric TELEGRAM_CHAT_ID")
		}
	})

	t.Run("missing_urls", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PRODUCT_URLS", "")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for missing PRODUCT_URLS")
		}
	})

	t.Run("invalid_url", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PRODUCT_URLS", "https://example.com/ok,::not a url::")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for malformed product URL")
		}
	})

	t.Run("negative_interval", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("POLL_INTERVAL", "-10s")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for negative POLL_INTERVAL")
		}
	})
}
