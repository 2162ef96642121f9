package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Retry.MaxRetries != 3 {
		t.Fatalf("expected 3 retries, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.Delay != 2*time.Second {
		t.Fatalf("expected 2s retry delay, got %s", cfg.Retry.Delay)
	}
	if cfg.Redis.BalanceLifetime != time.Hour {
		t.Fatalf("expected 1h balance lifetime, got %s", cfg.Redis.BalanceLifetime)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TRANSACTION_MAX_RETRIES", "5")
	t.Setenv("TRANSACTION_RETRY_DELAY_MS", "250")

	cfg := Load()

	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Retry.MaxRetries != 5 {
		t.Fatalf("expected 5 retries, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.Delay != 250*time.Millisecond {
		t.Fatalf("expected 250ms retry delay, got %s", cfg.Retry.Delay)
	}
}
