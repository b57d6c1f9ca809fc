package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/vybh")
	t.Setenv("JWT_SECRET", "supersecret")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("REFRESH_TOKEN_TTL", "168h")
}

func TestLoad_Success(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_ADDRESS", "localhost:6380")
	t.Setenv("BREVO_API_KEY", "key")
	t.Setenv("MAIL_FROM", "hello@vybh.app")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("AccessTokenTTL want 15m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 168*time.Hour {
		t.Fatalf("RefreshTokenTTL want 168h, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.RedisAddress != "localhost:6380" {
		t.Fatalf("RedisAddress got %q", cfg.RedisAddress)
	}
	if cfg.MailFrom != "hello@vybh.app" {
		t.Fatalf("MailFrom got %q", cfg.MailFrom)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddress != ":8080" {
		t.Fatalf("HTTPAddress default got %q", cfg.HTTPAddress)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ACCESS_TOKEN_TTL", "1m")
	t.Setenv("REFRESH_TOKEN_TTL", "1h")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing JWT_SECRET, got nil")
	}
}

func TestLoad_ZeroTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL", "0s")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero ACCESS_TOKEN_TTL, got nil")
	}
}
