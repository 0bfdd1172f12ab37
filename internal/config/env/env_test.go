package env_test

import (
	"errors"
	"testing"
	"time"

	"wheel_backend/internal/config/env"
)

func TestSessionConfig(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SESSION_IDLE_TTL", "")

	cfg, err := env.NewSessionConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(cfg.SecretKey()) != "s3cret" {
		t.Errorf("unexpected secret %q", cfg.SecretKey())
	}
	if cfg.TokenTTL() != 2*time.Hour {
		t.Errorf("expected 2h, got %s", cfg.TokenTTL())
	}
	if cfg.IdleTTL() != 30*time.Minute {
		t.Errorf("expected default idle ttl, got %s", cfg.IdleTTL())
	}
}

func TestSessionConfig_Errors(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	if _, err := env.NewSessionConfig(); err == nil {
		t.Error("expected error without secret")
	}

	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "soon")
	if _, err := env.NewSessionConfig(); err == nil {
		t.Error("expected error for bad ttl")
	}
}

func TestHTTPConfig(t *testing.T) {
	t.Setenv("HTTP_HOST", "0.0.0.0")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := env.NewHTTPConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Address() != "0.0.0.0:9090" {
		t.Errorf("unexpected address %q", cfg.Address())
	}
}

func TestPGConfig_Optional(t *testing.T) {
	t.Setenv("PG_DSN", "")
	if _, err := env.NewPGConfig(); !errors.Is(err, env.ErrPGNotConfigured) {
		t.Errorf("expected ErrPGNotConfigured, got %v", err)
	}

	t.Setenv("PG_DSN", "postgres://localhost/wheel")
	cfg, err := env.NewPGConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DSN() != "postgres://localhost/wheel" {
		t.Errorf("unexpected dsn %q", cfg.DSN())
	}
}

func TestRuntimeConfig(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("WHEEL_SEED", "42")

	cfg, err := env.NewRuntimeConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Strict() {
		t.Error("development must be strict")
	}
	if seed, ok := cfg.Seed(); !ok || seed != 42 {
		t.Errorf("expected seed 42, got %d %v", seed, ok)
	}

	t.Setenv("APP_ENV", "")
	t.Setenv("WHEEL_SEED", "")
	cfg, err = env.NewRuntimeConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Strict() || cfg.Env() != "production" {
		t.Errorf("expected non-strict production, got %s", cfg.Env())
	}
	if _, ok := cfg.Seed(); ok {
		t.Error("seed must be absent")
	}
}
