package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NASA_API_KEY", "")
	t.Setenv("HF_API_TOKEN", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("RATE_LIMIT_HEAVY_REQUESTS", "")
	t.Setenv("RATE_LIMIT_HEAVY_WINDOW", "")

	cfg := Load()
	if cfg.NASAAPIKey != "DEMO_KEY" {
		t.Fatalf("expected demo key fallback, got %q", cfg.NASAAPIKey)
	}
	if cfg.HFAPIToken != "" {
		t.Fatalf("expected empty inference token, got %q", cfg.HFAPIToken)
	}
	if cfg.DevMode() {
		t.Fatal("production must be the default environment")
	}
	if cfg.RateLimitHeavy.Requests != 10 || cfg.RateLimitHeavy.Window != 5*time.Minute {
		t.Fatalf("expected heavy tier 10/5m, got %+v", cfg.RateLimitHeavy)
	}
	if cfg.RateLimitGeneral.Requests != 100 || cfg.RateLimitGeneral.Window != 15*time.Minute {
		t.Fatalf("expected general tier 100/15m, got %+v", cfg.RateLimitGeneral)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NASA_API_KEY", "real-key")
	t.Setenv("APP_ENV", "development")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("NASA_TIMEOUT", "10s")

	cfg := Load()
	if cfg.NASAAPIKey != "real-key" {
		t.Fatalf("expected key override, got %q", cfg.NASAAPIKey)
	}
	if !cfg.DevMode() {
		t.Fatal("expected development mode")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("expected trimmed origin list, got %v", cfg.AllowedOrigins)
	}
	if cfg.NASATimeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", cfg.NASATimeout)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("NASA_LIMIT_RPS", "not-a-number")
	t.Setenv("NASA_TIMEOUT", "soon")

	cfg := Load()
	if cfg.NASALimitRPS != 5 {
		t.Fatalf("expected default rps on malformed value, got %v", cfg.NASALimitRPS)
	}
	if cfg.NASATimeout != 30*time.Second {
		t.Fatalf("expected default timeout on malformed value, got %v", cfg.NASATimeout)
	}
}
