package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_LIMIT", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")

	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Fatal("expected limiter enabled by default")
	}
	if cfg.Limit != 60 {
		t.Fatalf("expected default limit 60, got %d", cfg.Limit)
	}
	if cfg.Window != time.Minute {
		t.Fatalf("expected default window 1m, got %v", cfg.Window)
	}
	if cfg.KeyStrategy != "ip_route" {
		t.Fatalf("expected default key strategy ip_route, got %q", cfg.KeyStrategy)
	}
}

func TestLoadRateLimitConfigClampsBadValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_LIMIT", "-5")
	t.Setenv("RATE_LIMIT_WINDOW", "not-a-duration")

	cfg := LoadRateLimitConfig()
	if cfg.Limit != 1 {
		t.Fatalf("expected limit clamped to 1, got %d", cfg.Limit)
	}
	if cfg.Window != time.Minute {
		t.Fatalf("expected fallback window 1m, got %v", cfg.Window)
	}
}

func TestLoadCacheConfigReadsEnv(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "45s")

	cfg := LoadCacheConfig()
	if cfg.Enabled {
		t.Fatal("expected cache disabled")
	}
	if cfg.TTL != 45*time.Second {
		t.Fatalf("expected ttl 45s, got %v", cfg.TTL)
	}
}
