package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_TTL", "")
	t.Setenv("BCRYPT_COST", "")
	cfg := Load()
	if cfg.JWTTTL != 24*time.Hour || cfg.BcryptCost != 10 {
		t.Fatalf("unexpected auth defaults: %v %d", cfg.JWTTTL, cfg.BcryptCost)
	}

	t.Setenv("JWT_TTL", "2h")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("CATEGORY_CACHE_TTL", "0s")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.io , ,http://b.io")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "cat")
	t.Setenv("DB_SSLMODE", "require")
	cfg = Load()

	if cfg.JWTTTL != 2*time.Hour {
		t.Fatalf("expected 2h, got %v", cfg.JWTTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("invalid int must fall back to default, got %d", cfg.BcryptCost)
	}
	if cfg.CategoryCacheTTL != 0 {
		t.Fatalf("expected cache disabled, got %v", cfg.CategoryCacheTTL)
	}
	if got := cfg.CORSOrigins(); len(got) != 2 || got[0] != "http://a.io" || got[1] != "http://b.io" {
		t.Fatalf("unexpected origins %v", got)
	}
	if got := cfg.PostgresDSN(); got != "postgres://u:p@db:5433/cat?sslmode=require" {
		t.Fatalf("unexpected dsn %q", got)
	}
}
