package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPoolOptionsApply(t *testing.T) {
	cfg, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/catalog?sslmode=disable")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defaultMax := cfg.MaxConns

	PoolOptions{}.apply(cfg)
	if cfg.MaxConns != defaultMax {
		t.Fatalf("zero options changed MaxConns to %d", cfg.MaxConns)
	}

	PoolOptions{MaxConns: 8, MinConns: 2, MaxConnLifetime: time.Minute, HealthCheckPeriod: 30 * time.Second}.apply(cfg)
	if cfg.MaxConns != 8 || cfg.MinConns != 2 {
		t.Fatalf("conns = %d/%d", cfg.MaxConns, cfg.MinConns)
	}
	if cfg.MaxConnLifetime != time.Minute || cfg.HealthCheckPeriod != 30*time.Second {
		t.Fatalf("durations = %v/%v", cfg.MaxConnLifetime, cfg.HealthCheckPeriod)
	}

	PoolOptions{MinConns: 20}.apply(cfg)
	if cfg.MinConns != 2 {
		t.Fatalf("MinConns above MaxConns applied: %d", cfg.MinConns)
	}
}
