package modules

import (
	"expvar"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-catalog-api/internal/interface/middleware"
)

var publishOnce sync.Once

// DebugModule exposes expvar at GET /debug/vars, including pool statistics.
type DebugModule struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client
}

func NewDebugModule(pool *pgxpool.Pool, rdb *redis.Client) *DebugModule {
	return &DebugModule{Pool: pool, Redis: rdb}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	publishOnce.Do(func() {
		expvar.Publish("pg_pool", expvar.Func(func() any {
			if m.Pool == nil {
				return nil
			}
			s := m.Pool.Stat()
			return map[string]any{
				"total_conns":    s.TotalConns(),
				"idle_conns":     s.IdleConns(),
				"acquired_conns": s.AcquiredConns(),
				"max_conns":      s.MaxConns(),
				"acquire_count":  s.AcquireCount(),
			}
		}))
		expvar.Publish("redis_pool", expvar.Func(func() any {
			if m.Redis == nil {
				return nil
			}
			s := m.Redis.PoolStats()
			return map[string]any{"hits": s.Hits, "misses": s.Misses, "total_conns": s.TotalConns, "idle_conns": s.IdleConns}
		}))
	})

	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
