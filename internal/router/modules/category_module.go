package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-catalog-api/internal/interface/http"
	"github.com/oksasatya/go-catalog-api/internal/interface/middleware"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
)

// CategoryModule routes: GET /category is public, writes need a token.
type CategoryModule struct {
	Handler *handlers.CategoryHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewCategoryModule(h *handlers.CategoryHandler, jwt *helpers.JWTManager, rdb *redis.Client) *CategoryModule {
	return &CategoryModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	rg.GET("/category", middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), nil), m.Handler.List)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), middleware.AllowAdmin()))
	{
		auth.POST("/category", m.Handler.Create)
		auth.DELETE("/category/:id", m.Handler.Delete)
	}
}
