package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-catalog-api/internal/interface/http"
	"github.com/oksasatya/go-catalog-api/internal/interface/middleware"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
)

// ProductModule routes:
// Public reads: GET /product-limit/:limit, GET /product-one/:id, POST /product-sort,
// POST /product-filter, GET /product-search
// Protected writes: POST /product, PUT /product/:id, DELETE /product/:id
type ProductModule struct {
	Handler *handlers.ProductHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewProductModule(h *handlers.ProductHandler, jwt *helpers.JWTManager, rdb *redis.Client) *ProductModule {
	return &ProductModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	reads := rg.Group("/")
	reads.Use(middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()))
	{
		reads.GET("/product-limit/:limit", m.Handler.FetchLimit)
		reads.GET("/product-one/:id", m.Handler.FetchOne)
		reads.POST("/product-sort", m.Handler.FetchSort)
		reads.POST("/product-filter", m.Handler.FetchFilter)
		reads.GET("/product-search", m.Handler.Search)
	}

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), middleware.AllowAdmin()))
	{
		auth.POST("/product", m.Handler.Create)
		auth.PUT("/product/:id", m.Handler.Update)
		auth.DELETE("/product/:id", m.Handler.Delete)
	}
}
