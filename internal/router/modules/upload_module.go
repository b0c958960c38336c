package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-catalog-api/internal/interface/http"
	"github.com/oksasatya/go-catalog-api/internal/interface/middleware"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
)

// UploadModule routes: POST /images (authenticated, multipart "file").
type UploadModule struct {
	Handler *handlers.UploadHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewUploadModule(h *handlers.UploadHandler, jwt *helpers.JWTManager, rdb *redis.Client) *UploadModule {
	return &UploadModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/images", m.Handler.Upload)
	}
}
