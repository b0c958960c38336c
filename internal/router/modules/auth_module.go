package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	handlers "github.com/oksasatya/go-catalog-api/internal/interface/http"
	"github.com/oksasatya/go-catalog-api/internal/interface/middleware"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
)

// AuthModule routes:
// Public: POST /register, POST /login, POST /logout
// Protected: POST /current-user, POST /current-admin (role admin)
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/logout", m.Handler.Logout)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/current-user", m.Handler.Current)
		auth.POST("/current-admin", middleware.RequireRole(entity.RoleAdmin), m.Handler.Current)
	}
}
