package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
	"github.com/oksasatya/go-catalog-api/pkg/response"
)

// Auth validates the login token from the Authorization header or the access_token cookie.
// It sets userID, userEmail and userRole in the Gin context on success.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		if jwt == nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token", err.Error())
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Set(CtxUserRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole lets through only callers whose token carries role. Mount after Auth.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if entity.Role(c.GetString(CtxUserRoleKey)) != role {
			response.Error(c, http.StatusForbidden, "access denied", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
