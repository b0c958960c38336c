package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserRoleKey  = "userRole"
)

// tokenFromRequest prefers "Authorization: Bearer <token>" and falls back to the cookie.
func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if token, err := c.Cookie("access_token"); err == nil {
		return token
	}
	return ""
}

// Principal returns the caller set by Auth. ok is false on unauthenticated routes.
func Principal(c *gin.Context) (entity.AuthPayload, bool) {
	id := c.GetInt64(CtxUserIDKey)
	if id == 0 {
		return entity.AuthPayload{}, false
	}
	return entity.AuthPayload{
		ID:    id,
		Email: c.GetString(CtxUserEmailKey),
		Role:  entity.Role(c.GetString(CtxUserRoleKey)),
	}, true
}
