package middleware

import (
	"net"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
)

// AllowPrivateIP bypasses the limiter for loopback and RFC 1918 clients.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		ip := net.ParseIP(ipFromCtx(c))
		return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
	}
}

// AllowAdmin bypasses the limiter for authenticated admins. Mount after Auth.
func AllowAdmin() AllowFunc {
	return func(c *gin.Context) bool {
		return entity.Role(c.GetString(CtxUserRoleKey)) == entity.RoleAdmin
	}
}
