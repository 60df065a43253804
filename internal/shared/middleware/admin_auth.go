package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"travelblog-backend/internal/shared/response"
	"travelblog-backend/pkg/jwt"
)

// AdminAuth guards the authoring endpoints with the admin session token.
func AdminAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "AUTH001", "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "AUTH002", "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "AUTH003", "invalid or expired token")
			c.Abort()
			return
		}

		if claims.Role != "admin" {
			response.Forbidden(c, "AUTH004", "admin access required")
			c.Abort()
			return
		}

		c.Set("admin_subject", claims.Subject)
		c.Next()
	}
}
