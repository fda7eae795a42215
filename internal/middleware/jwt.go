package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dishahq/disha/internal/pkg/errcode"
	"github.com/dishahq/disha/internal/pkg/jwt"
	"github.com/dishahq/disha/internal/pkg/response"
)

const (
	ContextUsernameKey = "username"
	ContextRoleKey     = "role"
)

func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, errcode.ErrUnauthorized, "missing authorization")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, errcode.ErrUnauthorized, "invalid authorization")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(parts[1], secret)
		if err != nil {
			response.Error(c, errcode.ErrUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Set(ContextUsernameKey, claims.Username)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose token carries a
// different role. Must run after JWTAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(ContextRoleKey)
		if !ok || v != role {
			response.Error(c, errcode.ErrForbidden, "insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}
