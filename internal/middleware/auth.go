package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/collabhub/backend/internal/constants"
	apierrors "github.com/collabhub/backend/internal/errors"
	"github.com/collabhub/backend/internal/token"
)

// RequireAuth resolves the bearer session token to an identity or rejects
// the request before any handler runs. The token is read from the session
// cookie, falling back to the Authorization header.
func RequireAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(constants.TokenCookieName)
		if err != nil || raw == "" {
			raw = bearerToken(c)
		}
		if raw == "" {
			apierrors.Unauthorized(c, "no session token provided")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			apierrors.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyIdentity, claims)
		c.Next()
	}
}

// GetIdentity retrieves the authenticated identity from the request context.
func GetIdentity(c *gin.Context) (*token.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return nil, false
	}

	claims, ok := value.(*token.Claims)
	return claims, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
