package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tasktracker/internal/auth"
	"tasktracker/internal/constants"
	apierrors "tasktracker/internal/errors"
)

// RequireAuth verifies the bearer token and binds the acting identity to
// the request context. Missing header, missing scheme prefix, and empty
// token are indistinguishable to the client.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			abortUnauthorized(c, "Authorization token missing")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, constants.BearerPrefix))
		if raw == "" {
			abortUnauthorized(c, "Authorization token missing")
			return
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortUnauthorized(c, "Token expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		userID, err := claims.SubjectUserID()
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	apierrors.Respond(c, apierrors.Unauthorized(message))
	c.Abort()
}

// GetUserID retrieves the authenticated user ID from the request context
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	userID, ok := value.(uint64)
	if !ok {
		return 0, false
	}
	return userID, true
}
