package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fryegg/api/internal/apperr"
	"fryegg/api/internal/models"
	"fryegg/api/internal/security"
)

// Authenticator resolves a bearer token to its user and claims.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, *security.AccessClaims, error)
}

// Auth guards protected routes: a valid JWT backed by a live session row
// is required, so logged-out tokens are rejected immediately.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		user, claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set("access_token", token)
		c.Set("access_claims", *claims)
		c.Set("current_user", user)

		c.Next()
	}
}

// GuestOnly guards sign-in/sign-up style routes: an authenticated caller
// is redirected back to the landing page instead of being served.
func GuestOnly(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if ok {
			if _, _, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error":    "already_authenticated",
					"redirect": "/",
				})
				return
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

func abortUnauthorized(c *gin.Context) {
	kind := apperr.KindUnauthorized
	c.AbortWithStatusJSON(kind.HTTPStatus(), gin.H{
		"error":   string(kind),
		"message": kind.Message(),
	})
}
