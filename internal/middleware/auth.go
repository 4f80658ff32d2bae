package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parathan/blog-core/internal/pkg/jwt"
	"github.com/parathan/blog-core/internal/pkg/response"
)

const (
	ctxKeyUserID    = "auth:user_id"
	ctxKeyUserEmail = "auth:user_email"

	// AuthCookieName is the httpOnly cookie carrying the JWT.
	AuthCookieName = "Authentication"
	// AuthFlagCookieName is the JS-readable flag cookie the frontend polls.
	AuthFlagCookieName = "IsAuthenticated"
)

// extractToken pulls the JWT from the Authorization header or, failing that,
// the auth cookie.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if token, err := c.Cookie(AuthCookieName); err == nil {
		return token
	}
	return ""
}

// Auth rejects requests without a valid token.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.UnauthorizedMsg(c, "authentication required")
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.UnauthorizedMsg(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyUserEmail, claims.Email)
		c.Next()
	}
}

// OptionalAuth resolves the current user when a valid token is present but
// lets anonymous requests through.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if claims, err := jwt.Parse(token); err == nil {
				c.Set(ctxKeyUserID, claims.UserID)
				c.Set(ctxKeyUserEmail, claims.Email)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id, empty when anonymous.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ctxKeyUserID)
}

// CurrentUserEmail returns the authenticated user's email, empty when anonymous.
func CurrentUserEmail(c *gin.Context) string {
	return c.GetString(ctxKeyUserEmail)
}

// IsAuthenticated reports whether the request carries a valid identity.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}
