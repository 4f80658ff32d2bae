package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parathan/blog-core/internal/middleware"
)

// setAuthCookies sets the httpOnly token cookie plus a JS-readable flag the
// frontend uses to decide whether to show the logged-in UI. Cross-site
// frontends need SameSite=None with Secure, which only works over HTTPS, so
// development falls back to Lax.
func (h *Handler) setAuthCookies(c *gin.Context, token string) {
	maxAge := int(TokenTTL.Seconds())
	sameSite := http.SameSiteLaxMode
	secure := false
	if !h.dev {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie(middleware.AuthCookieName, token, maxAge, "/", "", secure, true)
	c.SetCookie(middleware.AuthFlagCookieName, "true", maxAge, "/", "", secure, false)
}

func (h *Handler) clearAuthCookies(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if !h.dev {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", secure, true)
	c.SetCookie(middleware.AuthFlagCookieName, "", -1, "/", "", secure, false)
}
