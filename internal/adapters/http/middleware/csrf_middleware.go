package middleware

import (
	"crypto/subtle"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/config"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/csrf"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CsrfGuard enforces the double-submit check on every state-changing request:
// the X-CSRF-Token header must carry a validly signed token AND match the
// csrf_token cookie. Safe methods pass through untouched.
func CsrfGuard(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		headerToken := c.Get(csrf.HeaderName)
		cookieToken := c.Cookies(csrf.CookieName)

		if headerToken == "" || cookieToken == "" {
			return response.Forbidden(c, "CSRF token missing")
		}
		if !csrf.Verify(cfg.CSRF.Secret, headerToken) {
			return response.Forbidden(c, "CSRF token invalid")
		}
		if subtle.ConstantTimeCompare([]byte(headerToken), []byte(cookieToken)) != 1 {
			return response.Forbidden(c, "CSRF token mismatch")
		}

		return c.Next()
	}
}
