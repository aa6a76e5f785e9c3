package middleware

import (
	"strings"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/services"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// sentinel cookie values left behind by logout; treated as no token at all
func isSentinel(token string) bool {
	return token == "" || token == "none" || token == "null"
}

// extractToken pulls the identity token from the request. An explicit
// Authorization header wins over the cookie so API clients can override a
// stale browser session.
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Cookies("token")
}

// Protect creates authentication middleware. The token is verified and the
// user re-fetched, so the request's role is always current.
func Protect(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := extractToken(c)
		if isSentinel(accessToken) {
			return response.Unauthorized(c, "Not authorized to access this route")
		}

		principal, err := authService.ResolvePrincipal(c.Context(), accessToken)
		if err != nil {
			return response.Unauthorized(c, "Not authorized to access this route")
		}

		c.Locals("userID", principal.UserID)
		c.Locals("role", principal.Role)
		c.Locals("principal", principal)

		return c.Next()
	}
}

// Authorize creates role-based authorization middleware
func Authorize(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Not authorized to access this route")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "User role "+role+" is not authorized to access this route")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return Authorize("admin")
}

// Principal returns the authenticated principal set by Protect
func Principal(c *fiber.Ctx) *services.Principal {
	p, _ := c.Locals("principal").(*services.Principal)
	return p
}
