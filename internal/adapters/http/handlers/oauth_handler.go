package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/config"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/domain"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/services"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const stateCookieName = "oauth_state"

// OAuthHandler handles the Google OAuth login flow
type OAuthHandler struct {
	oauthService *services.OAuthService
	authService  *services.AuthService
	cfg          *config.Config
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(oauthService *services.OAuthService, authService *services.AuthService, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{
		oauthService: oauthService,
		authService:  authService,
		cfg:          cfg,
	}
}

// GoogleLogin starts the OAuth flow. A single-use state nonce is set in a
// short-lived cookie and carried through the provider round trip.
func (h *OAuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state := uuid.NewString()

	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   5 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: "lax",
		Domain:   h.cfg.Cookie.Domain,
	})

	return c.Redirect(h.oauthService.LoginURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback completes the OAuth flow. The state cookie is cleared before
// comparison so a nonce can never be replayed, then the provider profile is
// linked to a local account and a session cookie issued.
func (h *OAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	expectedState := c.Cookies(stateCookieName)
	h.clearStateCookie(c)

	if expectedState == "" || c.Query("state") != expectedState {
		return h.redirectFailure(c, "oauth_state_mismatch")
	}
	if c.Query("error") != "" {
		return h.redirectFailure(c, "oauth_denied")
	}

	code := c.Query("code")
	if code == "" {
		return h.redirectFailure(c, "oauth_failed")
	}

	user, err := h.oauthService.HandleCallback(c.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrEmailNotVerified) {
			return h.redirectFailure(c, "email_not_verified")
		}
		return h.redirectFailure(c, "oauth_failed")
	}

	result, err := h.authService.TokenFor(user)
	if err != nil {
		return h.redirectFailure(c, "oauth_failed")
	}

	setTokenCookie(c, h.cfg, result.Token, result.ExpiresAt)

	// The token stays in the HttpOnly cookie; only the public profile rides
	// on the redirect URL for the frontend to show.
	profile, err := json.Marshal(result.User)
	if err != nil {
		return h.redirectFailure(c, "oauth_failed")
	}
	encoded := base64.RawURLEncoding.EncodeToString(profile)

	return c.Redirect(h.cfg.FrontendURL+"/oauth/success?user="+encoded, fiber.StatusTemporaryRedirect)
}

// GoogleFailure handles the provider's explicit failure redirect
func (h *OAuthHandler) GoogleFailure(c *fiber.Ctx) error {
	return response.Unauthorized(c, "Google authentication failed")
}

func (h *OAuthHandler) redirectFailure(c *fiber.Ctx, code string) error {
	return c.Redirect(h.cfg.FrontendURL+"/login?error="+code, fiber.StatusTemporaryRedirect)
}

func (h *OAuthHandler) clearStateCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: "lax",
		Domain:   h.cfg.Cookie.Domain,
	})
}
