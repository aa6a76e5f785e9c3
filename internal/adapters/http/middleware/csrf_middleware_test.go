package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/config"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/csrf"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCsrfTestApp(secret string) *fiber.App {
	cfg := &config.Config{CSRF: config.CSRFConfig{Secret: secret}}

	app := fiber.New()
	app.Use(CsrfGuard(cfg))
	app.Get("/resource", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/resource", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func csrfRequest(method, token, cookie string) *http.Request {
	req := httptest.NewRequest(method, "/resource", nil)
	if token != "" {
		req.Header.Set(csrf.HeaderName, token)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: cookie})
	}
	return req
}

func TestCsrfGuardAllowsSafeMethods(t *testing.T) {
	app := newCsrfTestApp("secret")

	resp, err := app.Test(csrfRequest(http.MethodGet, "", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCsrfGuardRejectsMissingToken(t *testing.T) {
	app := newCsrfTestApp("secret")

	resp, err := app.Test(csrfRequest(http.MethodPost, "", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCsrfGuardAcceptsMatchingPair(t *testing.T) {
	app := newCsrfTestApp("secret")

	token, err := csrf.Generate("secret")
	require.NoError(t, err)

	resp, err := app.Test(csrfRequest(http.MethodPost, token, token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCsrfGuardRejectsHeaderCookieMismatch(t *testing.T) {
	app := newCsrfTestApp("secret")

	headerToken, err := csrf.Generate("secret")
	require.NoError(t, err)
	cookieToken, err := csrf.Generate("secret")
	require.NoError(t, err)

	// both tokens are individually valid but the pair does not match
	resp, err := app.Test(csrfRequest(http.MethodPost, headerToken, cookieToken))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCsrfGuardRejectsForgedToken(t *testing.T) {
	app := newCsrfTestApp("secret")

	// minted under a different secret, as an attacker would have to
	forged, err := csrf.Generate("attacker-secret")
	require.NoError(t, err)

	resp, err := app.Test(csrfRequest(http.MethodPost, forged, forged))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCsrfGuardRejectsHeaderOnly(t *testing.T) {
	app := newCsrfTestApp("secret")

	token, err := csrf.Generate("secret")
	require.NoError(t, err)

	resp, err := app.Test(csrfRequest(http.MethodPost, token, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
