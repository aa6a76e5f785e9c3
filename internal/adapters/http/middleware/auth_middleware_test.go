package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/models"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/config"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/domain"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubUserRepo serves a single fixed user
type stubUserRepo struct {
	user *models.User
}

func (r *stubUserRepo) Create(_ context.Context, _ *models.User) error { return nil }

func (r *stubUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByGoogleID(_ context.Context, _ string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByResetTokenHash(_ context.Context, _ string, _ time.Time) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, _ *models.User) error { return nil }

func (r *stubUserRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return false, nil
}

type noopMailer struct{}

func (noopMailer) Send(_, _, _ string) error { return nil }

func newProtectTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireDays: 1},
	}
	repo := &stubUserRepo{user: &models.User{ID: 1, Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}}
	authService := services.NewAuthService(repo, noopMailer{}, cfg)

	result, err := authService.TokenFor(repo.user)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/protected", Protect(authService), func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(uint)
		return c.JSON(fiber.Map{"user_id": userID})
	})
	app.Get("/admin", Protect(authService), AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, result.Token
}

func TestProtectWithBearerHeader(t *testing.T) {
	app, token := newProtectTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectWithCookie(t *testing.T) {
	app, token := newProtectTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectHeaderWinsOverCookie(t *testing.T) {
	app, token := newProtectTestApp(t)

	// a stale cookie must not shadow an explicit header
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectRejectsMissingToken(t *testing.T) {
	app, _ := newProtectTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectRejectsLogoutSentinel(t *testing.T) {
	app, _ := newProtectTestApp(t)

	for _, sentinel := range []string{"none", "null"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: sentinel})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "sentinel %q must not authenticate", sentinel)
	}
}

func TestAdminOnlyRejectsUserRole(t *testing.T) {
	app, token := newProtectTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
