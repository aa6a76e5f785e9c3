package handlers

import (
	"errors"
	"time"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/config"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/domain"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/services"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/csrf"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Tel      string `json:"tel"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}
	if len(req.Password) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	input := &services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Tel:      req.Tel,
		Password: req.Password,
		Role:     req.Role,
	}

	result, err := h.authService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, domain.ErrInvalidRole):
			return response.BadRequest(c, "Role must be either user or admin")
		default:
			return response.InternalServerError(c, "Failed to register user")
		}
	}

	setTokenCookie(c, h.cfg, result.Token, result.ExpiresAt)

	return response.Created(c, "User registered successfully", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Please provide an email and password")
	}

	result, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid credentials")
		}
		return response.InternalServerError(c, "Failed to login")
	}

	setTokenCookie(c, h.cfg, result.Token, result.ExpiresAt)

	return response.Success(c, "Login successful", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// Logout clears the session cookie. The cookie is overwritten with a sentinel
// value and a near-immediate expiry rather than deleted, matching clients that
// check for an explicit "none".
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current user info
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Not authorized to access this route")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "User retrieved successfully", user.ToResponse())
}

// UpdateProfileRequest represents a partial profile update body
type UpdateProfileRequest struct {
	Name *string `json:"name"`
	Tel  *string `json:"tel"`
}

// UpdateMe updates the current user's own profile
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Not authorized to access this route")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name != nil && *req.Name == "" {
		return response.BadRequest(c, "Name cannot be empty")
	}

	user, err := h.authService.UpdateProfile(c.Context(), userID, &services.UpdateProfileInput{
		Name: req.Name,
		Tel:  req.Tel,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, "Profile updated successfully", user.ToResponse())
}

// ForgotPasswordRequest represents forgot password request body
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a reset token and mails it to the user
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	if err := h.authService.ForgotPassword(c.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "There is no user with that email")
		case errors.Is(err, domain.ErrDependency):
			return response.InternalServerError(c, "Email could not be sent")
		default:
			return response.InternalServerError(c, "Failed to process request")
		}
	}

	return response.Success(c, "Email sent", nil)
}

// ResetPasswordRequest represents reset password request body
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// ResetPassword consumes a reset token and sets a new password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	resetToken := c.Params("token")
	if resetToken == "" {
		return response.BadRequest(c, "Reset token is required")
	}

	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.ResetPassword(c.Context(), resetToken, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResetTokenInvalid):
			return response.BadRequest(c, "Invalid or expired reset token")
		case domain.IsValidation(err):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to reset password")
		}
	}

	setTokenCookie(c, h.cfg, result.Token, result.ExpiresAt)

	return response.Success(c, "Password reset successful", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// GetCsrfToken mints a double-submit token pair: the value goes into a cookie
// and is also returned in the body for the client to echo in a header.
func (h *AuthHandler) GetCsrfToken(c *fiber.Ctx) error {
	token, err := csrf.Generate(h.cfg.CSRF.Secret)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate CSRF token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     csrf.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	return response.Success(c, "CSRF token issued", fiber.Map{
		"csrfToken": token,
	})
}

// setTokenCookie sets the identity token cookie. HttpOnly keeps the token out
// of reach of page scripts.
func setTokenCookie(c *fiber.Ctx, cfg *config.Config, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		Secure:   cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
	})
}
