package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/models"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/repositories"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/config"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/core/domain"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/password"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/pkg/token"

	"gorm.io/gorm"
)

// resetTokenTTL is how long a password-reset token stays valid
const resetTokenTTL = 10 * time.Minute

// Principal is the authenticated identity (user id + role) attached to a
// request after successful token resolution.
type Principal struct {
	UserID uint
	Role   string
}

// IsAdmin reports whether the principal carries the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}

// AuthService handles local-credential authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	mailer   Mailer
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, mailer Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   mailer,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Tel      string `json:"tel"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User      *models.UserResponse `json:"user"`
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register registers a new local account. Only a salted hash of the password is
// ever stored.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	email := NormalizeEmail(input.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Tel:      strings.TrimSpace(input.Tel),
		Password: hashedPassword,
		Role:     role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// two concurrent registers can both pass the exists check; the
		// loser hits the unique index instead
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}

	log.Printf("✅ User registered: %s", user.Email)

	return s.issueToken(user)
}

// Login authenticates a user by email and password. Unknown email and wrong
// password both return ErrInvalidCredentials so callers cannot enumerate
// accounts.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password == "" || !password.Verify(rawPassword, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return s.issueToken(user)
}

// ResolvePrincipal verifies an identity token and re-fetches the user so the
// principal always carries the current role, not the role at issue time.
func (s *AuthService) ResolvePrincipal(ctx context.Context, tokenString string) (*Principal, error) {
	userID, err := token.Verify(tokenString, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	return &Principal{UserID: user.ID, Role: user.Role}, nil
}

// Authorize checks the principal's role against an allow-list
func (s *AuthService) Authorize(p *Principal, allowedRoles ...string) bool {
	for _, role := range allowedRoles {
		if p.Role == role {
			return true
		}
	}
	return false
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput represents a partial profile update
type UpdateProfileInput struct {
	Name *string `json:"name"`
	Tel  *string `json:"tel"`
}

// UpdateProfile applies a partial update to the user's own profile
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Tel != nil {
		user.Tel = strings.TrimSpace(*input.Tel)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword issues a one-time reset token and mails it to the account's
// address. Only the token's hash is persisted; the plaintext leaves the process
// once, inside the mail.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	plaintext, err := password.GenerateToken(20)
	if err != nil {
		return err
	}

	expire := time.Now().Add(resetTokenTTL)
	user.ResetPasswordToken = password.HashToken(plaintext)
	user.ResetPasswordExpire = &expire

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/resetpassword/%s", s.cfg.FrontendURL, plaintext)
	html := fmt.Sprintf(
		`<p>You are receiving this email because you (or someone else) requested a password reset.</p>
<p><a href="%s">Reset your password</a> (valid for 10 minutes)</p>`,
		resetURL,
	)

	if err := s.mailer.Send(user.Email, "Password reset request", html); err != nil {
		log.Printf("❌ Reset mail to %s failed: %v", user.Email, err)

		// Roll the token back so a token the user never received cannot linger
		user.ResetPasswordToken = ""
		user.ResetPasswordExpire = nil
		if clearErr := s.userRepo.Update(ctx, user); clearErr != nil {
			log.Printf("❌ Failed to clear reset token for %s: %v", user.Email, clearErr)
		}

		return domain.ErrDependency
	}

	log.Printf("📧 Reset mail sent to %s", user.Email)
	return nil
}

// ResetPassword consumes a one-time reset token. The stored hash must match and
// the expiry must still be in the future; on success the new password hash is
// set and the reset fields are cleared in the same write.
func (s *AuthService) ResetPassword(ctx context.Context, plaintextToken, newPassword string) (*AuthResponse, error) {
	if !password.ValidatePassword(newPassword) {
		return nil, domain.Validation("password must be at least 8 characters")
	}

	user, err := s.userRepo.GetByResetTokenHash(ctx, password.HashToken(plaintextToken), time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, err
	}

	hashedPassword, err := password.Hash(newPassword)
	if err != nil {
		return nil, err
	}

	user.Password = hashedPassword
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Password reset for %s", user.Email)

	return s.issueToken(user)
}

// TokenFor signs an identity token for an already-authenticated user, e.g.
// after a completed OAuth exchange.
func (s *AuthService) TokenFor(user *models.User) (*AuthResponse, error) {
	return s.issueToken(user)
}

// issueToken signs an identity token for the user
func (s *AuthService) issueToken(user *models.User) (*AuthResponse, error) {
	signed, expiresAt, err := token.Issue(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireDays)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:      user.ToResponse(),
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}
