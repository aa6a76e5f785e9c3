package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrForbidden      = errors.New("forbidden")
	ErrDependency     = errors.New("dependency failure")
	ErrInternalServer = errors.New("internal server error")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTokenExpired       = errors.New("token has expired")
	ErrResetTokenInvalid  = errors.New("reset token is invalid or expired")
	ErrInvalidRole        = errors.New("invalid role")
)

// OAuth / CSRF errors
var (
	ErrEmailNotVerified       = errors.New("provider email is not verified")
	ErrProviderProfileInvalid = errors.New("provider profile is incomplete")
	ErrOAuthStateMismatch     = errors.New("oauth state mismatch")
	ErrCsrfTokenMismatch      = errors.New("csrf token mismatch")
)

// Booking errors
var (
	ErrHotelNotFound   = errors.New("hotel not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the enumerated roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// ValidationError carries a caller-visible reason for rejected input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validation builds a ValidationError with a formatted reason.
func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
