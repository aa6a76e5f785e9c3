package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims represents the identity token claims. The token carries only the user
// id; the auth middleware re-fetches the user so a stale role can never outlive
// a token.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Issue signs an identity token for userID, valid for expireDays days.
// Returns the compact token and its expiry time.
func Issue(userID uint, secret string, expireDays int) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireDays) * 24 * time.Hour)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "roomly",
			Subject:   strconv.FormatUint(uint64(userID), 10),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify validates a token and returns the bound user id. Malformed tokens and
// signature mismatches return ErrTokenInvalid; a valid signature past its expiry
// returns ErrTokenExpired. Callers must treat both as "not authenticated".
func Verify(tokenString, secret string) (uint, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}

	if claims, ok := parsed.Claims.(*Claims); ok && parsed.Valid {
		return claims.UserID, nil
	}

	return 0, ErrTokenInvalid
}
