package utils // package utils provides helpers for token creation and hashing

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned for tokens that are malformed, expired,
// signed with the wrong key, or missing the subject claim. Callers get
// one error regardless of which check failed.
var ErrInvalidToken = errors.New("invalid token")

// NewToken builds and signs an HS256 bearer token for a user. The token
// carries the user id as the subject plus exp and iat; the expiry is
// ttlDays from now. Logout is client-side token discard, so there is no
// server-side revocation to encode.
func NewToken(secret string, userID uint64, ttlDays int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(userID, 10),
		"exp": now.Add(time.Duration(ttlDays) * 24 * time.Hour).Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseToken verifies a bearer token and returns the user id it names.
func ParseToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	switch sub := claims["sub"].(type) {
	case string:
		id, err := strconv.ParseUint(sub, 10, 64)
		if err != nil || id == 0 {
			return 0, ErrInvalidToken
		}
		return id, nil
	case float64:
		// Tokens issued by older builds carried the id as a number.
		if sub <= 0 {
			return 0, ErrInvalidToken
		}
		return uint64(sub), nil
	}
	return 0, ErrInvalidToken
}
