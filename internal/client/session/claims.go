package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the decoded payload of the directory service's bearer token.
// The client reads it without verifying the signature: the role flags only
// steer the UI, and every privileged call is re-validated server-side.
type Claims struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsBusiness bool   `json:"isBusiness"`
	IsAdmin    bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// DecodeToken parses token into Claims and checks the expiry claim against
// now. It returns ErrTokenExpired for a stale token and wraps
// ErrInvalidToken for anything that does not parse or lacks a subject id.
func DecodeToken(token string, now time.Time) (*Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return nil, ErrTokenExpired
	}
	return &claims, nil
}
