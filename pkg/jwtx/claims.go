package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for session access tokens.
const DefaultSessionTTL = 24 * time.Hour

// Claims are the session-token claims carried across the service.
type Claims struct {
	jwt.RegisteredClaims

	// Username for the authenticated user.
	Username string `json:"username,omitempty"`

	// Roles the user held at login, e.g. ["participant"]. Authorization
	// decisions read these rather than hitting the store per request.
	Roles []string `json:"roles,omitempty"`

	// Superuser marks the bootstrap escape hatch account.
	Superuser bool `json:"superuser,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a login session.
func NewSessionClaims(subject, username string, roles []string, superuser bool, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username:  username,
		Roles:     roles,
		Superuser: superuser,
	}
}
