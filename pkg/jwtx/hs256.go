package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken reports a token that failed signature or claim validation.
var ErrInvalidToken = errors.New("jwtx: invalid token")

// Signer signs and verifies HS256 session tokens with a shared secret.
// Sessions are stateless: nothing is persisted and revocation is by expiry.
type Signer struct {
	Secret []byte
	Issuer string
}

// Sign produces a compact serialized JWT for the claims.
func (s *Signer) Sign(c Claims) (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("jwtx: no signing secret configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token, enforcing the signing method,
// issuer and expiry.
func (s *Signer) Verify(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return s.Secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}
