package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	s := &Signer{Secret: []byte("test-secret"), Issuer: "eventgate"}
	claims := NewSessionClaims("user-1", "alice", []string{"participant"}, false, "eventgate", time.Hour, time.Now())

	raw, err := s.Sign(claims)
	require.NoError(t, err)

	got, err := s.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, []string{"participant"}, got.Roles)
	require.False(t, got.Superuser)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	a := &Signer{Secret: []byte("secret-a"), Issuer: "eventgate"}
	b := &Signer{Secret: []byte("secret-b"), Issuer: "eventgate"}

	raw, err := a.Sign(NewSessionClaims("user-1", "alice", nil, false, "eventgate", time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = b.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	s := &Signer{Secret: []byte("test-secret"), Issuer: "eventgate"}
	raw, err := s.Sign(NewSessionClaims("user-1", "alice", nil, false, "eventgate", time.Minute, time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	_, err = s.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	s := &Signer{Secret: []byte("test-secret"), Issuer: "eventgate"}
	raw, err := s.Sign(NewSessionClaims("user-1", "alice", nil, false, "someone-else", time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = s.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	s := &Signer{Secret: []byte("test-secret"), Issuer: "eventgate"}
	_, err := s.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}
