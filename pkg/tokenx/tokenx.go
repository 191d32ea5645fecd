// Package tokenx mints and verifies stateless, state-bound tokens.
//
// A token binds a subject id to a fingerprint of the subject's mutable state
// at mint time. Verification recomputes the MAC from the *current*
// fingerprint rather than looking anything up, so no token table exists and
// consuming a token (mutating the state the fingerprint covers) invalidates
// every outstanding copy of it.
package tokenx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const version = "v1"

var (
	// ErrMalformed reports a token that failed structural decoding.
	ErrMalformed = errors.New("tokenx: malformed token")

	// ErrExpired reports a token whose issue timestamp is outside the window.
	ErrExpired = errors.New("tokenx: token expired")

	// ErrStateMismatch reports a signature that no longer matches the current
	// subject state. This covers both already-used tokens and tampering.
	ErrStateMismatch = errors.New("tokenx: state fingerprint mismatch")
)

// Minter issues and verifies tokens with a process-wide secret. The secret
// must never be derived from user-controlled input.
type Minter struct {
	Secret []byte
	TTL    time.Duration

	// Now is overridable for expiry-window tests. Nil means time.Now.
	Now func() time.Time
}

func (m *Minter) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Mint produces a URL-safe token for the subject. The fingerprint is folded
// into the MAC but not carried in the token body, so it cannot be read or
// forged by the holder.
func (m *Minter) Mint(subject, fingerprint, purpose string) (string, error) {
	if len(m.Secret) == 0 {
		return "", errors.New("tokenx: no signing secret configured")
	}
	if subject == "" {
		return "", errors.New("tokenx: empty subject")
	}

	issued := m.now().Unix()
	sig := m.sign(subject, fingerprint, purpose, issued)

	return fmt.Sprintf("%s.%s.%d.%s",
		version,
		base64.RawURLEncoding.EncodeToString([]byte(subject)),
		issued,
		base64.RawURLEncoding.EncodeToString(sig),
	), nil
}

// Verify checks a token for the given purpose and returns its subject.
// fingerprintFor must return the subject's current state fingerprint; any
// error it returns is passed through unchanged so callers can map their own
// not-found semantics.
//
// The expiry window is enforced here, from the timestamp embedded at mint
// time. The signature comparison is constant time.
func (m *Minter) Verify(token, purpose string, fingerprintFor func(subject string) (string, error)) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 || parts[0] != version {
		return "", ErrMalformed
	}

	subjectRaw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil || len(subjectRaw) == 0 {
		return "", ErrMalformed
	}
	subject := string(subjectRaw)

	issued, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", ErrMalformed
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[3])
	if err != nil {
		return "", ErrMalformed
	}

	issuedAt := time.Unix(issued, 0)
	now := m.now()
	if now.After(issuedAt.Add(m.TTL)) || issuedAt.After(now.Add(time.Minute)) {
		return "", ErrExpired
	}

	fingerprint, err := fingerprintFor(subject)
	if err != nil {
		return "", err
	}

	want := m.sign(subject, fingerprint, purpose, issued)
	if !hmac.Equal(sig, want) {
		return "", ErrStateMismatch
	}

	return subject, nil
}

func (m *Minter) sign(subject, fingerprint, purpose string, issued int64) []byte {
	mac := hmac.New(sha256.New, m.Secret)
	fmt.Fprintf(mac, "%s\x00%s\x00%s\x00%d\x00%s", version, purpose, subject, issued, fingerprint)
	return mac.Sum(nil)
}
