package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Fingerprint returns a deterministic SHA-256 digest over the given fields,
// base64url encoded. It is used to bind activation tokens to mutable account
// state: any field changing produces a different fingerprint and invalidates
// outstanding tokens.
func Fingerprint(fields ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(fields, "\x00")))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
