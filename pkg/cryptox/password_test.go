package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Use a throwaway pepper file so tests never touch a real one.
	dir, err := os.MkdirTemp("", "cryptox-test")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, VerifyPassword("correct horse battery staple", hash))
	require.ErrorIs(t, VerifyPassword("wrong password", hash), ErrPasswordMismatch)
}

func TestHashesAreSalted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same input")
	require.NoError(t, err)
	b, err := HashPassword("same input")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	t.Parallel()

	for _, encoded := range []string{
		"",
		"plainstring",
		"$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!notb64!!$aGFzaA",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
	} {
		require.Error(t, VerifyPassword("password", encoded), "hash %q", encoded)
	}
}

func TestGeneratePassword(t *testing.T) {
	t.Parallel()

	a, err := GeneratePassword()
	require.NoError(t, err)
	require.Len(t, a, 12)

	b, err := GeneratePassword()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestFingerprintIsStateSensitive(t *testing.T) {
	t.Parallel()

	before := Fingerprint("0", "hash", "alice@example.com")
	after := Fingerprint("1", "hash", "alice@example.com")
	require.NotEqual(t, before, after)
	require.Equal(t, before, Fingerprint("0", "hash", "alice@example.com"))

	// Field boundaries matter: joining must not be ambiguous.
	require.NotEqual(t, Fingerprint("ab", "c"), Fingerprint("a", "bc"))
}
