package tokenx

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testPurpose = "activate"

func fixedMinter(now time.Time, ttl time.Duration) *Minter {
	return &Minter{
		Secret: []byte("unit-test-secret"),
		TTL:    ttl,
		Now:    func() time.Time { return now },
	}
}

func staticFingerprint(fp string) func(string) (string, error) {
	return func(string) (string, error) { return fp, nil }
}

func TestMintVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	m := fixedMinter(time.Unix(1_700_000_000, 0), time.Hour)

	token, err := m.Mint("user-1", "fp-a", testPurpose)
	require.NoError(t, err)

	subject, err := m.Verify(token, testPurpose, staticFingerprint("fp-a"))
	require.NoError(t, err)
	require.Equal(t, "user-1", subject)
}

func TestVerifyRejectsChangedFingerprint(t *testing.T) {
	t.Parallel()

	m := fixedMinter(time.Unix(1_700_000_000, 0), time.Hour)
	token, err := m.Mint("user-1", "fp-before", testPurpose)
	require.NoError(t, err)

	// Consuming the token mutates the state it attests to, so the current
	// fingerprint differs and replay must fail.
	_, err = m.Verify(token, testPurpose, staticFingerprint("fp-after"))
	require.ErrorIs(t, err, ErrStateMismatch)
}

func TestVerifyRejectsWrongPurpose(t *testing.T) {
	t.Parallel()

	m := fixedMinter(time.Unix(1_700_000_000, 0), time.Hour)
	token, err := m.Mint("user-1", "fp", testPurpose)
	require.NoError(t, err)

	_, err = m.Verify(token, "password-reset", staticFingerprint("fp"))
	require.ErrorIs(t, err, ErrStateMismatch)
}

func TestVerifyExpiryWindowBoundaries(t *testing.T) {
	t.Parallel()

	issued := time.Unix(1_700_000_000, 0)
	window := 48 * time.Hour

	m := fixedMinter(issued, window)
	token, err := m.Mint("user-1", "fp", testPurpose)
	require.NoError(t, err)

	t.Run("valid just inside the window", func(t *testing.T) {
		m.Now = func() time.Time { return issued.Add(window - time.Second) }
		_, err := m.Verify(token, testPurpose, staticFingerprint("fp"))
		require.NoError(t, err)
	})

	t.Run("rejected just past the window", func(t *testing.T) {
		m.Now = func() time.Time { return issued.Add(window + time.Second) }
		_, err := m.Verify(token, testPurpose, staticFingerprint("fp"))
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("rejected when issued in the future", func(t *testing.T) {
		m.Now = func() time.Time { return issued.Add(-2 * time.Minute) }
		_, err := m.Verify(token, testPurpose, staticFingerprint("fp"))
		require.ErrorIs(t, err, ErrExpired)
	})
}

func TestVerifyRejectsMalformedTokens(t *testing.T) {
	t.Parallel()

	m := fixedMinter(time.Unix(1_700_000_000, 0), time.Hour)

	for _, token := range []string{
		"",
		"garbage",
		"v1.only.three",
		"v2.c3Vi.1700000000.c2ln", // unknown version
		"v1.!!!.1700000000.c2ln",  // bad subject encoding
		"v1.c3Vi.notatime.c2ln",
		"v1.c3Vi.1700000000.%%%",
	} {
		_, err := m.Verify(token, testPurpose, staticFingerprint("fp"))
		require.ErrorIs(t, err, ErrMalformed, "token %q", token)
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	t.Parallel()

	m := fixedMinter(time.Unix(1_700_000_000, 0), time.Hour)
	token, err := m.Mint("user-1", "fp", testPurpose)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	parts[3] = "AAAA" + parts[3][4:]
	_, err = m.Verify(strings.Join(parts, "."), testPurpose, staticFingerprint("fp"))
	require.ErrorIs(t, err, ErrStateMismatch)
}

func TestVerifyPropagatesLookupError(t *testing.T) {
	t.Parallel()

	m := fixedMinter(time.Unix(1_700_000_000, 0), time.Hour)
	token, err := m.Mint("user-1", "fp", testPurpose)
	require.NoError(t, err)

	notFound := errors.New("no such user")
	_, err = m.Verify(token, testPurpose, func(string) (string, error) { return "", notFound })
	require.ErrorIs(t, err, notFound)
}

func TestMintRequiresSecretAndSubject(t *testing.T) {
	t.Parallel()

	m := &Minter{TTL: time.Hour}
	_, err := m.Mint("user-1", "fp", testPurpose)
	require.Error(t, err)

	m.Secret = []byte("secret")
	_, err = m.Mint("", "fp", testPurpose)
	require.Error(t, err)
}
