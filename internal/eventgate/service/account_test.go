package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvenue/eventgate/internal/eventgate/domain"
)

// activationTokenFrom digs the uid and token out of the activation link in
// the most recent activation email.
func activationTokenFrom(t *testing.T, n *recordingNotifier) (string, string) {
	t.Helper()

	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.sent) - 1; i >= 0; i-- {
		if n.sent[i].Subject != subjectActivate {
			continue
		}
		for _, line := range strings.Fields(n.sent[i].Body) {
			if !strings.HasPrefix(line, "http") {
				continue
			}
			u, err := url.Parse(line)
			require.NoError(t, err)
			return u.Query().Get("uid"), u.Query().Get("token")
		}
	}
	t.Fatal("no activation email was sent")
	return "", ""
}

func TestSignupCreatesInactiveAccountWithDefaultRole(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &recordingNotifier{}
	accounts := newAccountService(t, st, notifier)

	user, err := accounts.Signup(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	stored, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active, "new accounts start inactive")
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)

	roles, err := st.Users().GetUserRoles(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, domain.RoleParticipant, roles[0].Name)

	assert.Equal(t, 1, notifier.count(subjectActivate))
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	accounts := newAccountService(t, st, &recordingNotifier{})

	cases := []struct {
		name               string
		username, email    string
		password           string
	}{
		{"short username", "al", "alice@example.com", "s3cret-pass"},
		{"bad email", "alice", "not-an-email", "s3cret-pass"},
		{"short password", "alice", "alice@example.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := accounts.Signup(ctx, tc.username, tc.email, tc.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	accounts := newAccountService(t, st, &recordingNotifier{})

	_, err := accounts.Signup(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = accounts.Signup(ctx, "alice", "other@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrUsernameAlreadyTaken)

	_, err = accounts.Signup(ctx, "alice2", "alice@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrEmailAlreadyTaken)
}

func TestAuthenticateRejectsPendingAccount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	accounts := newAccountService(t, st, &recordingNotifier{})

	_, err := accounts.Signup(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	// Correct credentials against a pending account get the distinct
	// not-activated outcome, not invalid-credentials.
	_, _, err = accounts.Authenticate(ctx, "alice", "s3cret-pass")
	assert.ErrorIs(t, err, ErrAccountNotActivated)

	// A wrong password still gets invalid-credentials so the pending
	// state is only revealed to the account owner.
	_, _, err = accounts.Authenticate(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = accounts.Authenticate(ctx, "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestActivateFlow(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &recordingNotifier{}
	accounts := newAccountService(t, st, notifier)

	user, err := accounts.Signup(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	uid, token := activationTokenFrom(t, notifier)
	assert.Equal(t, user.ID, uid)

	require.NoError(t, accounts.Activate(ctx, uid, token))

	stored, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Active)
	assert.Equal(t, 1, notifier.count(subjectWelcome))

	// Replay: the account state changed, so the same token is dead.
	err = accounts.Activate(ctx, uid, token)
	assert.ErrorIs(t, err, ErrActivationInvalid)
	assert.Equal(t, 1, notifier.count(subjectWelcome), "welcome email sent at most once")

	// Login now succeeds and the session carries the role.
	session, logged, err := accounts.Authenticate(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, session)

	claims, err := accounts.Sessions.Verify(session)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Contains(t, claims.Roles, domain.RoleParticipant)
}

func TestActivateRejectsTamperedAndForeignTokens(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &recordingNotifier{}
	accounts := newAccountService(t, st, notifier)

	alice, err := accounts.Signup(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	_, aliceToken := activationTokenFrom(t, notifier)

	bob, err := accounts.Signup(ctx, "bob", "bob@example.com", "s3cret-pass")
	require.NoError(t, err)

	// Alice's token presented for Bob's account fails closed.
	assert.ErrorIs(t, accounts.Activate(ctx, bob.ID, aliceToken), ErrActivationInvalid)
	// Garbage fails closed.
	assert.ErrorIs(t, accounts.Activate(ctx, alice.ID, "v1.garbage"), ErrActivationInvalid)
	// A token for an account that no longer exists fails closed.
	require.NoError(t, st.Users().DeleteUser(ctx, alice.ID))
	assert.ErrorIs(t, accounts.Activate(ctx, alice.ID, aliceToken), ErrActivationInvalid)

	stored, err := st.Users().GetUserByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active, "failed activations must not flip the flag")
}

func TestActivationTokenDiesWhenPasswordChanges(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &recordingNotifier{}
	accounts := newAccountService(t, st, notifier)

	user, err := accounts.Signup(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	uid, token := activationTokenFrom(t, notifier)

	// The account's state changed after the token was minted, so the
	// fingerprint no longer matches.
	require.NoError(t, st.Users().UpdatePasswordHash(ctx, user.ID, "different-hash"))

	assert.ErrorIs(t, accounts.Activate(ctx, uid, token), ErrActivationInvalid)
}

func TestAutoActivateSkipsEmailConfirmation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &recordingNotifier{}
	accounts := newAccountService(t, st, notifier)
	accounts.AutoActivate = true

	user, err := accounts.Signup(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	stored, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Active)
	assert.Equal(t, 0, notifier.calls, "no activation email when auto-activating")

	_, _, err = accounts.Authenticate(ctx, "alice", "s3cret-pass")
	assert.NoError(t, err)
}

func TestResendActivation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &recordingNotifier{}
	accounts := newAccountService(t, st, notifier)

	_, err := accounts.Signup(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, 1, notifier.count(subjectActivate))

	// Pending account gets a fresh token.
	require.NoError(t, accounts.ResendActivation(ctx, "alice@example.com"))
	assert.Equal(t, 2, notifier.count(subjectActivate))

	// Unknown address reports success without sending anything.
	require.NoError(t, accounts.ResendActivation(ctx, "ghost@example.com"))
	assert.Equal(t, 2, notifier.count(subjectActivate))

	// Active account is left alone too.
	uid, token := activationTokenFrom(t, notifier)
	require.NoError(t, accounts.Activate(ctx, uid, token))
	require.NoError(t, accounts.ResendActivation(ctx, "alice@example.com"))
	assert.Equal(t, 2, notifier.count(subjectActivate))
}

func TestSignupSurvivesNotifierFailure(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &recordingNotifier{fail: true}
	accounts := newAccountService(t, st, notifier)

	user, err := accounts.Signup(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err, "delivery failure must not fail signup")

	_, err = st.Users().GetUserByID(ctx, user.ID)
	assert.NoError(t, err)
}
