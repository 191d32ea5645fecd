package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openvenue/eventgate/internal/eventgate/authz"
	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/openvenue/eventgate/internal/eventgate/store"
	"github.com/openvenue/eventgate/internal/eventgate/store/drivers/sqlite"
	"github.com/openvenue/eventgate/pkg/cryptox"
	"github.com/openvenue/eventgate/pkg/jwtx"
	"github.com/openvenue/eventgate/pkg/tokenx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "eventgate-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.key"))
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// recordingNotifier counts deliveries so tests can assert at-most-once
// notification behaviour.
type recordingNotifier struct {
	mu    sync.Mutex
	sent  []sentMail
	fail  bool
	calls int
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if n.fail {
		return os.ErrDeadlineExceeded
	}
	n.sent = append(n.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (n *recordingNotifier) count(subject string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, m := range n.sent {
		if m.Subject == subject {
			c++
		}
	}
	return c
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	boot := &BootstrapService{Store: s, DefaultRole: domain.RoleParticipant}
	require.NoError(t, boot.Run(context.Background()))
	return s
}

func newAccountService(t *testing.T, s store.Store, n *recordingNotifier) *AccountService {
	t.Helper()
	return &AccountService{
		Store:       s,
		Notifier:    n,
		Tokens:      &tokenx.Minter{Secret: []byte("test-activation-secret"), TTL: 48 * time.Hour},
		Sessions:    &jwtx.Signer{Secret: []byte("test-session-secret"), Issuer: "eventgate-test"},
		DefaultRole: domain.RoleParticipant,
		PublicURL:   "http://localhost:8080",
	}
}

func principalFor(t *testing.T, s store.Store, userID string) authz.Principal {
	t.Helper()

	ctx := context.Background()
	user, err := s.Users().GetUserByID(ctx, userID)
	require.NoError(t, err)
	roles, err := s.Users().GetUserRoles(ctx, userID)
	require.NoError(t, err)

	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return authz.Principal{
		ID:            user.ID,
		Username:      user.Username,
		Authenticated: true,
		Superuser:     user.Superuser,
		Roles:         names,
	}
}

// grantRole swaps a user's role set to the single named role, bypassing the
// service layer's admin guard for test setup.
func grantRole(t *testing.T, s store.Store, userID, roleName string) {
	t.Helper()

	ctx := context.Background()
	role, err := s.Roles().GetRoleByName(ctx, roleName)
	require.NoError(t, err)
	require.NoError(t, s.Users().SetUserRoles(ctx, userID, []string{role.ID}))
}
