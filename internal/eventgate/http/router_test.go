package http

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/openvenue/eventgate/internal/eventgate/service"
	"github.com/openvenue/eventgate/internal/eventgate/store/drivers/sqlite"
	"github.com/openvenue/eventgate/pkg/cryptox"
	"github.com/openvenue/eventgate/pkg/eventsdk"
	"github.com/openvenue/eventgate/pkg/jwtx"
	"github.com/openvenue/eventgate/pkg/tokenx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "eventgate-http-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.key"))
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// capturingNotifier records outbound mail so tests can pull activation
// tokens out of it.
type capturingNotifier struct {
	mu   sync.Mutex
	sent []capturedMail
}

type capturedMail struct {
	To      string
	Subject string
	Body    string
}

func (n *capturingNotifier) Send(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, capturedMail{To: to, Subject: subject, Body: body})
	return nil
}

func (n *capturingNotifier) countSubject(subject string) int {
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

// activationLink extracts uid and token from the most recent activation
// email addressed to the given recipient.
func (n *capturingNotifier) activationLink(t *testing.T, to string) (uid, token string) {
	t.Helper()

	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.sent) - 1; i >= 0; i-- {
		if n.sent[i].To != to {
			continue
		}
		for _, word := range strings.Fields(n.sent[i].Body) {
			if !strings.HasPrefix(word, "http") {
				continue
			}
			u, err := url.Parse(word)
			require.NoError(t, err)
			if u.Query().Get("token") != "" {
				return u.Query().Get("uid"), u.Query().Get("token")
			}
		}
	}
	t.Fatalf("no activation email for %s", to)
	return "", ""
}

type testEnv struct {
	server   *httptest.Server
	client   *eventsdk.Client
	notifier *capturingNotifier
}

// newTestEnv stands up the full service in-process: migrated in-memory
// database, bootstrap with a seeded admin, and the real router behind an
// httptest server.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	boot := &service.BootstrapService{
		Store:         st,
		DefaultRole:   domain.RoleParticipant,
		AdminUsername: "admin",
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin-s3cret",
	}
	require.NoError(t, boot.Run(context.Background()))

	notifier := &capturingNotifier{}
	sessions := &jwtx.Signer{Secret: []byte("test-session-secret"), Issuer: "eventgate-test"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(sessions, "test", st, logger)
	router.AccountService = &service.AccountService{
		Store:       st,
		Notifier:    notifier,
		Tokens:      &tokenx.Minter{Secret: []byte("test-activation-secret"), TTL: 48 * time.Hour},
		Sessions:    sessions,
		DefaultRole: domain.RoleParticipant,
		PublicURL:   "http://localhost:8080",
	}
	router.RSVPService = &service.RSVPService{Store: st, Notifier: notifier}
	router.EventService = &service.EventService{Store: st}
	router.CategoryService = &service.CategoryService{Store: st}
	router.RolesService = &service.RolesService{Store: st}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{
		server:   server,
		client:   eventsdk.NewClient(server.URL),
		notifier: notifier,
	}
}

func (e *testEnv) adminSession(t *testing.T) *eventsdk.Session {
	t.Helper()

	session, _, err := e.client.Login(context.Background(), "admin", "admin-s3cret")
	require.NoError(t, err)
	return session
}

func TestSignupActivateLoginRSVPFlow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// The admin puts an event on the calendar.
	admin := env.adminSession(t)
	event, err := admin.CreateEvent(ctx, eventsdk.EventRequest{
		Name:     "Tech Meetup",
		Location: "Main Hall",
		Date:     "2026-10-03",
	})
	require.NoError(t, err)

	// Alice signs up and receives an activation email.
	signup, err := env.client.Signup(ctx, eventsdk.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.False(t, signup.Active)

	// Logging in before activating fails with the distinct outcome.
	_, _, err = env.client.Login(ctx, "alice", "s3cret-pass")
	var apiErr *eventsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, eventsdk.ErrorCodeAccountNotActivated, apiErr.Code)

	// Alice follows the emailed link.
	uid, token := env.notifier.activationLink(t, "alice@example.com")
	require.NoError(t, env.client.Activate(ctx, uid, token))

	// The same link a second time is dead.
	err = env.client.Activate(ctx, uid, token)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, eventsdk.ErrorCodeActivationInvalid, apiErr.Code)

	// Now login works and the session carries the participant role.
	alice, login, err := env.client.Login(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)
	assert.Contains(t, login.Roles, domain.RoleParticipant)

	// Alice registers for the meetup and gets a confirmation email.
	rsvp, err := alice.RSVP(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, rsvp.Registered)
	assert.Equal(t, 1, env.notifier.countSubject("RSVP Confirmation"))

	// Registering again is a 409 with an informational body, and no
	// second email.
	_, err = alice.RSVP(ctx, event.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)
	assert.Equal(t, 1, env.notifier.countSubject("RSVP Confirmation"))

	// The admin sees Alice on the attendee list.
	attendees, err := admin.Attendees(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, attendees.Attendees, 1)
	assert.Equal(t, "alice", attendees.Attendees[0].Username)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	admin := env.adminSession(t)
	event, err := admin.CreateEvent(ctx, eventsdk.EventRequest{
		Name: "Gala",
		Date: "2026-12-24",
	})
	require.NoError(t, err)

	// No token at all.
	anonymous := env.client.NewSessionFromToken("")
	_, err = anonymous.RSVP(ctx, event.ID)
	var apiErr *eventsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)

	// Garbage token.
	forged := env.client.NewSessionFromToken("not.a.jwt")
	err = forged.DeleteEvent(ctx, event.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)

	// Catalogue reads stay public.
	list, err := env.client.ListEvents(ctx, "", "", "", "")
	require.NoError(t, err)
	assert.Len(t, list.Events, 1)
}

func TestParticipantCannotManageCatalogue(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	admin := env.adminSession(t)
	event, err := admin.CreateEvent(ctx, eventsdk.EventRequest{
		Name: "Board Meeting",
		Date: "2026-09-09",
	})
	require.NoError(t, err)

	_, err = env.client.Signup(ctx, eventsdk.SignupRequest{
		Username: "mallory",
		Email:    "mallory@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	uid, token := env.notifier.activationLink(t, "mallory@example.com")
	require.NoError(t, env.client.Activate(ctx, uid, token))
	mallory, _, err := env.client.Login(ctx, "mallory", "s3cret-pass")
	require.NoError(t, err)

	// Participant role cannot touch the catalogue or the admin surface.
	var apiErr *eventsdk.APIError
	err = mallory.DeleteEvent(ctx, event.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)

	_, err = mallory.ListUsers(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)

	_, err = mallory.ListRoles(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)

	// The denied delete left the event in place.
	got, err := env.client.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Board Meeting", got.Name)
}

func TestAdminChangesRoleExclusively(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.adminSession(t)

	signup, err := env.client.Signup(ctx, eventsdk.SignupRequest{
		Username: "olivia",
		Email:    "olivia@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	uid, token := env.notifier.activationLink(t, "olivia@example.com")
	require.NoError(t, env.client.Activate(ctx, uid, token))

	// The role catalogue backs the assignment choice.
	catalogue, err := admin.ListRoles(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(catalogue.Roles))
	for _, role := range catalogue.Roles {
		names = append(names, role.Name)
	}
	assert.ElementsMatch(t, []string{domain.RoleAdmin, domain.RoleOrganizer, domain.RoleParticipant}, names)

	require.NoError(t, admin.ChangeRole(ctx, signup.UserID, domain.RoleOrganizer))

	olivia, login, err := env.client.Login(ctx, "olivia", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, []string{domain.RoleOrganizer}, login.Roles,
		"role change replaces the previous role")

	// Olivia can now manage events but no longer RSVP.
	event, err := olivia.CreateEvent(ctx, eventsdk.EventRequest{
		Name: "Organizer Social",
		Date: "2026-10-10",
	})
	require.NoError(t, err)

	var apiErr *eventsdk.APIError
	_, err = olivia.RSVP(ctx, event.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
}

func TestHealthAndDashboard(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	resp, err := env.server.Client().Get(env.server.URL + "/livez")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = env.server.Client().Get(env.server.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	admin := env.adminSession(t)
	_, err = admin.CreateEvent(ctx, eventsdk.EventRequest{Name: "One", Date: "2030-01-01"})
	require.NoError(t, err)

	stats, err := admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalEvents)
	assert.Equal(t, 1, stats.UpcomingEvents)
}
