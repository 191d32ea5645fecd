package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvenue/eventgate/internal/eventgate/authz"
	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/openvenue/eventgate/internal/eventgate/store"
	"github.com/openvenue/eventgate/pkg/idx"
)

func seedEvent(t *testing.T, st store.Store, name string) domain.Event {
	t.Helper()

	event := domain.Event{
		ID:       idx.New().String(),
		Name:     name,
		Location: "Main Hall",
		Date:     time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, st.Events().CreateEvent(context.Background(), event))
	return event
}

func seedParticipant(t *testing.T, st store.Store, username string) authz.Principal {
	t.Helper()

	accounts := newAccountService(t, st, &recordingNotifier{})
	accounts.AutoActivate = true
	user, err := accounts.Signup(context.Background(), username, username+"@example.com", "s3cret-pass")
	require.NoError(t, err)
	return principalFor(t, st, user.ID)
}

func TestRegisterSendsConfirmationOnce(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &recordingNotifier{}
	rsvps := &RSVPService{Store: st, Notifier: notifier}

	event := seedEvent(t, st, "Tech Meetup")
	alice := seedParticipant(t, st, "alice")

	require.NoError(t, rsvps.Register(ctx, alice, event.ID))
	require.Equal(t, 1, notifier.count(subjectRSVPConfirm))
	assert.Contains(t, notifier.sent[0].Body, "Tech Meetup")
	assert.Contains(t, notifier.sent[0].Body, "Main Hall")

	// The duplicate outcome is distinct and sends no second email.
	err := rsvps.Register(ctx, alice, event.ID)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Equal(t, 1, notifier.count(subjectRSVPConfirm))

	count, err := st.Events().CountRSVPs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegisterConcurrentDuplicatesCollapse(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &recordingNotifier{}
	rsvps := &RSVPService{Store: st, Notifier: notifier}

	event := seedEvent(t, st, "Tech Meetup")
	alice := seedParticipant(t, st, "alice")

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- rsvps.Register(ctx, alice, event.ID)
		}()
	}
	wg.Wait()
	close(results)

	var registered, duplicates int
	for err := range results {
		switch {
		case err == nil:
			registered++
		case errors.Is(err, ErrAlreadyRegistered):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, registered, "exactly one attempt wins")
	assert.Equal(t, attempts-1, duplicates)

	count, err := st.Events().CountRSVPs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, notifier.count(subjectRSVPConfirm),
		"only the winning attempt sends the confirmation")
}

func TestRegisterRequiresParticipantRole(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &recordingNotifier{}
	rsvps := &RSVPService{Store: st, Notifier: notifier}

	event := seedEvent(t, st, "Tech Meetup")
	alice := seedParticipant(t, st, "alice")

	t.Run("anonymous", func(t *testing.T) {
		err := rsvps.Register(ctx, authz.Anonymous, event.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("organizer without participant role", func(t *testing.T) {
		grantRole(t, st, alice.ID, domain.RoleOrganizer)
		organizer := principalFor(t, st, alice.ID)
		err := rsvps.Register(ctx, organizer, event.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	// Denied requests must leave no registration behind.
	count, err := st.Events().CountRSVPs(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, notifier.calls)
}

func TestRegisterUnknownEvent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	rsvps := &RSVPService{Store: st, Notifier: &recordingNotifier{}}

	alice := seedParticipant(t, st, "alice")
	err := rsvps.Register(ctx, alice, idx.New().String())
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRegisterSurvivesNotifierFailure(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &recordingNotifier{fail: true}
	rsvps := &RSVPService{Store: st, Notifier: notifier}

	event := seedEvent(t, st, "Tech Meetup")
	alice := seedParticipant(t, st, "alice")

	require.NoError(t, rsvps.Register(ctx, alice, event.ID),
		"delivery failure must not unwind the registration")

	count, err := st.Events().CountRSVPs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	rsvps := &RSVPService{Store: st, Notifier: &recordingNotifier{}}

	event := seedEvent(t, st, "Tech Meetup")
	alice := seedParticipant(t, st, "alice")

	// Withdrawing before registering is its own outcome.
	assert.ErrorIs(t, rsvps.Withdraw(ctx, alice, event.ID), ErrNotRegistered)

	require.NoError(t, rsvps.Register(ctx, alice, event.ID))
	require.NoError(t, rsvps.Withdraw(ctx, alice, event.ID))
	assert.ErrorIs(t, rsvps.Withdraw(ctx, alice, event.ID), ErrNotRegistered)
}

func TestAttendeesRestrictedToManagers(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	rsvps := &RSVPService{Store: st, Notifier: &recordingNotifier{}}

	event := seedEvent(t, st, "Tech Meetup")
	alice := seedParticipant(t, st, "alice")
	require.NoError(t, rsvps.Register(ctx, alice, event.ID))

	_, err := rsvps.Attendees(ctx, alice, event.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	bob := seedParticipant(t, st, "bob")
	grantRole(t, st, bob.ID, domain.RoleOrganizer)
	organizer := principalFor(t, st, bob.ID)

	users, err := rsvps.Attendees(ctx, organizer, event.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}
