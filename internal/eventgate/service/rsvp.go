package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/openvenue/eventgate/internal/eventgate/authz"
	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/openvenue/eventgate/internal/eventgate/notify"
	"github.com/openvenue/eventgate/internal/eventgate/store"
	"github.com/openvenue/eventgate/pkg/slogx"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNotRegistered     = errors.New("not registered for this event")
)

// RSVPService manages event registrations. Duplicate registrations are a
// recognised outcome rather than a failure: the store's conflict-free insert
// reports whether this request created the registration, and only the
// creating request sends a confirmation email.
type RSVPService struct {
	Store    store.Store
	Notifier notify.Notifier
}

// Register records the principal's attendance on an event. Participant role
// required; the registration itself is a single atomic insert so concurrent
// duplicates collapse to one row.
func (s *RSVPService) Register(ctx context.Context, p authz.Principal, eventID string) error {
	log := slogx.FromContext(ctx)

	// 1. Authorize. Only participants may RSVP; a denied request must not
	// touch the store.
	if !authz.Allow(p, authz.ParticipantOnly...) {
		log.Warn("rsvp denied",
			slog.String("user_id", p.ID),
			slog.String("event_id", eventID),
		)
		return ErrForbidden
	}

	// 2. Confirm the event exists.
	event, err := s.Store.Events().GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEventNotFound
		}
		log.Error("failed to fetch event", slog.Any("error", err))
		return err
	}

	// 3. Insert the registration. The store reports whether a row was
	// actually created, which is what decides between success and the
	// duplicate outcome under concurrency.
	created, err := s.Store.Events().AddRSVP(ctx, eventID, p.ID)
	if err != nil {
		log.Error("failed to record rsvp",
			slog.String("event_id", eventID),
			slog.String("user_id", p.ID),
			slog.Any("error", err),
		)
		return err
	}
	if !created {
		return ErrAlreadyRegistered
	}

	log.Info("rsvp recorded",
		slog.String("event_id", eventID),
		slog.String("user_id", p.ID),
	)

	// 4. Confirmation email, at most once because only the creating
	// request reaches this point. Delivery failure never unwinds the
	// registration.
	user, err := s.Store.Users().GetUserByID(ctx, p.ID)
	if err == nil {
		body := rsvpConfirmationBody(user.Username, &event)
		if err := s.Notifier.Send(ctx, user.Email, subjectRSVPConfirm, body); err != nil {
			log.Warn("failed to send rsvp confirmation",
				slog.String("event_id", eventID),
				slog.String("user_id", p.ID),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// Withdraw removes the principal's registration from an event.
func (s *RSVPService) Withdraw(ctx context.Context, p authz.Principal, eventID string) error {
	log := slogx.FromContext(ctx)

	if !authz.Allow(p, authz.ParticipantOnly...) {
		return ErrForbidden
	}

	if _, err := s.Store.Events().GetEventByID(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEventNotFound
		}
		log.Error("failed to fetch event", slog.Any("error", err))
		return err
	}

	removed, err := s.Store.Events().RemoveRSVP(ctx, eventID, p.ID)
	if err != nil {
		log.Error("failed to remove rsvp",
			slog.String("event_id", eventID),
			slog.String("user_id", p.ID),
			slog.Any("error", err),
		)
		return err
	}
	if !removed {
		return ErrNotRegistered
	}

	log.Info("rsvp withdrawn",
		slog.String("event_id", eventID),
		slog.String("user_id", p.ID),
	)
	return nil
}

// Attendees lists the users registered for an event. Restricted to
// organizers and admins.
func (s *RSVPService) Attendees(ctx context.Context, p authz.Principal, eventID string) ([]domain.User, error) {
	if !authz.Allow(p, authz.ManagerOnly...) {
		return nil, ErrForbidden
	}
	if _, err := s.Store.Events().GetEventByID(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return s.Store.Events().ListRSVPUsers(ctx, eventID)
}
