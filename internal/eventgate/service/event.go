package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openvenue/eventgate/internal/eventgate/authz"
	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/openvenue/eventgate/internal/eventgate/store"
	"github.com/openvenue/eventgate/pkg/idx"
	"github.com/openvenue/eventgate/pkg/slogx"
)

var ErrInvalidCategory = errors.New("invalid category")

// EventService owns the event catalogue. Reading is open to any
// authenticated user; creating, editing and deleting are restricted to
// organizers and admins.
type EventService struct {
	Store store.Store
}

// EventInput carries the caller-supplied fields for create and update.
type EventInput struct {
	Name        string
	Description string
	Location    string
	Date        time.Time
	StartTime   *string
	EndTime     *string
	CategoryID  string
}

func (s *EventService) validateInput(ctx context.Context, in EventInput) error {
	if in.Name == "" {
		return fmt.Errorf("%w: event name is required", ErrValidation)
	}
	if len(in.Name) > 200 {
		return fmt.Errorf("%w: event name is too long", ErrValidation)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: event date is required", ErrValidation)
	}
	if in.CategoryID != "" {
		if _, err := s.Store.Categories().GetCategoryByID(ctx, in.CategoryID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidCategory
			}
			return err
		}
	}
	return nil
}

// Create adds a new event owned by the acting principal.
func (s *EventService) Create(ctx context.Context, p authz.Principal, in EventInput) (domain.Event, error) {
	log := slogx.FromContext(ctx)

	if !authz.Allow(p, authz.ManagerOnly...) {
		log.Warn("event creation denied", slog.String("user_id", p.ID))
		return domain.Event{}, ErrForbidden
	}
	if err := s.validateInput(ctx, in); err != nil {
		return domain.Event{}, err
	}

	event := domain.Event{
		ID:          idx.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		CategoryID:  in.CategoryID,
		CreatedBy:   p.ID,
	}
	if err := s.Store.Events().CreateEvent(ctx, event); err != nil {
		log.Error("failed to create event", slog.Any("error", err))
		return domain.Event{}, err
	}

	log.Info("event created",
		slog.String("event_id", event.ID),
		slog.String("name", event.Name),
		slog.String("created_by", p.ID),
	)
	return event, nil
}

// Update rewrites an event's details.
func (s *EventService) Update(ctx context.Context, p authz.Principal, eventID string, in EventInput) (domain.Event, error) {
	log := slogx.FromContext(ctx)

	if !authz.Allow(p, authz.ManagerOnly...) {
		return domain.Event{}, ErrForbidden
	}
	if err := s.validateInput(ctx, in); err != nil {
		return domain.Event{}, err
	}

	event, err := s.Store.Events().GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Event{}, ErrEventNotFound
		}
		return domain.Event{}, err
	}

	event.Name = in.Name
	event.Description = in.Description
	event.Location = in.Location
	event.Date = in.Date
	event.StartTime = in.StartTime
	event.EndTime = in.EndTime
	event.CategoryID = in.CategoryID

	if err := s.Store.Events().UpdateEvent(ctx, event); err != nil {
		log.Error("failed to update event",
			slog.String("event_id", eventID),
			slog.Any("error", err),
		)
		return domain.Event{}, err
	}

	log.Info("event updated", slog.String("event_id", eventID))
	return event, nil
}

// Delete removes an event and its registrations.
func (s *EventService) Delete(ctx context.Context, p authz.Principal, eventID string) error {
	log := slogx.FromContext(ctx)

	if !authz.Allow(p, authz.ManagerOnly...) {
		log.Warn("event deletion denied",
			slog.String("user_id", p.ID),
			slog.String("event_id", eventID),
		)
		return ErrForbidden
	}

	if _, err := s.Store.Events().GetEventByID(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if err := s.Store.Events().DeleteEvent(ctx, eventID); err != nil {
		log.Error("failed to delete event",
			slog.String("event_id", eventID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("event deleted",
		slog.String("event_id", eventID),
		slog.String("deleted_by", p.ID),
	)
	return nil
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, eventID string) (domain.Event, error) {
	event, err := s.Store.Events().GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Event{}, ErrEventNotFound
		}
		return domain.Event{}, err
	}
	return event, nil
}

// List returns events matching the filter.
func (s *EventService) List(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	return s.Store.Events().ListEvents(ctx, f)
}

// Dashboard computes the organizer dashboard counters. Restricted to
// organizers and admins.
func (s *EventService) Dashboard(ctx context.Context, p authz.Principal) (domain.DashboardStats, error) {
	if !authz.Allow(p, authz.ManagerOnly...) {
		return domain.DashboardStats{}, ErrForbidden
	}
	return s.Store.Events().DashboardStats(ctx, time.Now().UTC())
}
