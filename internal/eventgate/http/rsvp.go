package http

import (
	"errors"
	"net/http"

	"github.com/openvenue/eventgate/internal/eventgate/service"
	"github.com/openvenue/eventgate/pkg/eventsdk"
	"github.com/openvenue/eventgate/pkg/httpx"
	"github.com/openvenue/eventgate/pkg/slogx"
)

type RSVPHandler struct {
	RSVPService *service.RSVPService
}

// HandleRegister registers the authenticated participant for an event.
//
//	@Summary		RSVP to an event
//	@Description	Registers the authenticated participant. Registering twice returns 409
//	@Description	with registered already true; the registration is unchanged and no
//	@Description	second confirmation email is sent.
//	@Tags			RSVP
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Event id"
//	@Success		201	{object}	eventsdk.RSVPResponse	"Registered"
//	@Failure		401	{object}	eventsdk.APIError		"Missing or invalid session token"
//	@Failure		403	{object}	eventsdk.APIError		"Participant role required"
//	@Failure		404	{object}	eventsdk.APIError		"Unknown event"
//	@Failure		409	{object}	eventsdk.RSVPResponse	"Already registered"
//	@Failure		500	{object}	eventsdk.APIError		"Internal server error"
//	@Router			/v1/events/{id}/rsvp [post].
func (h *RSVPHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	eventID := r.PathValue("id")

	err := h.RSVPService.Register(ctx, principalFromContext(ctx), eventID)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusCreated, eventsdk.RSVPResponse{
			EventID:    eventID,
			Registered: true,
			Message:    "registration confirmed",
		})
	case errors.Is(err, service.ErrAlreadyRegistered):
		// Informational, not a failure: the caller is registered either way.
		httpx.WriteJSON(w, http.StatusConflict, eventsdk.RSVPResponse{
			EventID:    eventID,
			Registered: true,
			Message:    "already registered for this event",
		})
	case errors.Is(err, service.ErrForbidden):
		eventsdk.ErrForbidden.WriteError(w)
	case errors.Is(err, service.ErrEventNotFound):
		eventsdk.ErrNotFound.WriteError(w)
	default:
		log.Error("rsvp failed", "event_id", eventID, "err", err)
		eventsdk.ErrServerError.WriteError(w)
	}
}

// HandleWithdraw removes the authenticated participant's registration.
//
//	@Summary		Cancel an RSVP
//	@Tags			RSVP
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Event id"
//	@Success		200	{object}	eventsdk.RSVPResponse	"Withdrawn"
//	@Failure		403	{object}	eventsdk.APIError		"Participant role required"
//	@Failure		404	{object}	eventsdk.APIError		"Unknown event or no registration"
//	@Failure		500	{object}	eventsdk.APIError		"Internal server error"
//	@Router			/v1/events/{id}/rsvp [delete].
func (h *RSVPHandler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	eventID := r.PathValue("id")

	err := h.RSVPService.Withdraw(ctx, principalFromContext(ctx), eventID)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, eventsdk.RSVPResponse{
			EventID: eventID,
			Message: "registration cancelled",
		})
	case errors.Is(err, service.ErrForbidden):
		eventsdk.ErrForbidden.WriteError(w)
	case errors.Is(err, service.ErrEventNotFound):
		eventsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrNotRegistered):
		eventsdk.ErrNotFound.WithDescription("you are not registered for this event").WriteError(w)
	default:
		log.Error("rsvp withdrawal failed", "event_id", eventID, "err", err)
		eventsdk.ErrServerError.WriteError(w)
	}
}

// HandleAttendees lists the users registered for an event.
//
//	@Summary		List attendees
//	@Description	Requires the organizer or admin role.
//	@Tags			RSVP
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Event id"
//	@Success		200	{object}	eventsdk.AttendeeListResponse	"Registered users"
//	@Failure		403	{object}	eventsdk.APIError				"Insufficient role"
//	@Failure		404	{object}	eventsdk.APIError				"Unknown event"
//	@Failure		500	{object}	eventsdk.APIError				"Internal server error"
//	@Router			/v1/events/{id}/attendees [get].
func (h *RSVPHandler) HandleAttendees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	eventID := r.PathValue("id")

	users, err := h.RSVPService.Attendees(ctx, principalFromContext(ctx), eventID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			eventsdk.ErrForbidden.WriteError(w)
		case errors.Is(err, service.ErrEventNotFound):
			eventsdk.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to list attendees", "event_id", eventID, "err", err)
			eventsdk.ErrServerError.WriteError(w)
		}
		return
	}

	out := eventsdk.AttendeeListResponse{
		EventID:   eventID,
		Attendees: make([]eventsdk.AttendeeResponse, 0, len(users)),
	}
	for _, u := range users {
		out.Attendees = append(out.Attendees, eventsdk.AttendeeResponse{
			UserID:   u.ID,
			Username: u.Username,
			Email:    u.Email,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
