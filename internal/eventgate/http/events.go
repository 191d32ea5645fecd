package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/openvenue/eventgate/internal/eventgate/service"
	"github.com/openvenue/eventgate/pkg/eventsdk"
	"github.com/openvenue/eventgate/pkg/httpx"
	"github.com/openvenue/eventgate/pkg/slogx"
)

type EventsHandler struct {
	EventService *service.EventService
}

// HandleList lists events.
//
//	@Summary		List events
//	@Description	Returns events, optionally filtered by free-text query (q), category_id,
//	@Description	and date range (from / to, YYYY-MM-DD). Public.
//	@Tags			Events
//	@Produce		json
//	@Param			q			query		string	false	"Free-text search over name, description and location"
//	@Param			category_id	query		string	false	"Filter by category"
//	@Param			from		query		string	false	"Earliest date (YYYY-MM-DD)"
//	@Param			to			query		string	false	"Latest date (YYYY-MM-DD)"
//	@Success		200			{object}	eventsdk.EventListResponse	"Matching events"
//	@Failure		400			{object}	eventsdk.APIError			"Malformed filter"
//	@Failure		500			{object}	eventsdk.APIError			"Internal server error"
//	@Router			/v1/events [get].
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	filter := domain.EventFilter{
		Query:      r.URL.Query().Get("q"),
		CategoryID: r.URL.Query().Get("category_id"),
	}
	if v := r.URL.Query().Get("from"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			eventsdk.ErrInvalidRequest.WithDescription("from must be YYYY-MM-DD").WriteError(w)
			return
		}
		filter.From = d
	}
	if v := r.URL.Query().Get("to"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			eventsdk.ErrInvalidRequest.WithDescription("to must be YYYY-MM-DD").WriteError(w)
			return
		}
		filter.To = d
	}

	events, err := h.EventService.List(ctx, filter)
	if err != nil {
		log.Error("failed to list events", "err", err)
		eventsdk.ErrServerError.WriteError(w)
		return
	}

	out := eventsdk.EventListResponse{Events: make([]eventsdk.EventResponse, 0, len(events))}
	for _, e := range events {
		out.Events = append(out.Events, eventResponse(e))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns one event.
//
//	@Summary		Get an event
//	@Tags			Events
//	@Produce		json
//	@Param			id	path		string	true	"Event id"
//	@Success		200	{object}	eventsdk.EventResponse	"Event"
//	@Failure		404	{object}	eventsdk.APIError		"Unknown event"
//	@Failure		500	{object}	eventsdk.APIError		"Internal server error"
//	@Router			/v1/events/{id} [get].
func (h *EventsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	event, err := h.EventService.Get(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			eventsdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("failed to fetch event", "err", err)
		eventsdk.ErrServerError.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, eventResponse(event))
}

// HandleCreate creates an event.
//
//	@Summary		Create an event
//	@Description	Requires the organizer or admin role.
//	@Tags			Events
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		eventsdk.EventRequest	true	"Event details"
//	@Success		201		{object}	eventsdk.EventResponse	"Created event"
//	@Failure		400		{object}	eventsdk.APIError		"Validation error"
//	@Failure		401		{object}	eventsdk.APIError		"Missing or invalid session token"
//	@Failure		403		{object}	eventsdk.APIError		"Insufficient role"
//	@Failure		500		{object}	eventsdk.APIError		"Internal server error"
//	@Router			/v1/events [post].
func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req eventsdk.EventRequest
	if err := decodeJSON(r, &req); err != nil {
		eventsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	date, ok := parseEventRequest(req)
	if !ok {
		eventsdk.ErrInvalidRequest.WithDescription("date must be YYYY-MM-DD").WriteError(w)
		return
	}

	event, err := h.EventService.Create(ctx, principalFromContext(ctx), service.EventInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeEventError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, eventResponse(event))
}

// HandleUpdate replaces an event's details.
//
//	@Summary		Update an event
//	@Description	Requires the organizer or admin role.
//	@Tags			Events
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Event id"
//	@Param			request	body		eventsdk.EventRequest	true	"New event details"
//	@Success		200		{object}	eventsdk.EventResponse	"Updated event"
//	@Failure		400		{object}	eventsdk.APIError		"Validation error"
//	@Failure		403		{object}	eventsdk.APIError		"Insufficient role"
//	@Failure		404		{object}	eventsdk.APIError		"Unknown event"
//	@Failure		500		{object}	eventsdk.APIError		"Internal server error"
//	@Router			/v1/events/{id} [put].
func (h *EventsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req eventsdk.EventRequest
	if err := decodeJSON(r, &req); err != nil {
		eventsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	date, ok := parseEventRequest(req)
	if !ok {
		eventsdk.ErrInvalidRequest.WithDescription("date must be YYYY-MM-DD").WriteError(w)
		return
	}

	event, err := h.EventService.Update(ctx, principalFromContext(ctx), r.PathValue("id"), service.EventInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeEventError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, eventResponse(event))
}

// HandleDelete removes an event.
//
//	@Summary		Delete an event
//	@Description	Requires the organizer or admin role. The event's registrations are
//	@Description	removed with it.
//	@Tags			Events
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Event id"
//	@Success		200	{object}	eventsdk.MessageResponse	"Deleted"
//	@Failure		403	{object}	eventsdk.APIError			"Insufficient role"
//	@Failure		404	{object}	eventsdk.APIError			"Unknown event"
//	@Failure		500	{object}	eventsdk.APIError			"Internal server error"
//	@Router			/v1/events/{id} [delete].
func (h *EventsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.EventService.Delete(ctx, principalFromContext(ctx), r.PathValue("id")); err != nil {
		writeEventError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, eventsdk.MessageResponse{Message: "event deleted"})
}

// writeEventError maps event service errors onto the wire taxonomy.
func writeEventError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		eventsdk.ErrForbidden.WriteError(w)
	case errors.Is(err, service.ErrValidation):
		eventsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrInvalidCategory):
		eventsdk.ErrInvalidRequest.WithDescription("category does not exist").WriteError(w)
	case errors.Is(err, service.ErrEventNotFound):
		eventsdk.ErrNotFound.WriteError(w)
	default:
		log.Error("event operation failed", "err", err)
		eventsdk.ErrServerError.WriteError(w)
	}
}
