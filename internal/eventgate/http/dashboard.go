package http

import (
	"errors"
	"net/http"

	"github.com/openvenue/eventgate/internal/eventgate/service"
	"github.com/openvenue/eventgate/pkg/eventsdk"
	"github.com/openvenue/eventgate/pkg/httpx"
	"github.com/openvenue/eventgate/pkg/slogx"
)

type DashboardHandler struct {
	EventService *service.EventService
}

// ServeHTTP returns the organizer dashboard counters.
//
//	@Summary		Dashboard statistics
//	@Description	Event and registration counters for organizers and admins.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	eventsdk.DashboardResponse	"Counters"
//	@Failure		403	{object}	eventsdk.APIError			"Insufficient role"
//	@Failure		500	{object}	eventsdk.APIError			"Internal server error"
//	@Router			/v1/dashboard [get].
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	stats, err := h.EventService.Dashboard(ctx, principalFromContext(ctx))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			eventsdk.ErrForbidden.WriteError(w)
			return
		}
		log.Error("failed to compute dashboard", "err", err)
		eventsdk.ErrServerError.WriteError(w)
		return
	}

	today := make([]eventsdk.EventResponse, 0, len(stats.TodayEvents))
	for _, ev := range stats.TodayEvents {
		today = append(today, eventResponse(ev))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, eventsdk.DashboardResponse{
		TotalEvents:       stats.TotalEvents,
		TotalParticipants: stats.TotalParticipants,
		UpcomingEvents:    stats.UpcomingEvents,
		PastEvents:        stats.PastEvents,
		TodayEvents:       today,
	})
}
