package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/openvenue/eventgate/internal/eventgate/authz"
	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/openvenue/eventgate/pkg/eventsdk"
	"github.com/openvenue/eventgate/pkg/httpx"
)

const dateLayout = "2006-01-02"

// principalFromContext rebuilds the authorization principal the authn
// middleware stored on the request context. Absent claims yield the
// anonymous principal, which every guard refuses.
func principalFromContext(ctx context.Context) authz.Principal {
	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		return authz.Anonymous
	}
	return authz.Principal{
		ID:            userID,
		Username:      httpx.UsernameFromContext(ctx),
		Authenticated: true,
		Superuser:     httpx.SuperuserFromContext(ctx),
		Roles:         httpx.RolesFromContext(ctx),
	}
}

// decodeJSON reads a JSON request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func eventResponse(e domain.Event) eventsdk.EventResponse {
	return eventsdk.EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Location:    e.Location,
		Date:        e.Date.Format(dateLayout),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		CategoryID:  e.CategoryID,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// parseEventRequest converts the wire shape into service input, validating
// the date format.
func parseEventRequest(req eventsdk.EventRequest) (date time.Time, ok bool) {
	d, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
