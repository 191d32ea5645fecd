package http

import (
	"net/http"

	"github.com/openvenue/eventgate/internal/eventgate/service"
	"github.com/openvenue/eventgate/pkg/eventsdk"
	"github.com/openvenue/eventgate/pkg/httpx"
	"github.com/openvenue/eventgate/pkg/slogx"
)

type ProfileHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP returns the authenticated account.
//
//	@Summary		Get the current account
//	@Description	Returns the authenticated user's profile and roles.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	eventsdk.ProfileResponse	"Account details"
//	@Failure		401	{object}	eventsdk.APIError			"Missing or invalid session token"
//	@Failure		500	{object}	eventsdk.APIError			"Internal server error"
//	@Router			/v1/auth/me [get].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		eventsdk.ErrUnauthorized.WriteError(w)
		return
	}

	user, roles, err := h.AccountService.Profile(ctx, userID)
	if err != nil {
		log.Warn("failed to load profile", "user_id", userID, "err", err)
		eventsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, eventsdk.ProfileResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Roles:     roles,
		Superuser: user.Superuser,
	})
}
