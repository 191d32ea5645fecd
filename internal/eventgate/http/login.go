package http

import (
	"errors"
	"net/http"

	"github.com/openvenue/eventgate/internal/eventgate/service"
	"github.com/openvenue/eventgate/pkg/eventsdk"
	"github.com/openvenue/eventgate/pkg/httpx"
	"github.com/openvenue/eventgate/pkg/jwtx"
	"github.com/openvenue/eventgate/pkg/slogx"
)

type LoginHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP handles authentication.
//
//	@Summary		Log in
//	@Description	Verifies credentials and returns a bearer session token. A correct
//	@Description	password against a pending account gets a distinct
//	@Description	account_not_activated error.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		eventsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	eventsdk.LoginResponse	"Session token"
//	@Failure		401		{object}	eventsdk.APIError		"Invalid credentials"
//	@Failure		403		{object}	eventsdk.APIError		"Account not activated"
//	@Failure		500		{object}	eventsdk.APIError		"Internal server error"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req eventsdk.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		eventsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	token, user, err := h.AccountService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			eventsdk.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrAccountNotActivated):
			eventsdk.ErrAccountNotActivated.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			eventsdk.ErrServerError.WriteError(w)
		}
		return
	}

	roles, err := h.AccountService.Store.Users().GetUserRoles(ctx, user.ID)
	if err != nil {
		log.Error("failed to load roles for login response", "err", err)
		eventsdk.ErrServerError.WriteError(w)
		return
	}
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, eventsdk.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(jwtx.DefaultSessionTTL.Seconds()),
		UserID:    user.ID,
		Username:  user.Username,
		Roles:     names,
	})
}
