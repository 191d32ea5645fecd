package http

import (
	"errors"
	"net/http"

	"github.com/openvenue/eventgate/internal/eventgate/service"
	"github.com/openvenue/eventgate/pkg/eventsdk"
	"github.com/openvenue/eventgate/pkg/httpx"
	"github.com/openvenue/eventgate/pkg/slogx"
)

type SignupHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP handles account signup.
//
//	@Summary		Create an account
//	@Description	Creates a new account with the participant role. The account starts
//	@Description	inactive and an activation link is emailed, unless the server is
//	@Description	configured to auto-activate.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		eventsdk.SignupRequest	true	"Signup details"
//	@Success		201		{object}	eventsdk.SignupResponse	"Account created"
//	@Failure		400		{object}	eventsdk.APIError		"Validation error"
//	@Failure		409		{object}	eventsdk.APIError		"Username or email already taken"
//	@Failure		500		{object}	eventsdk.APIError		"Internal server error"
//	@Router			/v1/auth/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req eventsdk.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		eventsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.AccountService.Signup(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			eventsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		case errors.Is(err, service.ErrUsernameAlreadyTaken),
			errors.Is(err, service.ErrEmailAlreadyTaken):
			eventsdk.ErrConflict.WithDescription(err.Error()).WriteError(w)
		default:
			log.Error("signup failed", "err", err)
			eventsdk.ErrServerError.WriteError(w)
		}
		return
	}

	message := "account created, check your email for the activation link"
	if user.Active {
		message = "account created and activated, you can log in now"
	}

	httpx.WriteJSON(w, http.StatusCreated, eventsdk.SignupResponse{
		UserID:   user.ID,
		Username: user.Username,
		Active:   user.Active,
		Message:  message,
	})
}
