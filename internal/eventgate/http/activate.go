package http

import (
	"errors"
	"net/http"

	"github.com/openvenue/eventgate/internal/eventgate/service"
	"github.com/openvenue/eventgate/pkg/eventsdk"
	"github.com/openvenue/eventgate/pkg/httpx"
	"github.com/openvenue/eventgate/pkg/slogx"
)

type ActivateHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP redeems an activation token. GET serves the emailed link with
// uid and token as query parameters; POST takes them as a JSON body.
//
//	@Summary		Activate an account
//	@Description	Redeems the activation token from the signup email. Every failure mode
//	@Description	returns the same activation_invalid error.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		eventsdk.ActivateRequest	true	"User id and token"
//	@Success		200		{object}	eventsdk.MessageResponse	"Account activated"
//	@Failure		400		{object}	eventsdk.APIError			"Invalid or expired token"
//	@Failure		500		{object}	eventsdk.APIError			"Internal server error"
//	@Router			/v1/auth/activate [post].
func (h *ActivateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req eventsdk.ActivateRequest
	if r.Method == http.MethodGet {
		req.UserID = r.URL.Query().Get("uid")
		req.Token = r.URL.Query().Get("token")
	} else if err := decodeJSON(r, &req); err != nil {
		eventsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.UserID == "" || req.Token == "" {
		eventsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.AccountService.Activate(ctx, req.UserID, req.Token); err != nil {
		if errors.Is(err, service.ErrActivationInvalid) {
			eventsdk.ErrActivationInvalid.WriteError(w)
			return
		}
		log.Error("activation failed", "err", err)
		eventsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, eventsdk.MessageResponse{
		Message: "account activated, you can log in now",
	})
}

type ResendActivationHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP requests a fresh activation email.
//
//	@Summary		Resend the activation email
//	@Description	Mints a new activation token for a pending account. Always reports
//	@Description	success so the endpoint cannot be used to probe registered addresses.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		eventsdk.ResendActivationRequest	true	"Email address"
//	@Success		200		{object}	eventsdk.MessageResponse			"Acknowledged"
//	@Failure		400		{object}	eventsdk.APIError					"Malformed request"
//	@Failure		500		{object}	eventsdk.APIError					"Internal server error"
//	@Router			/v1/auth/activate/resend [post].
func (h *ResendActivationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req eventsdk.ResendActivationRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		eventsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.AccountService.ResendActivation(ctx, req.Email); err != nil {
		log.Error("activation resend failed", "err", err)
		eventsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, eventsdk.MessageResponse{
		Message: "if the address is registered and pending, a new activation email has been sent",
	})
}
