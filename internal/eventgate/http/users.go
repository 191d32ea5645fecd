package http

import (
	"errors"
	"net/http"

	"github.com/openvenue/eventgate/internal/eventgate/service"
	"github.com/openvenue/eventgate/pkg/eventsdk"
	"github.com/openvenue/eventgate/pkg/httpx"
	"github.com/openvenue/eventgate/pkg/slogx"
)

type UsersHandler struct {
	RolesService *service.RolesService
}

// HandleList returns all accounts with their roles.
//
//	@Summary		List users
//	@Description	Returns every account with its role names. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	eventsdk.UserListResponse	"All accounts"
//	@Failure		403	{object}	eventsdk.APIError			"Admin role required"
//	@Failure		500	{object}	eventsdk.APIError			"Internal server error"
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.RolesService.ListUsers(ctx, principalFromContext(ctx))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			eventsdk.ErrForbidden.WriteError(w)
			return
		}
		log.Error("failed to list users", "err", err)
		eventsdk.ErrServerError.WriteError(w)
		return
	}

	out := eventsdk.UserListResponse{Users: make([]eventsdk.UserResponse, 0, len(users))}
	for _, u := range users {
		out.Users = append(out.Users, eventsdk.UserResponse{
			UserID:    u.User.ID,
			Username:  u.User.Username,
			Email:     u.User.Email,
			Active:    u.User.Active,
			Superuser: u.User.Superuser,
			Roles:     u.Roles,
			CreatedAt: u.User.CreatedAt,
		})
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRoles returns the role catalogue.
//
//	@Summary		List roles
//	@Description	Returns every role a user can be assigned. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	eventsdk.RoleListResponse	"All roles"
//	@Failure		403	{object}	eventsdk.APIError			"Admin role required"
//	@Failure		500	{object}	eventsdk.APIError			"Internal server error"
//	@Router			/v1/roles [get].
func (h *UsersHandler) HandleRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	roles, err := h.RolesService.ListRoles(ctx)
	if err != nil {
		log.Error("failed to list roles", "err", err)
		eventsdk.ErrServerError.WriteError(w)
		return
	}

	out := eventsdk.RoleListResponse{Roles: make([]eventsdk.RoleResponse, 0, len(roles))}
	for _, role := range roles {
		out.Roles = append(out.Roles, eventsdk.RoleResponse{
			Name:        role.Name,
			Description: role.Description,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleChangeRole replaces a user's role.
//
//	@Summary		Change a user's role
//	@Description	Replaces the target's role set with exactly the named role. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"User id"
//	@Param			request	body		eventsdk.ChangeRoleRequest	true	"New role name"
//	@Success		200		{object}	eventsdk.MessageResponse	"Role changed"
//	@Failure		400		{object}	eventsdk.APIError			"Unknown role"
//	@Failure		403		{object}	eventsdk.APIError			"Admin role required"
//	@Failure		404		{object}	eventsdk.APIError			"Unknown user"
//	@Failure		500		{object}	eventsdk.APIError			"Internal server error"
//	@Router			/v1/users/{id}/role [put].
func (h *UsersHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req eventsdk.ChangeRoleRequest
	if err := decodeJSON(r, &req); err != nil || req.Role == "" {
		eventsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	err := h.RolesService.ChangeRole(ctx, principalFromContext(ctx), r.PathValue("id"), req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			eventsdk.ErrForbidden.WriteError(w)
		case errors.Is(err, service.ErrInvalidRole):
			eventsdk.ErrInvalidRequest.WithDescription("unknown role").WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			eventsdk.ErrNotFound.WriteError(w)
		default:
			log.Error("role change failed", "err", err)
			eventsdk.ErrServerError.WriteError(w)
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, eventsdk.MessageResponse{Message: "role changed"})
}

// HandleDelete removes an account.
//
//	@Summary		Delete a user
//	@Description	Removes the account, its role memberships and registrations. Admin only;
//	@Description	admins cannot delete themselves.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User id"
//	@Success		200	{object}	eventsdk.MessageResponse	"Deleted"
//	@Failure		400	{object}	eventsdk.APIError			"Self-deletion attempt"
//	@Failure		403	{object}	eventsdk.APIError			"Admin role required"
//	@Failure		404	{object}	eventsdk.APIError			"Unknown user"
//	@Failure		500	{object}	eventsdk.APIError			"Internal server error"
//	@Router			/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.RolesService.DeleteUser(ctx, principalFromContext(ctx), r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			eventsdk.ErrForbidden.WriteError(w)
		case errors.Is(err, service.ErrValidation):
			eventsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			eventsdk.ErrNotFound.WriteError(w)
		default:
			log.Error("user deletion failed", "err", err)
			eventsdk.ErrServerError.WriteError(w)
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, eventsdk.MessageResponse{Message: "user deleted"})
}
