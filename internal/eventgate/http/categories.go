package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/openvenue/eventgate/internal/eventgate/service"
	"github.com/openvenue/eventgate/pkg/eventsdk"
	"github.com/openvenue/eventgate/pkg/httpx"
	"github.com/openvenue/eventgate/pkg/slogx"
)

type CategoriesHandler struct {
	CategoryService *service.CategoryService
}

// HandleList lists all categories.
//
//	@Summary		List categories
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{object}	eventsdk.CategoryListResponse	"All categories"
//	@Failure		500	{object}	eventsdk.APIError				"Internal server error"
//	@Router			/v1/categories [get].
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	categories, err := h.CategoryService.List(ctx)
	if err != nil {
		log.Error("failed to list categories", "err", err)
		eventsdk.ErrServerError.WriteError(w)
		return
	}

	out := eventsdk.CategoryListResponse{
		Categories: make([]eventsdk.CategoryResponse, 0, len(categories)),
	}
	for _, c := range categories {
		out.Categories = append(out.Categories, eventsdk.CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate creates a category.
//
//	@Summary		Create a category
//	@Description	Requires the organizer or admin role. Category names are unique.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		eventsdk.CategoryRequest	true	"Category details"
//	@Success		201		{object}	eventsdk.CategoryResponse	"Created category"
//	@Failure		400		{object}	eventsdk.APIError			"Validation error"
//	@Failure		403		{object}	eventsdk.APIError			"Insufficient role"
//	@Failure		409		{object}	eventsdk.APIError			"Name already in use"
//	@Failure		500		{object}	eventsdk.APIError			"Internal server error"
//	@Router			/v1/categories [post].
func (h *CategoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req eventsdk.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		eventsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	category, err := h.CategoryService.Create(ctx, principalFromContext(ctx), req.Name, req.Description)
	if err != nil {
		writeCategoryError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, eventsdk.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	})
}

// HandleUpdate renames a category.
//
//	@Summary		Update a category
//	@Tags			Categories
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Category id"
//	@Param			request	body		eventsdk.CategoryRequest	true	"New details"
//	@Success		200		{object}	eventsdk.CategoryResponse	"Updated category"
//	@Failure		403		{object}	eventsdk.APIError			"Insufficient role"
//	@Failure		404		{object}	eventsdk.APIError			"Unknown category"
//	@Failure		409		{object}	eventsdk.APIError			"Name already in use"
//	@Failure		500		{object}	eventsdk.APIError			"Internal server error"
//	@Router			/v1/categories/{id} [put].
func (h *CategoriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req eventsdk.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		eventsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	category, err := h.CategoryService.Update(ctx, principalFromContext(ctx), r.PathValue("id"), req.Name, req.Description)
	if err != nil {
		writeCategoryError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, eventsdk.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	})
}

// HandleDelete removes a category.
//
//	@Summary		Delete a category
//	@Description	Events referencing the category are detached, not deleted.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Category id"
//	@Success		200	{object}	eventsdk.MessageResponse	"Deleted"
//	@Failure		403	{object}	eventsdk.APIError			"Insufficient role"
//	@Failure		404	{object}	eventsdk.APIError			"Unknown category"
//	@Failure		500	{object}	eventsdk.APIError			"Internal server error"
//	@Router			/v1/categories/{id} [delete].
func (h *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.CategoryService.Delete(ctx, principalFromContext(ctx), r.PathValue("id")); err != nil {
		writeCategoryError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, eventsdk.MessageResponse{Message: "category deleted"})
}

func writeCategoryError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		eventsdk.ErrForbidden.WriteError(w)
	case errors.Is(err, service.ErrValidation):
		eventsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrCategoryNotFound):
		eventsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrCategoryAlreadyExists):
		eventsdk.ErrConflict.WithDescription("a category with that name already exists").WriteError(w)
	default:
		log.Error("category operation failed", "err", err)
		eventsdk.ErrServerError.WriteError(w)
	}
}
