package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openvenue/eventgate/internal/eventgate/authz"
	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/openvenue/eventgate/internal/eventgate/store"
	"github.com/openvenue/eventgate/pkg/idx"
	"github.com/openvenue/eventgate/pkg/slogx"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category name already in use")
)

// CategoryService manages event categories. Mutations are restricted to
// organizers and admins; reads are open to authenticated users.
type CategoryService struct {
	Store store.Store
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.Store.Categories().ListAll(ctx)
}

// Create adds a new category.
func (s *CategoryService) Create(ctx context.Context, p authz.Principal, name, description string) (domain.Category, error) {
	log := slogx.FromContext(ctx)

	if !authz.Allow(p, authz.ManagerOnly...) {
		return domain.Category{}, ErrForbidden
	}
	if name == "" {
		return domain.Category{}, fmt.Errorf("%w: category name is required", ErrValidation)
	}

	category := domain.Category{
		ID:          idx.New().String(),
		Name:        name,
		Description: description,
	}
	if err := s.Store.Categories().CreateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Category{}, ErrCategoryAlreadyExists
		}
		log.Error("failed to create category", slog.Any("error", err))
		return domain.Category{}, err
	}

	log.Info("category created",
		slog.String("category_id", category.ID),
		slog.String("name", name),
	)
	return category, nil
}

// Update renames a category.
func (s *CategoryService) Update(ctx context.Context, p authz.Principal, categoryID, name, description string) (domain.Category, error) {
	log := slogx.FromContext(ctx)

	if !authz.Allow(p, authz.ManagerOnly...) {
		return domain.Category{}, ErrForbidden
	}
	if name == "" {
		return domain.Category{}, fmt.Errorf("%w: category name is required", ErrValidation)
	}

	category, err := s.Store.Categories().GetCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Category{}, ErrCategoryNotFound
		}
		return domain.Category{}, err
	}

	category.Name = name
	category.Description = description
	if err := s.Store.Categories().UpdateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Category{}, ErrCategoryAlreadyExists
		}
		log.Error("failed to update category",
			slog.String("category_id", categoryID),
			slog.Any("error", err),
		)
		return domain.Category{}, err
	}
	return category, nil
}

// Delete removes a category. Events referencing it are detached, not
// deleted.
func (s *CategoryService) Delete(ctx context.Context, p authz.Principal, categoryID string) error {
	log := slogx.FromContext(ctx)

	if !authz.Allow(p, authz.ManagerOnly...) {
		return ErrForbidden
	}

	if _, err := s.Store.Categories().GetCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if err := s.Store.Categories().DeleteCategory(ctx, categoryID); err != nil {
		log.Error("failed to delete category",
			slog.String("category_id", categoryID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("category deleted", slog.String("category_id", categoryID))
	return nil
}
