package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openvenue/eventgate/internal/eventgate/authz"
	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/openvenue/eventgate/internal/eventgate/store"
	"github.com/openvenue/eventgate/pkg/slogx"
)

var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrUserNotFound = errors.New("user not found")
)

// RolesService covers the admin-facing account management surface: listing
// users with their roles, reassigning a user's role and removing accounts.
type RolesService struct {
	Store store.Store
}

// UserWithRoles pairs a user with the names of the roles they hold.
type UserWithRoles struct {
	User  domain.User
	Roles []string
}

// ListRoles returns every role defined in the system.
func (s *RolesService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListAll(ctx)
}

// ListUsers returns all accounts with their role names. Admin only.
func (s *RolesService) ListUsers(ctx context.Context, p authz.Principal) ([]UserWithRoles, error) {
	log := slogx.FromContext(ctx)

	if !authz.Allow(p, authz.AdminOnly...) {
		return nil, ErrForbidden
	}

	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", slog.Any("error", err))
		return nil, err
	}

	out := make([]UserWithRoles, 0, len(users))
	for _, u := range users {
		roles, err := s.Store.Users().GetUserRoles(ctx, u.ID)
		if err != nil {
			log.Error("failed to fetch user roles",
				slog.String("user_id", u.ID),
				slog.Any("error", err),
			)
			return nil, err
		}
		names := make([]string, 0, len(roles))
		for _, r := range roles {
			names = append(names, r.Name)
		}
		out = append(out, UserWithRoles{User: u, Roles: names})
	}
	return out, nil
}

// ChangeRole replaces the target user's role set with exactly the named
// role. Assignment is exclusive: whatever roles the user held before are
// removed in the same transaction. Admin only.
func (s *RolesService) ChangeRole(ctx context.Context, p authz.Principal, targetUserID, roleName string) error {
	log := slogx.FromContext(ctx)

	// 1. Authorize before any lookup so denied requests leave no trace.
	if !authz.Allow(p, authz.AdminOnly...) {
		log.Warn("role change denied",
			slog.String("actor_id", p.ID),
			slog.String("target_user_id", targetUserID),
		)
		return ErrForbidden
	}

	// 2. Resolve the role by name.
	role, err := s.Store.Roles().GetRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidRole
		}
		log.Error("failed to fetch role", slog.Any("error", err))
		return err
	}

	// 3. Confirm the target exists.
	target, err := s.Store.Users().GetUserByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return err
	}

	// 4. Replace the membership set atomically. The delete and insert
	// share a transaction so no reader ever observes the user roleless
	// or holding two roles.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().SetUserRoles(ctx, target.ID, []string{role.ID})
	})
	if err != nil {
		log.Error("failed to change user role",
			slog.String("target_user_id", target.ID),
			slog.String("role", roleName),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("user role changed",
		slog.String("actor_id", p.ID),
		slog.String("target_user_id", target.ID),
		slog.String("role", roleName),
	)
	return nil
}

// DeleteUser removes an account along with its role memberships and RSVPs.
// Admins cannot delete themselves; that would strand the system without an
// administrator one mistake at a time.
func (s *RolesService) DeleteUser(ctx context.Context, p authz.Principal, targetUserID string) error {
	log := slogx.FromContext(ctx)

	if !authz.Allow(p, authz.AdminOnly...) {
		return ErrForbidden
	}
	if p.ID == targetUserID {
		return fmt.Errorf("%w: cannot delete your own account", ErrValidation)
	}

	if _, err := s.Store.Users().GetUserByID(ctx, targetUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.Store.Users().DeleteUser(ctx, targetUserID); err != nil {
		log.Error("failed to delete user",
			slog.String("target_user_id", targetUserID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("user deleted",
		slog.String("actor_id", p.ID),
		slog.String("target_user_id", targetUserID),
	)
	return nil
}
