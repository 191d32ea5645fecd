package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/openvenue/eventgate/internal/eventgate/store"
	"github.com/openvenue/eventgate/pkg/cryptox"
	"github.com/openvenue/eventgate/pkg/idx"
	"github.com/openvenue/eventgate/pkg/slogx"
)

// BootstrapService prepares the database for serving: it provisions the
// built-in roles, verifies the configured default signup role resolves, and
// seeds the first admin account on an empty database. It runs once at
// startup, before the HTTP listener opens.
type BootstrapService struct {
	Store store.Store

	// DefaultRole is the role granted on signup. Startup aborts if it
	// does not exist after provisioning.
	DefaultRole string

	// AdminUsername/AdminEmail/AdminPassword seed the first account on an
	// empty database. If AdminPassword is blank a random one is generated
	// and logged once.
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Run provisions roles and the seed admin. Any error is fatal to startup:
// serving without the default role would make every signup fail halfway.
func (s *BootstrapService) Run(ctx context.Context) error {
	log := slogx.FromContext(ctx)

	// 1. Ensure the built-in roles exist.
	for _, r := range domain.BuiltinRoles() {
		_, err := s.Store.Roles().GetRoleByName(ctx, r.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("check role %q: %w", r.Name, err)
		}

		r.ID = idx.New().String()
		if err := s.Store.Roles().CreateRole(ctx, r); err != nil {
			// A concurrent replica may have created it first.
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			return fmt.Errorf("create role %q: %w", r.Name, err)
		}
		log.Info("provisioned role", slog.String("role", r.Name))
	}

	// 2. The default signup role must resolve or signups are broken.
	if _, err := s.Store.Roles().GetRoleByName(ctx, s.DefaultRole); err != nil {
		return fmt.Errorf("default signup role %q is not provisioned: %w", s.DefaultRole, err)
	}

	// 3. Seed the first admin on an empty database.
	return s.seedAdmin(ctx)
}

func (s *BootstrapService) seedAdmin(ctx context.Context) error {
	log := slogx.FromContext(ctx)

	if s.AdminUsername == "" {
		return nil
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("check user table: %w", err)
	}
	if !empty {
		return nil
	}

	password := s.AdminPassword
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return fmt.Errorf("generate admin password: %w", err)
		}
		// Logged once; the operator is expected to change it.
		log.Warn("generated admin password",
			slog.String("username", s.AdminUsername),
			slog.String("password", password),
		)
	}

	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	adminRole, err := s.Store.Roles().GetRoleByName(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("fetch admin role: %w", err)
	}

	admin := domain.User{
		ID:           idx.New().String(),
		Username:     s.AdminUsername,
		Email:        s.AdminEmail,
		PasswordHash: passwordHash,
		Active:       true,
		Superuser:    true,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, admin); err != nil {
			return err
		}
		return tx.Users().SetUserRoles(ctx, admin.ID, []string{adminRole.ID})
	})
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	log.Info("seeded admin account",
		slog.String("user_id", admin.ID),
		slog.String("username", admin.Username),
	)
	return nil
}
