package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/openvenue/eventgate/pkg/idx"
)

func TestChangeRoleIsExclusive(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	roles := &RolesService{Store: st}

	alice := seedParticipant(t, st, "alice")
	carol := seedParticipant(t, st, "carol")
	grantRole(t, st, carol.ID, domain.RoleAdmin)
	admin := principalFor(t, st, carol.ID)

	require.NoError(t, roles.ChangeRole(ctx, admin, alice.ID, domain.RoleOrganizer))

	got, err := st.Users().GetUserRoles(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 1, "role assignment replaces, never accumulates")
	assert.Equal(t, domain.RoleOrganizer, got[0].Name)

	// Reassigning again still yields exactly one role.
	require.NoError(t, roles.ChangeRole(ctx, admin, alice.ID, domain.RoleParticipant))
	got, err = st.Users().GetUserRoles(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.RoleParticipant, got[0].Name)
}

func TestChangeRoleGuards(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	roles := &RolesService{Store: st}

	alice := seedParticipant(t, st, "alice")
	bob := seedParticipant(t, st, "bob")

	// Non-admins are refused before any mutation.
	err := roles.ChangeRole(ctx, bob, alice.ID, domain.RoleOrganizer)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := st.Users().GetUserRoles(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.RoleParticipant, got[0].Name, "denied request must not mutate roles")

	carol := seedParticipant(t, st, "carol")
	grantRole(t, st, carol.ID, domain.RoleAdmin)
	admin := principalFor(t, st, carol.ID)

	assert.ErrorIs(t, roles.ChangeRole(ctx, admin, alice.ID, "astronaut"), ErrInvalidRole)
	assert.ErrorIs(t, roles.ChangeRole(ctx, admin, idx.New().String(), domain.RoleOrganizer), ErrUserNotFound)
}

func TestSuperuserBypassesRoleGuard(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	roles := &RolesService{Store: st}

	alice := seedParticipant(t, st, "alice")
	root := seedParticipant(t, st, "root")
	super := principalFor(t, st, root.ID)
	super.Superuser = true

	require.NoError(t, roles.ChangeRole(ctx, super, alice.ID, domain.RoleOrganizer))
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	roles := &RolesService{Store: st}

	alice := seedParticipant(t, st, "alice")
	carol := seedParticipant(t, st, "carol")
	grantRole(t, st, carol.ID, domain.RoleAdmin)
	admin := principalFor(t, st, carol.ID)

	_, err := roles.ListUsers(ctx, alice)
	assert.ErrorIs(t, err, ErrForbidden)

	users, err := roles.ListUsers(ctx, admin)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Len(t, u.Roles, 1)
	}
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	roles := &RolesService{Store: st}

	alice := seedParticipant(t, st, "alice")
	carol := seedParticipant(t, st, "carol")
	grantRole(t, st, carol.ID, domain.RoleAdmin)
	admin := principalFor(t, st, carol.ID)

	assert.ErrorIs(t, roles.DeleteUser(ctx, alice, carol.ID), ErrForbidden)
	assert.ErrorIs(t, roles.DeleteUser(ctx, admin, carol.ID), ErrValidation,
		"admins cannot delete themselves")
	assert.ErrorIs(t, roles.DeleteUser(ctx, admin, idx.New().String()), ErrUserNotFound)

	require.NoError(t, roles.DeleteUser(ctx, admin, alice.ID))
	_, err := st.Users().GetUserByID(ctx, alice.ID)
	assert.Error(t, err)
}

func TestListRoles(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	roles := &RolesService{Store: st}

	all, err := roles.ListRoles(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(all))
	for _, r := range all {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, []string{domain.RoleAdmin, domain.RoleOrganizer, domain.RoleParticipant}, names)
}
