package authz

import (
	"testing"

	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/stretchr/testify/require"
)

func TestAllow(t *testing.T) {
	t.Parallel()

	t.Run("unauthenticated always fails", func(t *testing.T) {
		p := Principal{Roles: []string{domain.RoleAdmin}}
		require.False(t, Allow(p, AdminOnly...))
		require.False(t, Allow(Anonymous, ParticipantOnly...))
	})

	t.Run("membership intersection grants access", func(t *testing.T) {
		p := Principal{Authenticated: true, Roles: []string{domain.RoleParticipant}}
		require.True(t, Allow(p, ParticipantOnly...))
		require.True(t, Allow(p, domain.RoleOrganizer, domain.RoleParticipant))
		require.False(t, Allow(p, AdminOnly...))
	})

	t.Run("multiple roles may coexist", func(t *testing.T) {
		p := Principal{Authenticated: true, Roles: []string{domain.RoleOrganizer, domain.RoleParticipant}}
		require.True(t, Allow(p, OrganizerOnly...))
		require.True(t, Allow(p, ParticipantOnly...))
		require.True(t, Allow(p, ManagerOnly...))
	})

	t.Run("superuser passes every check", func(t *testing.T) {
		p := Principal{Authenticated: true, Superuser: true}
		require.True(t, Allow(p, AdminOnly...))
		require.True(t, Allow(p, ParticipantOnly...))
	})

	t.Run("superuser flag does not bypass authentication", func(t *testing.T) {
		p := Principal{Superuser: true}
		require.False(t, Allow(p, AdminOnly...))
	})

	t.Run("empty role set is not an implicit grant", func(t *testing.T) {
		p := Principal{Authenticated: true}
		require.False(t, Allow(p, ParticipantOnly...))
	})
}

func TestHasRole(t *testing.T) {
	t.Parallel()

	p := Principal{Authenticated: true, Roles: []string{domain.RoleOrganizer}}
	require.True(t, p.HasRole(domain.RoleOrganizer))
	require.False(t, p.HasRole(domain.RoleAdmin))
	require.False(t, Principal{}.HasRole(domain.RoleAdmin))
}
