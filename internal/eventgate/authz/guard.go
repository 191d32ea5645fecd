// Package authz implements the role guard: a pure predicate over a
// principal's role membership. It performs no store access so call sites can
// inject membership as a plain value and the guard stays trivially testable.
package authz

import "github.com/openvenue/eventgate/internal/eventgate/domain"

// Principal is the authorization view of a user, derived from session claims.
// An anonymous request carries the zero Principal (Authenticated == false).
type Principal struct {
	ID            string
	Username      string
	Authenticated bool
	Superuser     bool
	Roles         []string
}

// Anonymous is the principal attached to unauthenticated requests.
var Anonymous = Principal{}

// HasRole reports whether the principal holds the named role.
func (p Principal) HasRole(name string) bool {
	for _, r := range p.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Allow reports whether the principal may invoke an operation gated on any of
// the required roles. Unauthenticated principals always fail regardless of
// the role arguments. A superuser passes every check; the flag must be set
// explicitly on the account and is never implied by an empty role set.
func Allow(p Principal, required ...string) bool {
	if !p.Authenticated {
		return false
	}
	if p.Superuser {
		return true
	}
	for _, want := range required {
		if p.HasRole(want) {
			return true
		}
	}
	return false
}

// Named guards for the fixed role sets used across the service. The manager
// set mirrors the event/category management surface, which both organizers
// and admins may use.
var (
	AdminOnly       = []string{domain.RoleAdmin}
	OrganizerOnly   = []string{domain.RoleOrganizer}
	ParticipantOnly = []string{domain.RoleParticipant}
	ManagerOnly     = []string{domain.RoleOrganizer, domain.RoleAdmin}
)
