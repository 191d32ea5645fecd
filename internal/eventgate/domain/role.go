package domain

import "time"

// Builtin role names. These are seeded at startup and referenced by name
// throughout the authorization layer.
const (
	RoleAdmin       = "admin"
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
)

type Role struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BuiltinRoles returns the fixed role set the service operates with. IDs are
// assigned when the roles are provisioned.
func BuiltinRoles() []Role {
	return []Role{
		{Name: RoleAdmin, Description: "Full administrative access, including user and role management"},
		{Name: RoleOrganizer, Description: "Manages the event and category catalogue"},
		{Name: RoleParticipant, Description: "Registers for events"},
	}
}
