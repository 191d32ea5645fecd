package store

import (
	"context"
	"errors"
	"time"

	"github.com/openvenue/eventgate/internal/eventgate/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and testable, and make
// it obvious where transactions begin.
type Store interface {
	Users() Users
	Roles() Roles
	Events() Events
	Categories() Categories

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and rolling
	// back on error. This is the recommended way to run multi-step mutations.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used for activation resend.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists on a username or email collision.
	CreateUser(ctx context.Context, u domain.User) error

	// ActivateUser flips active 0->1 and reports whether this call performed
	// the flip. A second activation observes false, which keeps the
	// verify-then-flip step race safe without application-level locking.
	ActivateUser(ctx context.Context, userID string) (bool, error)

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser cascades role membership and RSVP rows and nulls
	// events.created_by (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// ListUsers returns all users ordered by creation date (newest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// GetUserRoles returns the roles the user is a member of.
	GetUserRoles(ctx context.Context, userID string) ([]domain.Role, error)

	// SetUserRoles replaces the user's entire role membership set. Call it
	// inside a transaction when the clear-then-assign must be atomic.
	SetUserRoles(ctx context.Context, userID string, roleIDs []string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)

	// DeleteInactiveCreatedBefore removes unactivated accounts created before
	// the cutoff (housekeeping). Returns the number of rows removed.
	DeleteInactiveCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Roles interface {
	// GetRoleByName fetches a role by its name (for bootstrap and signup).
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns all roles in the system.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts a new role (id is ULID).
	CreateRole(ctx context.Context, r domain.Role) error
}

type Events interface {
	// GetEventByID returns an event by id.
	GetEventByID(ctx context.Context, id string) (domain.Event, error)

	// ListEvents returns events matching the filter, newest date first.
	ListEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error)

	// CreateEvent inserts a new event.
	CreateEvent(ctx context.Context, e domain.Event) error

	// UpdateEvent rewrites the mutable fields and bumps updated_at.
	UpdateEvent(ctx context.Context, e domain.Event) error

	// DeleteEvent removes an event; its RSVP rows cascade.
	DeleteEvent(ctx context.Context, eventID string) error

	// AddRSVP inserts the (event, user) membership row if absent and reports
	// whether the insertion happened. The check and insert are a single
	// statement, so concurrent duplicate registrations cannot interleave.
	AddRSVP(ctx context.Context, eventID, userID string) (bool, error)

	// RemoveRSVP deletes the membership row and reports whether it existed.
	RemoveRSVP(ctx context.Context, eventID, userID string) (bool, error)

	// ListRSVPUsers returns the users registered for an event.
	ListRSVPUsers(ctx context.Context, eventID string) ([]domain.User, error)

	// CountRSVPs returns the total number of RSVP rows across all events.
	CountRSVPs(ctx context.Context) (int, error)

	// DashboardStats computes the organizer dashboard counters relative to
	// the given date.
	DashboardStats(ctx context.Context, today time.Time) (domain.DashboardStats, error)
}

type Categories interface {
	// GetCategoryByID fetches a category by its ID.
	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)

	// ListAll returns all categories ordered by name.
	ListAll(ctx context.Context) ([]domain.Category, error)

	// CreateCategory inserts a new category. Names are unique.
	CreateCategory(ctx context.Context, c domain.Category) error

	// UpdateCategory rewrites name and description.
	UpdateCategory(ctx context.Context, c domain.Category) error

	// DeleteCategory removes a category; events referencing it are detached.
	DeleteCategory(ctx context.Context, categoryID string) error
}
