package eventsdk

import "time"

// SignupRequest creates a new account.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse confirms account creation. Activation state depends on
// server configuration.
type SignupResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Active   bool   `json:"active"`
	Message  string `json:"message"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int      `json:"expires_in"`
	UserID    string   `json:"user_id"`
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
}

// ActivateRequest redeems an activation token.
type ActivateRequest struct {
	UserID string `json:"uid"`
	Token  string `json:"token"`
}

// ResendActivationRequest requests a fresh activation email.
type ResendActivationRequest struct {
	Email string `json:"email"`
}

// MessageResponse is a generic confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProfileResponse describes the authenticated account.
type ProfileResponse struct {
	UserID    string   `json:"user_id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	Superuser bool     `json:"superuser"`
}

// EventRequest creates or replaces an event.
type EventRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
	Date        string  `json:"date"` // YYYY-MM-DD
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	CategoryID  string  `json:"category_id,omitempty"`
}

// EventResponse is the wire shape of an event.
type EventResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Date        string    `json:"date"`
	StartTime   *string   `json:"start_time,omitempty"`
	EndTime     *string   `json:"end_time,omitempty"`
	CategoryID  string    `json:"category_id,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventListResponse wraps a page of events.
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// RSVPResponse reports the outcome of a registration attempt.
type RSVPResponse struct {
	EventID    string `json:"event_id"`
	Registered bool   `json:"registered"`
	Message    string `json:"message"`
}

// AttendeeResponse is one registered user on an event.
type AttendeeResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AttendeeListResponse wraps an event's attendees.
type AttendeeListResponse struct {
	EventID   string             `json:"event_id"`
	Attendees []AttendeeResponse `json:"attendees"`
}

// CategoryRequest creates or renames a category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse is the wire shape of a category.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryListResponse wraps all categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// DashboardResponse carries the organizer dashboard counters plus the
// events happening today.
type DashboardResponse struct {
	TotalEvents       int             `json:"total_events"`
	TotalParticipants int             `json:"total_participants"`
	UpcomingEvents    int             `json:"upcoming_events"`
	PastEvents        int             `json:"past_events"`
	TodayEvents       []EventResponse `json:"today_events"`
}

// UserResponse is one account in the admin user list.
type UserResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	Superuser bool      `json:"superuser"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse wraps the admin user list.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// ChangeRoleRequest replaces a user's role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// RoleResponse is one role definition.
type RoleResponse struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RoleListResponse wraps the role catalogue.
type RoleListResponse struct {
	Roles []RoleResponse `json:"roles"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
