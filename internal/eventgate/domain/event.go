package domain

import "time"

type Event struct {
	ID          string
	Name        string
	Description string
	Location    string
	Date        time.Time // calendar date of the event (time component zeroed)
	StartTime   *string   // "15:04" wall-clock, nullable
	EndTime     *string
	CategoryID  string // empty when the category was deleted (detach on delete)
	CreatedBy   string // empty when the creator was deleted
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventFilter narrows event listings. Zero values mean "no constraint".
type EventFilter struct {
	Query      string // substring match on name or location
	CategoryID string
	From       time.Time
	To         time.Time
}

// DashboardStats are the organizer dashboard counters.
type DashboardStats struct {
	TotalEvents       int
	TotalParticipants int
	UpcomingEvents    int
	PastEvents        int
	TodayEvents       []Event
}
