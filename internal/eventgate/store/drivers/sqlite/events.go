package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/openvenue/eventgate/internal/eventgate/domain"
)

type eventsRepo struct {
	db dbtx
}

const eventColumns = `id, name, description, location, date, start_time, end_time, category_id, created_by, created_at, updated_at`

func (r *eventsRepo) scanEvent(row interface{ Scan(...any) error }) (domain.Event, error) {
	var (
		e          domain.Event
		startTime  sql.NullString
		endTime    sql.NullString
		categoryID sql.NullString
		createdBy  sql.NullString
	)
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Location, &e.Date,
		&startTime, &endTime, &categoryID, &createdBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.Event{}, mapNotFound(err)
	}
	e.StartTime = mapNullStringPtr(startTime)
	e.EndTime = mapNullStringPtr(endTime)
	e.CategoryID = mapNullString(categoryID)
	e.CreatedBy = mapNullString(createdBy)
	return e, nil
}

func (r *eventsRepo) GetEventByID(ctx context.Context, id string) (domain.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	return r.scanEvent(row)
}

func (r *eventsRepo) ListEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	var args []any

	if f.Query != "" {
		query += ` AND (name LIKE ? OR location LIKE ?)`
		pattern := "%" + f.Query + "%"
		args = append(args, pattern, pattern)
	}
	if f.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if !f.From.IsZero() {
		query += ` AND date >= ?`
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		query += ` AND date <= ?`
		args = append(args, f.To.UTC())
	}
	query += ` ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventsRepo) CreateEvent(ctx context.Context, e domain.Event) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (id, name, description, location, date, start_time, end_time, category_id, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Description, e.Location, e.Date.UTC(),
		mapOptionalString(e.StartTime), mapOptionalString(e.EndTime),
		mapStringNull(e.CategoryID), mapStringNull(e.CreatedBy), now, now,
	)
	return mapConstraint(err)
}

func (r *eventsRepo) UpdateEvent(ctx context.Context, e domain.Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET name = ?, description = ?, location = ?, date = ?, start_time = ?, end_time = ?, category_id = ?, updated_at = ?
		WHERE id = ?`,
		e.Name, e.Description, e.Location, e.Date.UTC(),
		mapOptionalString(e.StartTime), mapOptionalString(e.EndTime),
		mapStringNull(e.CategoryID), time.Now().UTC(), e.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *eventsRepo) DeleteEvent(ctx context.Context, eventID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, eventID)
	return err
}

// AddRSVP is a single conditional insert. The composite primary key plus
// ON CONFLICT DO NOTHING make the check-then-insert atomic: under concurrent
// duplicate registrations exactly one caller observes an affected row.
func (r *eventsRepo) AddRSVP(ctx context.Context, eventID, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO event_rsvps (event_id, user_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (event_id, user_id) DO NOTHING`,
		eventID, userID, time.Now().UTC(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *eventsRepo) RemoveRSVP(ctx context.Context, eventID, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM event_rsvps WHERE event_id = ? AND user_id = ?`,
		eventID, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *eventsRepo) ListRSVPUsers(ctx context.Context, eventID string) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.email, u.password_hash, u.active, u.superuser, u.created_at, u.updated_at
		FROM users u
		JOIN event_rsvps er ON er.user_id = u.id
		WHERE er.event_id = ?
		ORDER BY er.created_at`,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Active, &u.Superuser, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *eventsRepo) CountRSVPs(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_rsvps`).Scan(&count)
	return count, err
}

func (r *eventsRepo) DashboardStats(ctx context.Context, today time.Time) (domain.DashboardStats, error) {
	var stats domain.DashboardStats

	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&stats.TotalEvents); err != nil {
		return domain.DashboardStats{}, err
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE date >= ?`, dayEnd).Scan(&stats.UpcomingEvents); err != nil {
		return domain.DashboardStats{}, err
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE date < ?`, dayStart).Scan(&stats.PastEvents); err != nil {
		return domain.DashboardStats{}, err
	}

	var err error
	stats.TotalParticipants, err = r.CountRSVPs(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events WHERE date >= ? AND date < ? ORDER BY date`,
		dayStart, dayEnd,
	)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		e, err := r.scanEvent(rows)
		if err != nil {
			return domain.DashboardStats{}, err
		}
		stats.TodayEvents = append(stats.TodayEvents, e)
	}
	return stats, rows.Err()
}
