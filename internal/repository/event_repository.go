package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"activitybooking/internal/model"
)

// EventRepo provides CRUD operations for events. Content uniqueness
// over (title, description, location, event_time) is guaranteed by a
// composite unique key in the schema; duplicate inserts and updates
// surface as ErrEventExists. All timestamp fields are stored in UTC.
type EventRepo struct{ DB *sql.DB }

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventColumns = "id,title,description,location,event_time,created_at"

func scanEvent(row *sql.Row) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.EventTime, &e.CreatedAt)
	return e, err
}

// List returns all events in storage order.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.EventTime, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetByID fetches a single event. Returns ErrEventNotFound when the
// id does not exist.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Event{}, ErrEventNotFound
	}
	return e, err
}

// ExistsByContent reports whether an event with the exact content
// tuple exists. Used as a pre-check so callers can reject duplicates
// before attempting an insert; the unique key remains the atomic
// backstop under concurrency.
func (r *EventRepo) ExistsByContent(ctx context.Context, title, description, location string, eventTime time.Time) (bool, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM events WHERE title=? AND description=? AND location=? AND event_time=? LIMIT 1",
		title, description, location, eventTime).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts an event and returns the stored row. Duplicate
// content maps to ErrEventExists.
func (r *EventRepo) Create(ctx context.Context, title, description, location string, eventTime time.Time) (model.Event, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO events (title, description, location, event_time) VALUES (?,?,?,?)",
		title, description, location, eventTime)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Event{}, ErrEventExists
		}
		return model.Event{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Event{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update rewrites the content of the event addressed by id. Returns
// ErrEventNotFound when the id does not exist and ErrEventExists when
// the new tuple collides with another event.
func (r *EventRepo) Update(ctx context.Context, id uint64, title, description, location string, eventTime time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE events SET title=?, description=?, location=?, event_time=? WHERE id=?",
		title, description, location, eventTime, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEventExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Zero rows means either a missing id or an update with
		// identical values. Distinguish with an existence probe.
		var probe uint64
		err := r.DB.QueryRowContext(ctx, "SELECT id FROM events WHERE id=? LIMIT 1", id).Scan(&probe)
		if err == sql.ErrNoRows {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

// Delete removes the event addressed by id. Returns ErrEventNotFound
// when no row was deleted and ErrConflict when bookings still
// reference the event.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	if err != nil {
		// 1451: row is referenced by a foreign key (bookings).
		if strings.Contains(strings.ToLower(err.Error()), "1451") {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}
