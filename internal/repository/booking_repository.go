package repository

import (
	"context"
	"database/sql"
	"strings"

	"activitybooking/internal/model"
)

// BookingRepo provides CRUD operations for bookings. Every query is
// scoped by the owning user id so one user can never observe or
// mutate another user's bookings. The uniqueness invariant over the
// (user, event) pair lives in the schema as a unique key, which
// makes the check-then-insert sequence safe under concurrent
// creation: the losing insert fails with a duplicate-key error and
// is mapped to ErrBookingExists.
type BookingRepo struct{ DB *sql.DB }

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingJoinColumns = `b.id, e.id, e.title, e.description, e.location, e.event_time, e.created_at`

// ListByUser returns all of the user's bookings joined with their
// events, in storage order.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.BookingWithEvent, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookingJoinColumns+" FROM bookings b JOIN events e ON e.id=b.event_id WHERE b.user_id=?",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.BookingWithEvent, 0)
	for rows.Next() {
		var bw model.BookingWithEvent
		if err := rows.Scan(&bw.BookingID, &bw.Event.ID, &bw.Event.Title, &bw.Event.Description,
			&bw.Event.Location, &bw.Event.EventTime, &bw.Event.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, bw)
	}
	return out, rows.Err()
}

// GetByUserAndEvent returns the single booking for the (user, event)
// pair joined with its event, or ErrBookingNotFound.
func (r *BookingRepo) GetByUserAndEvent(ctx context.Context, userID, eventID uint64) (model.BookingWithEvent, error) {
	var bw model.BookingWithEvent
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+bookingJoinColumns+" FROM bookings b JOIN events e ON e.id=b.event_id WHERE b.user_id=? AND b.event_id=? LIMIT 1",
		userID, eventID).Scan(&bw.BookingID, &bw.Event.ID, &bw.Event.Title, &bw.Event.Description,
		&bw.Event.Location, &bw.Event.EventTime, &bw.Event.CreatedAt)
	if err == sql.ErrNoRows {
		return model.BookingWithEvent{}, ErrBookingNotFound
	}
	return bw, err
}

// Create inserts a booking for the pair and returns its id. A
// duplicate pair maps to ErrBookingExists; a nonexistent event id
// fails the foreign key and maps to ErrEventNotFound.
func (r *BookingRepo) Create(ctx context.Context, userID, eventID uint64) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookings (user_id, event_id) VALUES (?,?)",
		userID, eventID)
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			return 0, ErrBookingExists
		}
		// 1452: foreign key constraint fails (unknown event id).
		if strings.Contains(msg, "1452") {
			return 0, ErrEventNotFound
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// IDByUserAndEvent returns just the booking id for the pair, or
// ErrBookingNotFound.
func (r *BookingRepo) IDByUserAndEvent(ctx context.Context, userID, eventID uint64) (uint64, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM bookings WHERE user_id=? AND event_id=? LIMIT 1",
		userID, eventID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrBookingNotFound
	}
	return id, err
}

// Delete removes the booking for the pair and returns the freed id,
// or ErrBookingNotFound when no booking exists.
func (r *BookingRepo) Delete(ctx context.Context, userID, eventID uint64) (uint64, error) {
	id, err := r.IDByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM bookings WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		// Lost a race with another delete of the same booking.
		return 0, ErrBookingNotFound
	}
	return id, nil
}
