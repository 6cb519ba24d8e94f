package model

import "time"

// Booking is the join record associating one user with one event.
// At most one booking may exist per (user, event) pair; the schema
// enforces this with a unique key over (user_id, event_id) so the
// invariant holds even under concurrent creation.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who made the booking.
//  EventID   – event being booked.
//  CreatedAt – creation timestamp.
type Booking struct {
	ID        uint64    // bookings.id
	UserID    uint64    // bookings.user_id
	EventID   uint64    // bookings.event_id
	CreatedAt time.Time // bookings.created_at
}

// BookingWithEvent is the denormalized view returned when listing
// bookings: the booking identity together with the full event it
// refers to. It is produced by joining bookings against events in
// the repository layer.
type BookingWithEvent struct {
	BookingID uint64 // bookings.id
	Event     Event  // joined events row
}
