// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a booking is successfully created.
// It contains enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID uint64 `json:"booking_id"`
	UserID    uint64 `json:"user_id"`
	EventID   uint64 `json:"event_id"`
	CreatedAt string `json:"created_at"`
}

// BookingCancelledEvent is published when a booking is deleted.
type BookingCancelledEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	EventID     uint64 `json:"event_id"`
	CancelledAt string `json:"cancelled_at"`
}
