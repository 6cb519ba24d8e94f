// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrBookingExists indicates that the uniqueness invariant
// over a (user, event) pair would be violated, while ErrEventNotFound
// signals that a referenced event is absent.
package repository

import "errors"

// ErrEmailExists is returned when a signup would reuse an email
// address already present in the users table.
var ErrEmailExists = errors.New("email already exists")

// ErrPhoneExists is returned when a signup would reuse a phone
// number already present in the users table.
var ErrPhoneExists = errors.New("phone already exists")

// ErrEventExists is returned when an event with an identical
// (title, description, location, event time) tuple already exists.
// Handlers should translate this into an HTTP 400 response.
var ErrEventExists = errors.New("event already exists")

// ErrEventNotFound is returned when a lookup, update or delete
// addresses an event id that does not exist. Handlers should
// translate this into an HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrBookingExists is returned when a booking for the same
// (user, event) pair already exists. The unique key on the
// bookings table makes this check atomic: concurrent creations
// for the same pair surface as this error rather than as a
// second row.
var ErrBookingExists = errors.New("booking already exists")

// ErrConflict is returned when a delete cannot be performed because
// of dependent records, such as removing an event that still has
// bookings. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// ErrBookingNotFound is returned when no booking exists for the
// given (user, event) pair. Handlers should translate this into
// an HTTP 404 response.
var ErrBookingNotFound = errors.New("booking not found")
