package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"activitybooking/internal/queue"
	"activitybooking/internal/repository"
	"activitybooking/internal/validate"
)

// Publisher emits booking lifecycle messages to the broker. Both
// calls are best effort: a broker outage never fails the request.
type Publisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
	PublishBookingCancelled(ctx context.Context, ev queue.BookingCancelledEvent) error
}

// BookingHandler serves the /api/bookings surface, the core of the
// system. Every operation is scoped to the authenticated user: the
// user id comes from the verified token, so one user can neither
// read nor mutate another user's bookings regardless of the query
// parameters sent.
type BookingHandler struct {
	Bookings  *repository.BookingRepo
	Publisher Publisher // may be nil when no broker is configured
}

// NewBookingHandler constructs a BookingHandler and panics if the
// repository is nil.
func NewBookingHandler(bookings *repository.BookingRepo, pub Publisher) *BookingHandler {
	if bookings == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Publisher: pub}
}

// List handles GET /api/bookings. With ?eventId= it returns the
// single booking for the (user, event) pair joined with its event,
// or 404; without it, all of the caller's bookings.
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if raw := c.QueryParam("eventId"); raw != "" {
		eventID, issues := validate.EventID(raw)
		if len(issues) > 0 {
			return respondError(c, http.StatusBadRequest, issues)
		}
		bw, err := h.Bookings.GetByUserAndEvent(ctx, userID, eventID)
		if err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				return respondError(c, http.StatusNotFound, "Booking Does Not Exist")
			}
			return respondInternal(c)
		}
		return respond(c, http.StatusOK, "Bookings Retrieved", toBookingView(bw))
	}

	list, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return respondInternal(c)
	}
	views := make([]bookingView, 0, len(list))
	for _, bw := range list {
		views = append(views, toBookingView(bw))
	}
	return respond(c, http.StatusOK, "Bookings Retrieved", views)
}

// Create handles POST /api/bookings?eventId=. At most one booking
// may exist per (user, event) pair; the pre-check gives the common
// case a clean error and the unique key settles concurrent races,
// so N parallel creations for one pair yield exactly one success.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}
	eventID, issues := validate.EventID(c.QueryParam("eventId"))
	if len(issues) > 0 {
		return respondError(c, http.StatusBadRequest, issues)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Bookings.IDByUserAndEvent(ctx, userID, eventID); err == nil {
		return respondError(c, http.StatusBadRequest, "Booking Already Exists! Duplicate Booking Not Allowed")
	} else if !errors.Is(err, repository.ErrBookingNotFound) {
		return respondInternal(c)
	}

	id, err := h.Bookings.Create(ctx, userID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingExists):
			return respondError(c, http.StatusBadRequest, "Booking Already Exists! Duplicate Booking Not Allowed")
		case errors.Is(err, repository.ErrEventNotFound):
			return respondError(c, http.StatusNotFound, "Event Does Not Exist")
		default:
			return respondInternal(c)
		}
	}

	if h.Publisher != nil {
		ev := queue.BookingCreatedEvent{
			BookingID: id,
			UserID:    userID,
			EventID:   eventID,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Publisher.PublishBookingCreated(ctx, ev); err != nil {
			log.Printf("booking %d: publish created event failed: %v", id, err)
		}
	}

	return respond(c, http.StatusCreated, "Booking Created", id)
}

// Update handles PUT /api/bookings?eventId=. A booking has no
// mutable fields, so the operation verifies existence and returns
// the current booking id; changing the event of a booking is a
// delete followed by a create.
func (h *BookingHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}
	eventID, issues := validate.EventID(c.QueryParam("eventId"))
	if len(issues) > 0 {
		return respondError(c, http.StatusBadRequest, issues)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id, err := h.Bookings.IDByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return respondError(c, http.StatusNotFound, "Booking Does Not Exist")
		}
		return respondInternal(c)
	}
	return respond(c, http.StatusOK, "Booking Updated", id)
}

// Delete handles DELETE /api/bookings?eventId=. Deleting frees the
// pair, so a later create for the same (user, event) succeeds.
func (h *BookingHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}
	eventID, issues := validate.EventID(c.QueryParam("eventId"))
	if len(issues) > 0 {
		return respondError(c, http.StatusBadRequest, issues)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id, err := h.Bookings.Delete(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return respondError(c, http.StatusNotFound, "Booking Does Not Exist")
		}
		return respondInternal(c)
	}

	if h.Publisher != nil {
		ev := queue.BookingCancelledEvent{
			BookingID:   id,
			UserID:      userID,
			EventID:     eventID,
			CancelledAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Publisher.PublishBookingCancelled(ctx, ev); err != nil {
			log.Printf("booking %d: publish cancelled event failed: %v", id, err)
		}
	}

	return respond(c, http.StatusOK, "Booking Deleted", id)
}
