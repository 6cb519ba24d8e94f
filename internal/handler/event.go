package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"activitybooking/internal/repository"
	"activitybooking/internal/validate"
)

// EventHandler serves the /api/events CRUD surface. All routes are
// behind JWT authentication; any authenticated user may create,
// update or delete any event. Addressing is by the ?eventId= query
// parameter throughout.
type EventHandler struct {
	Events *repository.EventRepo
}

// NewEventHandler constructs an EventHandler and panics if the
// repository is nil.
func NewEventHandler(events *repository.EventRepo) *EventHandler {
	if events == nil {
		panic("nil repository passed to NewEventHandler")
	}
	return &EventHandler{Events: events}
}

// List handles GET /api/events. With ?eventId= it returns the single
// event or 404; without it, every event in storage order.
func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if raw := c.QueryParam("eventId"); raw != "" {
		id, issues := validate.EventID(raw)
		if len(issues) > 0 {
			return respondError(c, http.StatusBadRequest, issues)
		}
		e, err := h.Events.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrEventNotFound) {
				return respondError(c, http.StatusNotFound, "Event Does Not Exist")
			}
			return respondInternal(c)
		}
		return respond(c, http.StatusOK, "Event Retrieved", toEventView(e))
	}

	events, err := h.Events.List(ctx)
	if err != nil {
		return respondInternal(c)
	}
	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, toEventView(e))
	}
	return respond(c, http.StatusOK, "Events Retrieved", views)
}

// Create handles POST /api/events. The event time must parse and lie
// in the future, and the content tuple must not already exist.
func (h *EventHandler) Create(c echo.Context) error {
	var req validate.EventRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid Data Received")
	}
	eventTime, issues := req.Validate()
	if len(issues) > 0 {
		return respondError(c, http.StatusBadRequest, issues)
	}
	if !eventTime.After(time.Now().UTC()) {
		return respondError(c, http.StatusBadRequest, "Event Time cannot be in the past")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	// Pre-check for a friendlier error; the unique key on the
	// content tuple still decides the concurrent case.
	exists, err := h.Events.ExistsByContent(ctx, req.Title, req.Description, req.Location, eventTime)
	if err != nil {
		return respondInternal(c)
	}
	if exists {
		return respondError(c, http.StatusBadRequest, "Event Already Exists")
	}

	e, err := h.Events.Create(ctx, req.Title, req.Description, req.Location, eventTime)
	if err != nil {
		if errors.Is(err, repository.ErrEventExists) {
			return respondError(c, http.StatusBadRequest, "Event Already Exists")
		}
		return respondInternal(c)
	}
	return respond(c, http.StatusCreated, "Event Created", toEventView(e))
}

// Update handles PUT /api/events?eventId=. It rewrites the event
// addressed by eventId with the new field values and fails with 404
// when that id does not exist.
func (h *EventHandler) Update(c echo.Context) error {
	id, issues := validate.EventID(c.QueryParam("eventId"))
	if len(issues) > 0 {
		return respondError(c, http.StatusBadRequest, issues)
	}
	var req validate.EventRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid Data Received")
	}
	eventTime, issues := req.Validate()
	if len(issues) > 0 {
		return respondError(c, http.StatusBadRequest, issues)
	}
	if !eventTime.After(time.Now().UTC()) {
		return respondError(c, http.StatusBadRequest, "Event Time cannot be in the past")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Events.Update(ctx, id, req.Title, req.Description, req.Location, eventTime); err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			return respondError(c, http.StatusNotFound, "Event Does Not Exist")
		case errors.Is(err, repository.ErrEventExists):
			return respondError(c, http.StatusBadRequest, "Event Already Exists")
		default:
			return respondInternal(c)
		}
	}
	return respond(c, http.StatusOK, "Event Updated", id)
}

// Delete handles DELETE /api/events?eventId=. Deleting an event that
// still has bookings is refused with 409.
func (h *EventHandler) Delete(c echo.Context) error {
	id, issues := validate.EventID(c.QueryParam("eventId"))
	if len(issues) > 0 {
		return respondError(c, http.StatusBadRequest, issues)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Events.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			return respondError(c, http.StatusNotFound, "Event Does Not Exist")
		case errors.Is(err, repository.ErrConflict):
			return respondError(c, http.StatusConflict, "Event Has Active Bookings")
		default:
			return respondInternal(c)
		}
	}
	return respond(c, http.StatusOK, "Event Deleted", id)
}
