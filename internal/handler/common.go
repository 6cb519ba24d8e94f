package handler

import (
	"errors"
	"strconv"
	"time"

	"activitybooking/internal/model"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every repository call made from a handler.
const dbTimeout = 5 * time.Second

// getUserID extracts the authenticated user id that the JWT
// middleware placed in the context. Every booking operation is
// scoped by this value; it never comes from the request itself.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// eventView is the JSON shape of an event in responses.
type eventView struct {
	EventID     uint64    `json:"eventId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	EventTime   time.Time `json:"eventTime"`
	CreatedOn   time.Time `json:"createdOn"`
}

func toEventView(e model.Event) eventView {
	return eventView{
		EventID:     e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		EventTime:   e.EventTime,
		CreatedOn:   e.CreatedAt,
	}
}

// bookingView is the denormalized booking shape: the booking
// identity with its event embedded.
type bookingView struct {
	BookingID uint64    `json:"bookingId"`
	Event     eventView `json:"event"`
}

func toBookingView(bw model.BookingWithEvent) bookingView {
	return bookingView{BookingID: bw.BookingID, Event: toEventView(bw.Event)}
}
