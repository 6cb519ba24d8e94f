// Package validate implements input validation for the API request
// shapes. Each request type carries a Validate method returning a
// list of field-level issues; an empty list means the input is
// acceptable. Handlers serialize the issue list directly into the
// error slot of the response envelope so clients learn exactly
// which fields were rejected.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Issue describes a single rejected field.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	emailRe       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	countryCodeRe = regexp.MustCompile(`^\+\d{1,3}$`)
	digitsRe      = regexp.MustCompile(`^\d+$`)
)

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	CountryCode string `json:"countryCode"`
	PhoneNo     string `json:"phoneNo"`
	Password    string `json:"password"`
}

// Validate normalizes the request in place and reports field issues.
func (r *SignupRequest) Validate() []Issue {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.CountryCode = strings.TrimSpace(r.CountryCode)
	r.PhoneNo = strings.TrimSpace(r.PhoneNo)

	var issues []Issue
	if r.Name == "" {
		issues = append(issues, Issue{Field: "name", Message: "Name is required"})
	}
	if !emailRe.MatchString(r.Email) {
		issues = append(issues, Issue{Field: "email", Message: "Invalid email address"})
	}
	if !countryCodeRe.MatchString(r.CountryCode) {
		issues = append(issues, Issue{Field: "countryCode", Message: "Invalid Country Code"})
	}
	if len(r.PhoneNo) < 10 || !digitsRe.MatchString(r.PhoneNo) {
		issues = append(issues, Issue{Field: "phoneNo", Message: "Invalid Phone Number Length, Should be 10 digits"})
	}
	if r.Password == "" {
		issues = append(issues, Issue{Field: "password", Message: "Password is required"})
	}
	return issues
}

// SigninRequest is the body of POST /api/auth/signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate normalizes the request in place and reports field issues.
func (r *SigninRequest) Validate() []Issue {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	var issues []Issue
	if !emailRe.MatchString(r.Email) {
		issues = append(issues, Issue{Field: "email", Message: "Invalid email address"})
	}
	if r.Password == "" {
		issues = append(issues, Issue{Field: "password", Message: "Password is required"})
	}
	return issues
}

// EventRequest is the body of POST and PUT /api/events. EventTime is
// accepted as an RFC 3339 string and parsed into UTC.
type EventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	EventTime   string `json:"eventTime"`
}

// Validate normalizes the request in place, parses the event time and
// reports field issues. The returned time is zero when eventTime was
// rejected. Whether the time lies in the future is the caller's
// check: it depends on "now", which is not this package's business.
func (r *EventRequest) Validate() (time.Time, []Issue) {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)

	var issues []Issue
	if r.Title == "" {
		issues = append(issues, Issue{Field: "title", Message: "Title is required"})
	}
	if r.Description == "" {
		issues = append(issues, Issue{Field: "description", Message: "Description is required"})
	}
	if r.Location == "" {
		issues = append(issues, Issue{Field: "location", Message: "Location is required"})
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(r.EventTime))
	if err != nil {
		issues = append(issues, Issue{Field: "eventTime", Message: "Invalid date"})
		return time.Time{}, issues
	}
	return t.UTC(), issues
}

// EventID parses the ?eventId= query parameter. A missing or
// non-numeric value is a validation issue, not a lookup failure.
func EventID(raw string) (uint64, []Issue) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, []Issue{{Field: "eventId", Message: "eventId is required"}}
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, []Issue{{Field: "eventId", Message: "Invalid eventId"}}
	}
	return id, nil
}
