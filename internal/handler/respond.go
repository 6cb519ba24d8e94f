package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// envelope is the uniform response shape for every /api endpoint:
// exactly one of Data and Error is set, Msg is a short human
// readable summary on success and null on failure. Error is either
// a string or a list of field issues.
type envelope struct {
	Msg   any `json:"msg"`
	Data  any `json:"data"`
	Error any `json:"error"`
}

// respond writes a success envelope.
func respond(c echo.Context, status int, msg string, data any) error {
	return c.JSON(status, envelope{Msg: msg, Data: data, Error: nil})
}

// respondError writes a failure envelope. errVal is a string or a
// []validate.Issue.
func respondError(c echo.Context, status int, errVal any) error {
	return c.JSON(status, envelope{Msg: nil, Data: nil, Error: errVal})
}

// respondInternal hides the cause behind the fixed internal error
// string; the cause itself belongs in the log, not the response.
func respondInternal(c echo.Context) error {
	return respondError(c, http.StatusInternalServerError, "Internal Server Error")
}
