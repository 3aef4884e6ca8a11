// internal/errors/mapper.go
package errors

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Error is a client-facing error carrying the HTTP status the handler
// should answer with. Anything that is not an *Error is treated as an
// opaque server failure.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validation creates a 400 error. Use for bad input in the service layer.
func Validation(msg string) error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Unauthorized creates a 403 error: the caller is not allowed to perform
// the operation (e.g. messaging a user they haven't matched with).
func Unauthorized(msg string) error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

// Unauthenticated creates a 401 error for failed credential checks.
func Unauthenticated(msg string) error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// NotFound creates a 404 error.
func NotFound(msg string) error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Status converts repo/infra errors into HTTP status codes.
// Keeps the service layer clean by centralizing error mapping.
func Status(err error) int {
	var e *Error
	switch {
	case stderrors.As(err, &e):
		return e.Status

	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound

	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	case stderrors.Is(err, context.Canceled):
		return http.StatusRequestTimeout

	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for err. Store failures are
// reported opaquely; the real error belongs in the log, not the response.
func Message(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Message
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return "record not found"
	}
	return "internal server error"
}

// Respond writes the JSON error body used by every endpoint.
func Respond(c *gin.Context, err error) {
	c.JSON(Status(err), gin.H{"success": false, "message": Message(err)})
}
