package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error is a business error carrying the HTTP status it maps to and a
// machine-readable code for the error envelope. Services return these;
// handlers translate them without inspecting messages.
type Error struct {
	Status  int
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// NotFound indicates a missing resource or an ownership mismatch.
func NotFound(message string) *Error {
	return &Error{Status: fiber.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

// Conflict indicates a uniqueness violation (sibling name, title in folder).
func Conflict(message string) *Error {
	return &Error{Status: fiber.StatusConflict, Code: "CONFLICT", Message: message}
}

// BadRequest indicates malformed input, e.g. a missing required file.
func BadRequest(message string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Code: "BAD_REQUEST", Message: message}
}

// Unauthorized indicates a missing/invalid credential.
func Unauthorized(message string) *Error {
	return &Error{Status: fiber.StatusUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

// Internal wraps an unexpected failure (peer-service call, datastore error).
func Internal(message string, cause error) *Error {
	return &Error{Status: fiber.StatusInternalServerError, Code: "INTERNAL_ERROR", Message: message, cause: cause}
}

// From extracts an *Error from err, if any.
func From(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
