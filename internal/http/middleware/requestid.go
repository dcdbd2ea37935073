package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id across service boundaries, so a
	// cascade that fans out over HTTP keeps one id end to end.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is where the id lives in Fiber's locals; the logger
	// and the error envelope read it from there.
	RequestIDLocalKey = "request_id"
)

// RequestID tags every request with an id: the caller's X-Request-ID when
// present, otherwise a fresh UUID. The id is stored in locals and echoed back
// on the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
