package middleware

import "github.com/gofiber/fiber/v2"

// Noop passes the request straight through. Useful where a route
// registration expects a middleware slot that a deployment leaves empty.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
