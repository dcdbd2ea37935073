package handler

import "github.com/gofiber/fiber/v2"

// successPayload is the envelope every successful response uses.
type successPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(successPayload{
		Success: true,
		Message: message,
		Data:    data,
	})
}
