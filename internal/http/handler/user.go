package handler

import (
	"github.com/gofiber/fiber/v2"

	"fms/internal/service"
)

// RegisterUser handles POST /users/register.
func RegisterUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		if in.Username == "" || in.Email == "" || in.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "username, email and password are required")
		}

		user, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusCreated, "User registered successfully", user)
	}
}

// LoginUser handles POST /users/login.
func LoginUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.LoginInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		if in.Email == "" || in.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "email and password are required")
		}

		result, err := svc.Login(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Login successful", result)
	}
}
