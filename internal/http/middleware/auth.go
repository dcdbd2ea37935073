package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"fms/internal/auth"
)

const (
	// CurrentUserLocalKey stores the verified *auth.Claims in context locals.
	CurrentUserLocalKey = "current_user"
	// BearerTokenLocalKey stores the raw bearer token so cross-service calls
	// can forward the caller's credential unchanged.
	BearerTokenLocalKey = "bearer_token"
)

// Authenticate verifies the Bearer token on every request and stores the
// claims plus the raw token in context locals. Missing or invalid credentials
// short-circuit with 401 via the global error handler.
func Authenticate(verifier *auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "access token missing or invalid")
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := verifier.Verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(CurrentUserLocalKey, claims)
		c.Locals(BearerTokenLocalKey, token)

		return c.Next()
	}
}

// CurrentUser extracts the verified claims stored by Authenticate.
func CurrentUser(c *fiber.Ctx) *auth.Claims {
	if claims, ok := c.Locals(CurrentUserLocalKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

// BearerToken extracts the raw token stored by Authenticate.
func BearerToken(c *fiber.Ctx) string {
	if token, ok := c.Locals(BearerTokenLocalKey).(string); ok {
		return token
	}
	return ""
}
