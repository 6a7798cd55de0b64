package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishing-house/internal/types"
)

// RequireJSON rejects non-empty request bodies that are not declared as
// application/json.
func RequireJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPatch, fiber.MethodPut:
		default:
			return c.Next()
		}
		if len(c.Body()) == 0 || c.Is("json") {
			return c.Next()
		}
		return types.BadRequest("request body must be %s", fiber.MIMEApplicationJSON)
	}
}
