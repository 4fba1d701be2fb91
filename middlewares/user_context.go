package middleware

import "github.com/gofiber/fiber/v2"

const userIDKey = "userID"

// UserContext attaches the acting user's id to the request. There is no
// authentication: every request acts as userID.
func UserContext(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}
