package configs

import (
	"errors"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// FiberConfig uses sonic with sorted map keys for JSON and renders every
// unhandled error as {"error": message}.
func FiberConfig() fiber.Config {
	return fiber.Config{
		AppName:     "aidea-server",
		JSONEncoder: sonic.ConfigStd.Marshal,
		JSONDecoder: sonic.ConfigStd.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
				message = fe.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	}
}
