package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// EnsurePlayerID stores the caller's player ID in Locals("playerID"). The ID
// comes from the X-Player-ID header, falling back to the playerId query
// parameter, which browsers can set on websocket URLs.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		// Header and query values alias the request buffer, which fasthttp
		// reuses. The ID outlives the request as a seat and connection key.
		c.Locals("playerID", utils.CopyString(playerID))
		return c.Next()
	}
}
