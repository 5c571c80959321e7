package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It also checks that necessary game and player information is present before allowing the upgrade.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		// Set by EnsurePlayerID.
		playerID, ok := c.Locals("playerID").(string)
		if !ok || playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		// The connection handler cannot read route params after the upgrade,
		// so carry both IDs in locals.
		c.Locals("wsGameID", utils.CopyString(gameID))
		c.Locals("wsPlayerID", playerID)

		return c.Next()
	}
}
