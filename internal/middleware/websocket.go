package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It runs after LoadGame, so the game is known to exist, and tags the
// connection with an id of its own for registration.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// Store these IDs in locals so they're available after the WebSocket upgrade
		// This is important because the connection context is different from the upgrade context
		c.Locals("wsGameID", c.Params("gameId"))
		c.Locals("wsConnID", uuid.New().String())
		return c.Next()
	}
}
