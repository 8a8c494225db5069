package middleware

import (
	"errors"

	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

// LoadGame rejects requests whose :gameId names no game, and stores the id
// in locals as "gameID" for the handlers behind it.
func LoadGame(gameService *service.GameService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		if err := gameService.CheckGame(gameID); err != nil {
			if errors.Is(err, service.ErrGameNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return err
		}

		c.Locals("gameID", gameID)
		return c.Next()
	}
}
