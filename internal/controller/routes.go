package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

// NewApp wires middleware and routes for the game API.
func NewApp(gameService *service.GameService, allowOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "chessrules",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Set up WebSocket routes
	app.Get("/ws/game/:gameId",
		middleware.LoadGame(gameService),
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		}))

	// Set up REST routes
	api := app.Group("/api")
	api.Post("/game", gameController.CreateGame)

	// Game routes
	loadGame := middleware.LoadGame(gameService)
	gameRoutes := api.Group("/game")
	gameRoutes.Get("/:gameId", loadGame, gameController.GetGameState)
	gameRoutes.Delete("/:gameId", loadGame, gameController.DeleteGame)
	gameRoutes.Post("/:gameId/reset", loadGame, gameController.ResetGame)
	gameRoutes.Get("/:gameId/moves", loadGame, gameController.LegalMoves)
	gameRoutes.Post("/:gameId/move", loadGame, gameController.MakeMove)
	gameRoutes.Get("/:gameId/status", loadGame, gameController.GetStatus)
	gameRoutes.Get("/:gameId/suggest", loadGame, gameController.SuggestMove)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
