package main

import (
	"os"

	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/controller"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	// Initialize services
	gameManager := service.NewGameManager(cfg.ComputerDelay, cfg.Seed)
	gameService := service.NewGameService(gameManager)

	app := controller.NewApp(gameService, cfg.AllowOrigins)

	log.Infof("listening on %s (computer delay %s)", cfg.Addr, cfg.ComputerDelay)
	log.Fatal(app.Listen(cfg.Addr))
}
