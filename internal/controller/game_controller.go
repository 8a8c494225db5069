package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type gameRequest struct {
	Mode  string `json:"mode"`
	Color string `json:"color"`
	FEN   string `json:"fen"`
}

func (r gameRequest) parse() (model.Mode, model.PlayerColor, error) {
	mode, err := model.ParseMode(r.Mode)
	if err != nil {
		return "", "", err
	}
	color := model.PlayerColorWhite
	if r.Color != "" {
		if color, err = model.ParsePlayerColor(r.Color); err != nil {
			return "", "", err
		}
	}
	return mode, color, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return nil
}

// errorStatus maps rule and session errors onto HTTP codes.
func errorStatus(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidSquare),
		errors.Is(err, model.ErrInvalidOption),
		errors.Is(err, model.ErrInvalidFEN):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrComputerTurn),
		errors.Is(err, model.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func writeError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		msg = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req gameRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}
	mode, color, err := req.parse()
	if err != nil {
		return writeError(c, err)
	}

	state, err := gc.gameService.CreateGame(service.GameOptions{Mode: mode, HumanColor: color, FEN: req.FEN})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"gameId":  state.ID,
		"name":    state.Name,
		"state":   state,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	var req gameRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}
	mode, color, err := req.parse()
	if err != nil {
		return writeError(c, err)
	}

	gameState, err := gc.gameService.ResetGame(c.Params("gameId"), mode, color)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	square := c.Query("square")
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), square)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"square": square,
		"moves":  moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return writeError(c, fiber.NewError(fiber.StatusBadRequest, "invalid move body"))
	}

	gameState, err := gc.gameService.HandleMove(c.Params("gameId"), move)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(gameState)
}

// GetStatus classifies the position for ?color=, defaulting to the side to move.
func (gc *GameController) GetStatus(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return writeError(c, err)
	}

	color := gameState.Board.ToMove
	if q := c.Query("color"); q != "" {
		if color, err = model.ParsePlayerColor(q); err != nil {
			return writeError(c, err)
		}
	}
	status := gameState.Status
	if color != gameState.Board.ToMove {
		if status, err = gc.gameService.Classify(gameID, color); err != nil {
			return writeError(c, err)
		}
	}
	return c.JSON(fiber.Map{
		"color":  color,
		"status": status,
	})
}

func (gc *GameController) SuggestMove(c *fiber.Ctx) error {
	move, ok, err := gc.gameService.SuggestMove(c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		return c.JSON(fiber.Map{
			"available": false,
		})
	}
	return c.JSON(fiber.Map{
		"available": true,
		"move":      move,
	})
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
