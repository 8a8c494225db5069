package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(opts GameOptions) (model.GameState, error) {
	gameID := uuid.New().String()

	game, err := gs.gameManager.CreateGame(gameID, opts)
	if err != nil {
		return model.GameState{}, fmt.Errorf("failed to create game: %w", err)
	}
	return game.GetState(), nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// CheckGame returns ErrGameNotFound when no game has gameID.
func (gs *GameService) CheckGame(gameID string) error {
	_, err := gs.gameManager.GetGame(gameID)
	return err
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) ResetGame(gameID string, mode model.Mode, humanColor model.PlayerColor) (model.GameState, error) {
	return gs.gameManager.ResetGame(gameID, mode, humanColor)
}

func (gs *GameService) HandleMove(gameID string, move model.WSMove) (model.GameState, error) {
	resolved, err := move.Resolve()
	if err != nil {
		return model.GameState{}, err
	}
	return gs.gameManager.MakeMove(gameID, resolved)
}

func (gs *GameService) LegalMoves(gameID string, square string) ([]model.SimpleMove, error) {
	from, err := model.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	return gs.gameManager.LegalMoves(gameID, from)
}

func (gs *GameService) Classify(gameID string, color model.PlayerColor) (model.Status, error) {
	return gs.gameManager.Classify(gameID, color)
}

func (gs *GameService) SuggestMove(gameID string) (model.SimpleMove, bool, error) {
	return gs.gameManager.SuggestMove(gameID)
}

func (gs *GameService) RegisterConnection(gameID, connID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, connID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, connID string) {
	gs.gameManager.UnregisterConnection(gameID, connID)
}
