// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gofiber/fiber/v2/log"
)

var ErrGameNotFound = errors.New("game not found")

// GameOptions configure a new game. An empty FEN means the standard start.
type GameOptions struct {
	Mode       model.Mode
	HumanColor model.PlayerColor
	FEN        string
}

type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex

	// computerDelay paces the automated reply after a human move.
	computerDelay time.Duration
	seed          int64
	created       int64
}

// NewGameManager builds a manager. A zero seed seeds each game's selector
// from the clock; a non-zero seed makes automated play reproducible.
func NewGameManager(computerDelay time.Duration, seed int64) *GameManager {
	return &GameManager{
		games:         make(map[string]*model.Game),
		computerDelay: computerDelay,
		seed:          seed,
	}
}

func (gm *GameManager) newRand() *rand.Rand {
	gm.created++
	if gm.seed != 0 {
		return rand.New(rand.NewSource(gm.seed + gm.created))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano() + gm.created))
}

func (gm *GameManager) CreateGame(gameID string, opts GameOptions) (*model.Game, error) {
	board := model.NewBoard()
	if opts.FEN != "" {
		var err error
		if board, err = model.ParseFEN(opts.FEN); err != nil {
			return nil, err
		}
	}
	if opts.Mode == "" {
		opts.Mode = model.ModeHuman
	}
	if opts.HumanColor == "" {
		opts.HumanColor = model.PlayerColorWhite
	}

	gm.mu.Lock()
	if _, exists := gm.games[gameID]; exists {
		gm.mu.Unlock()
		return nil, fmt.Errorf("game %s already exists", gameID)
	}
	game := model.NewGame(gameID, petname.Generate(2, "-"), gm.newRand())
	gm.games[gameID] = game
	gm.mu.Unlock()

	game.Load(board, opts.Mode, opts.HumanColor)
	log.Infof("created game %s (%s) mode=%s human=%s", game.ID, game.Name, opts.Mode, opts.HumanColor)
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%s: %w", gameID, ErrGameNotFound)
	}
	return game, nil
}

func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	game, exists := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()

	if !exists {
		return fmt.Errorf("%s: %w", gameID, ErrGameNotFound)
	}
	game.CloseConnections()
	log.Infof("deleted game %s", gameID)
	return nil
}

func (gm *GameManager) GameCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

func (gm *GameManager) ResetGame(gameID string, mode model.Mode, humanColor model.PlayerColor) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	game.Reset(mode, humanColor)
	game.BroadcastState()
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, move model.SimpleMove) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	if _, err := game.ApplyMove(move); err != nil {
		return model.GameState{}, err
	}
	game.BroadcastState()
	gm.scheduleAutomatedMove(game)
	return game.GetState(), nil
}

// scheduleAutomatedMove plays the computer's reply once the turn has passed
// to it. The move itself is synchronous; only its start is deferred.
func (gm *GameManager) scheduleAutomatedMove(game *model.Game) {
	if !game.AutomatedToMove() {
		return
	}
	reply := func() {
		// a no-op if the game was reset or already answered meanwhile
		if ply, ok := game.PlayAutomatedMove(); ok {
			log.Debugf("game %s: computer played %s-%s", game.ID, ply.From, ply.To)
			game.BroadcastState()
		}
	}
	if gm.computerDelay <= 0 {
		reply()
		return
	}
	time.AfterFunc(gm.computerDelay, reply)
}

func (gm *GameManager) LegalMoves(gameID string, from model.Position) ([]model.SimpleMove, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(from), nil
}

func (gm *GameManager) Classify(gameID string, color model.PlayerColor) (model.Status, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.ClassifyPosition(color), nil
}

// SuggestMove runs the automated selector for the side to move without playing it.
func (gm *GameManager) SuggestMove(gameID string) (model.SimpleMove, bool, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.SimpleMove{}, false, err
	}
	move, ok := game.SuggestMove()
	return move, ok, nil
}

func (gm *GameManager) RegisterConnection(gameID, connID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	game.RegisterConnection(connID, conn)
	game.BroadcastState()
	return nil
}

func (gm *GameManager) UnregisterConnection(gameID, connID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(connID)
}
