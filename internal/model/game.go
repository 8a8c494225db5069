package model

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// The connections watching a specific game
type GameConnections struct {
	connections map[string]Conn // connection id -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Game owns the single live board of one session. Every rule query and
// mutation goes through it under mu.
type Game struct {
	ID          string
	Name        string
	mu          sync.Mutex
	board       *BoardState
	players     ClientPlayer
	history     []Ply
	lastMove    *SimpleMove
	rng         *rand.Rand
	connections *GameConnections
}

type GameState struct {
	ID          string       `json:"gameId"`
	Name        string       `json:"name"`
	Board       *BoardState  `json:"boardState"`
	Status      Status       `json:"status"`
	Players     ClientPlayer `json:"players"`
	MoveHistory []Ply        `json:"moveHistory"`
	LastMove    *SimpleMove  `json:"lastMove"`
	FEN         string       `json:"fen"`
}

func NewGame(id, name string, rng *rand.Rand) *Game {
	return &Game{
		ID:          id,
		Name:        name,
		board:       NewBoard(),
		players:     ClientPlayer{Mode: ModeHuman, HumanColor: PlayerColorWhite},
		history:     make([]Ply, 0),
		rng:         rng,
		connections: NewGameConnections(),
	}
}

// Reset puts the standard starting position on the board. When the automated
// side moves first its move is played before Reset returns.
func (g *Game) Reset(mode Mode, humanColor PlayerColor) *BoardState {
	return g.Load(NewBoard(), mode, humanColor)
}

// Load replaces the board with b, which the game takes ownership of.
func (g *Game) Load(b *BoardState, mode Mode, humanColor PlayerColor) *BoardState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.board = b
	g.players = ClientPlayer{Mode: mode, HumanColor: humanColor}
	g.history = make([]Ply, 0)
	g.lastMove = nil
	log.Debugf("game %s reset: mode=%s human=%s", g.ID, mode, humanColor)

	if g.automatedToMove() {
		g.playAutomatedMove()
	}
	return g.board.Clone()
}

func (g *Game) LegalMoves(from Position) []SimpleMove {
	g.mu.Lock()
	defer g.mu.Unlock()

	return LegalMoves(g.board, from)
}

func (g *Game) ClassifyPosition(color PlayerColor) Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ClassifyPosition(g.board, color)
}

// SuggestMove runs the selector for the side to move without playing it.
func (g *Game) SuggestMove() (SimpleMove, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return SelectAutomatedMove(g.board, g.board.ToMove, g.rng)
}

// ApplyMove plays a caller's move for the side to move. Unlike
// BoardState.Execute it checks the move against the legal list, since it
// takes input from clients.
func (g *Game) ApplyMove(move SimpleMove) (Ply, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !boundaryCheck(move.From) || !boundaryCheck(move.To) {
		return Ply{}, fmt.Errorf("invalid move, out of bounds: %w", ErrInvalidSquare)
	}
	piece, ok := g.board.PieceAt(move.From)
	if !ok {
		return Ply{}, ErrNoPiece
	}
	if piece.Color != g.board.ToMove {
		return Ply{}, ErrNotYourTurn
	}
	if g.players.Mode == ModeComputer && g.board.ToMove != g.players.HumanColor {
		return Ply{}, ErrComputerTurn
	}
	if ClassifyPosition(g.board, g.board.ToMove).IsTerminal() {
		return Ply{}, ErrGameOver
	}

	for _, legalMove := range LegalMoves(g.board, move.From) {
		if legalMove.From == move.From && legalMove.To == move.To {
			return g.apply(legalMove), nil
		}
	}
	return Ply{}, fmt.Errorf("%s to %s: %w", move.From, move.To, ErrIllegalMove)
}

// PlayAutomatedMove plays the selector's move when the selector owns the side
// to move. ok is false when the move is not due, so a stale reply never moves
// the human's pieces.
func (g *Game) PlayAutomatedMove() (Ply, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.automatedToMove() {
		return Ply{}, false
	}
	return g.playAutomatedMove()
}

func (g *Game) playAutomatedMove() (Ply, bool) {
	move, ok := SelectAutomatedMove(g.board, g.board.ToMove, g.rng)
	if !ok {
		log.Debugf("game %s: no move available for %s", g.ID, g.board.ToMove)
		return Ply{}, false
	}
	return g.apply(move), true
}

func (g *Game) apply(move SimpleMove) Ply {
	ply := g.board.Play(move)
	g.history = append(g.history, ply)
	g.lastMove = &SimpleMove{From: move.From, To: move.To, Promotion: move.Promotion}
	log.Debugf("game %s: %s %s %s-%s", g.ID, ply.Color, ply.Piece, ply.From, ply.To)
	return ply
}

// AutomatedToMove reports whether the selector owns the side to move and
// still has a move to make.
func (g *Game) AutomatedToMove() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.automatedToMove()
}

func (g *Game) automatedToMove() bool {
	if g.players.Mode != ModeComputer || g.board.ToMove == g.players.HumanColor {
		return false
	}
	return !HasNoLegalMoves(g.board, g.board.ToMove)
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.getState()
}

func (g *Game) getState() GameState {
	var lastMove *SimpleMove
	if g.lastMove != nil {
		m := *g.lastMove
		lastMove = &m
	}
	return GameState{
		ID:          g.ID,
		Name:        g.Name,
		Board:       g.board.Clone(),
		Status:      ClassifyPosition(g.board, g.board.ToMove),
		Players:     g.players,
		MoveHistory: append(make([]Ply, 0, len(g.history)), g.history...),
		LastMove:    lastMove,
		FEN:         g.board.FEN(),
	}
}

func (g *Game) RegisterConnection(connID string, conn Conn) {
	g.connections.mu.Lock()
	if old, exists := g.connections.connections[connID]; exists && old != conn {
		old.Close()
	}
	g.connections.connections[connID] = conn
	g.connections.mu.Unlock()
	log.Debugf("registered connection %s for game %s", connID, g.ID)
}

func (g *Game) UnregisterConnection(connID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[connID]; exists {
		delete(g.connections.connections, connID)
		log.Debugf("unregistered connection %s for game %s", connID, g.ID)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// BroadcastState sends a snapshot to every watcher. Connections that fail to
// take the write are dropped.
func (g *Game) BroadcastState() {
	state := g.GetState()
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorf("failed to marshal state for game %s: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]Conn, len(g.connections.connections))
	for connID, conn := range g.connections.connections {
		active[connID] = conn
	}
	g.connections.mu.RUnlock()

	for connID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("failed to send state to %s: %v", connID, err)
			g.UnregisterConnection(connID)
		}
	}
}

// CloseConnections closes every watcher, used when the game is deleted.
func (g *Game) CloseConnections() {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for connID, conn := range g.connections.connections {
		conn.Close()
		delete(g.connections.connections, connID)
	}
}
