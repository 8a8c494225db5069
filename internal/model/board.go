package model

import (
	"encoding/json"
	"fmt"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) isSlider() bool {
	return p == Rook || p == Bishop || p == Queen
}

// Piece is a single occupant of the board. The zero Piece marks an empty square.
type Piece struct {
	Type     PieceType   `json:"type"`
	Color    PlayerColor `json:"color"`
	HasMoved bool        `json:"hasMoved"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == ""
}

// Position is a board coordinate. Y is the row counted from Black's back rank,
// X the column counted from the a-file.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	if !boundaryCheck(p) {
		return "[invalid position]"
	}
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

// ParsePosition reads a square name such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Position{X: int(s[0] - 'a'), Y: 8 - int(s[1]-'0')}, nil
}

func boundaryCheck(position Position) bool {
	return position.X >= 0 && position.X < 8 && position.Y >= 0 && position.Y < 8
}

// CapturedPieces lists pieces taken off the board, keyed by the side that lost them.
type CapturedPieces struct {
	White []PieceType `json:"white"`
	Black []PieceType `json:"black"`
}

func (c *CapturedPieces) record(loser PlayerColor, t PieceType) {
	if loser == PlayerColorWhite {
		c.White = append(c.White, t)
	} else {
		c.Black = append(c.Black, t)
	}
}

// BoardState is the complete rule state of one game: placement, side to move,
// king locations, the en passant target and captured tallies.
type BoardState struct {
	Squares           [8][8]Piece
	ToMove            PlayerColor
	WhiteKingPosition Position
	BlackKingPosition Position
	EnPassantTarget   *Position
	Captured          CapturedPieces

	// FullMove counts full moves from 1 and increases after each Black move.
	FullMove int
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position with White to move.
func NewBoard() *BoardState {
	board := &BoardState{
		ToMove:   PlayerColorWhite,
		Captured: newCapturedPieces(),
		FullMove: 1,
	}
	for x := 0; x < 8; x++ {
		board.Squares[0][x] = Piece{Type: backRank[x], Color: PlayerColorBlack}
		board.Squares[1][x] = Piece{Type: Pawn, Color: PlayerColorBlack}
		board.Squares[6][x] = Piece{Type: Pawn, Color: PlayerColorWhite}
		board.Squares[7][x] = Piece{Type: backRank[x], Color: PlayerColorWhite}
	}
	board.BlackKingPosition = Position{X: 4, Y: 0}
	board.WhiteKingPosition = Position{X: 4, Y: 7}
	return board
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]PieceType, 0),
		Black: make([]PieceType, 0),
	}
}

// Clone returns an independent copy. The grid is an array of values, so only
// the pointer and slice fields need fresh storage.
func (b *BoardState) Clone() *BoardState {
	clone := *b
	if b.EnPassantTarget != nil {
		target := *b.EnPassantTarget
		clone.EnPassantTarget = &target
	}
	clone.Captured = CapturedPieces{
		White: append(make([]PieceType, 0, len(b.Captured.White)), b.Captured.White...),
		Black: append(make([]PieceType, 0, len(b.Captured.Black)), b.Captured.Black...),
	}
	return &clone
}

// PieceAt returns the occupant of p; ok is false for empty or off-board squares.
func (b *BoardState) PieceAt(p Position) (Piece, bool) {
	if !boundaryCheck(p) {
		return Piece{}, false
	}
	piece := b.Squares[p.Y][p.X]
	return piece, !piece.IsEmpty()
}

func (b *BoardState) at(p Position) Piece {
	return b.Squares[p.Y][p.X]
}

func (b *BoardState) set(p Position, piece Piece) {
	b.Squares[p.Y][p.X] = piece
}

// KingPosition returns the tracked king square of color.
func (b *BoardState) KingPosition(color PlayerColor) Position {
	if color == PlayerColorWhite {
		return b.WhiteKingPosition
	}
	return b.BlackKingPosition
}

func (b *BoardState) setKingPosition(color PlayerColor, p Position) {
	if color == PlayerColorWhite {
		b.WhiteKingPosition = p
	} else {
		b.BlackKingPosition = p
	}
}

func (b *BoardState) switchTurn() {
	if b.ToMove == PlayerColorBlack {
		b.FullMove++
	}
	b.ToMove = b.ToMove.Opponent()
}

// Play executes m and hands the turn to the other side.
func (b *BoardState) Play(m SimpleMove) Ply {
	ply := b.Execute(m)
	b.switchTurn()
	return ply
}

// Grid returns the placement as rows of nullable pieces, the shape clients render.
func (b *BoardState) Grid() [][]*Piece {
	grid := make([][]*Piece, 8)
	for y := 0; y < 8; y++ {
		grid[y] = make([]*Piece, 8)
		for x := 0; x < 8; x++ {
			if piece := b.Squares[y][x]; !piece.IsEmpty() {
				grid[y][x] = &piece
			}
		}
	}
	return grid
}

func (b *BoardState) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Board             [][]*Piece     `json:"board"`
		ToMove            PlayerColor    `json:"toMove"`
		WhiteKingPosition Position       `json:"whiteKingPosition"`
		BlackKingPosition Position       `json:"blackKingPosition"`
		EnPassantTarget   *Position      `json:"enPassantTarget"`
		Captured          CapturedPieces `json:"capturedPieces"`
		FullMove          int            `json:"fullMove"`
	}{
		Board:             b.Grid(),
		ToMove:            b.ToMove,
		WhiteKingPosition: b.WhiteKingPosition,
		BlackKingPosition: b.BlackKingPosition,
		EnPassantTarget:   b.EnPassantTarget,
		Captured:          b.Captured,
		FullMove:          b.FullMove,
	})
}
