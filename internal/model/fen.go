package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

var fromNotnil = map[chess.PieceType]PieceType{
	chess.King:   King,
	chess.Queen:  Queen,
	chess.Rook:   Rook,
	chess.Bishop: Bishop,
	chess.Knight: Knight,
	chess.Pawn:   Pawn,
}

var fenLetters = map[PieceType]byte{
	King:   'k',
	Queen:  'q',
	Rook:   'r',
	Bishop: 'b',
	Knight: 'n',
	Pawn:   'p',
}

// ParseFEN loads a position. Placement and side to move are decoded by
// notnil/chess; the castling field is accepted and ignored. Halfmove and
// fullmove counters may be omitted.
func ParseFEN(s string) (*BoardState, error) {
	fields := strings.Fields(s)
	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	}
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: want 4 or 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	if err := checkPlacement(fields[0]); err != nil {
		return nil, err
	}
	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	pos := chess.NewGame(opt).Position()

	board := &BoardState{
		ToMove:   PlayerColorWhite,
		Captured: newCapturedPieces(),
		FullMove: 1,
	}
	if pos.Turn() == chess.Black {
		board.ToMove = PlayerColorBlack
	}

	for sq, p := range pos.Board().SquareMap() {
		at := Position{X: int(sq.File()), Y: 7 - int(sq.Rank())}
		piece := Piece{Type: fromNotnil[p.Type()], Color: PlayerColorWhite}
		if p.Color() == chess.Black {
			piece.Color = PlayerColorBlack
		}
		switch piece.Type {
		case King:
			board.setKingPosition(piece.Color, at)
		case Pawn:
			piece.HasMoved = at.Y != piece.Color.pawnStartRow()
		}
		board.set(at, piece)
	}

	if fields[3] != "-" {
		target, err := ParsePosition(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant %q", ErrInvalidFEN, fields[3])
		}
		if err := checkEnPassant(board, target); err != nil {
			return nil, err
		}
		board.EnPassantTarget = &target
	}

	if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
		board.FullMove = n
	}
	if IsKingInCheck(board, board.ToMove.Opponent()) {
		return nil, fmt.Errorf("%w: side not to move is in check", ErrInvalidFEN)
	}
	return board, nil
}

// checkPlacement rejects placements the board model cannot hold: anything
// other than one king per side, or a pawn on either back rank.
func checkPlacement(placement string) error {
	if n := strings.Count(placement, "K"); n != 1 {
		return fmt.Errorf("%w: %d white kings", ErrInvalidFEN, n)
	}
	if n := strings.Count(placement, "k"); n != 1 {
		return fmt.Errorf("%w: %d black kings", ErrInvalidFEN, n)
	}
	ranks := strings.Split(placement, "/")
	for _, rank := range []string{ranks[0], ranks[len(ranks)-1]} {
		if strings.ContainsAny(rank, "Pp") {
			return fmt.Errorf("%w: pawn on a back rank", ErrInvalidFEN)
		}
	}
	return nil
}

// checkEnPassant verifies target is the empty square behind a pawn of the
// side that just moved.
func checkEnPassant(b *BoardState, target Position) error {
	pusher := b.ToMove.Opponent()
	behind := Position{X: target.X, Y: target.Y + pusher.forward()}
	start := Position{X: target.X, Y: target.Y - pusher.forward()}
	pawn := b.at(behind)
	if start.Y != pusher.pawnStartRow() || !b.at(target).IsEmpty() || pawn.Type != Pawn || pawn.Color != pusher {
		return fmt.Errorf("%w: en passant square %s does not follow a double advance", ErrInvalidFEN, target)
	}
	return nil
}

// FEN renders the position. The castling field is always "-" and the
// halfmove clock is always 0.
func (b *BoardState) FEN() string {
	var sb strings.Builder
	for y := 0; y < 8; y++ {
		empty := 0
		for x := 0; x < 8; x++ {
			piece := b.Squares[y][x]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			letter := fenLetters[piece.Type]
			if piece.Color == PlayerColorWhite {
				letter -= 'a' - 'A'
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if y < 7 {
			sb.WriteByte('/')
		}
	}

	turn := "w"
	if b.ToMove == PlayerColorBlack {
		turn = "b"
	}
	ep := "-"
	if b.EnPassantTarget != nil {
		ep = b.EnPassantTarget.String()
	}
	fullMove := b.FullMove
	if fullMove < 1 {
		fullMove = 1
	}
	return fmt.Sprintf("%s %s - %s 0 %d", sb.String(), turn, ep, fullMove)
}
