package model

type Status string

const (
	StatusNormal    Status = "normal"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

func (s Status) IsTerminal() bool {
	return s == StatusCheckmate || s == StatusStalemate
}

// IsKingInCheck reports whether any enemy piece could move onto color's king
// square. Every square is scanned on each call.
func IsKingInCheck(b *BoardState, color PlayerColor) bool {
	kingPos := b.KingPosition(color)
	attacked := false
	forEachPiece(b, color.Opponent(), func(from Position) bool {
		for _, move := range PseudoMoves(b, from) {
			if move.To == kingPos {
				attacked = true
				return false
			}
		}
		return true
	})
	return attacked
}

// HasNoLegalMoves reports whether every piece of color is without a legal move.
func HasNoLegalMoves(b *BoardState, color PlayerColor) bool {
	none := true
	forEachPiece(b, color, func(from Position) bool {
		if len(legalMovesFor(b, from)) > 0 {
			none = false
			return false
		}
		return true
	})
	return none
}

// ClassifyPosition combines check and mobility for color. Callers classify the
// side about to move.
func ClassifyPosition(b *BoardState, color PlayerColor) Status {
	inCheck := IsKingInCheck(b, color)
	noMoves := HasNoLegalMoves(b, color)
	switch {
	case inCheck && noMoves:
		return StatusCheckmate
	case inCheck:
		return StatusCheck
	case noMoves:
		return StatusStalemate
	default:
		return StatusNormal
	}
}
