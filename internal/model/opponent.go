package model

import "math/rand"

// SelectAutomatedMove picks a move for color: a random capture when one
// exists, otherwise a random quiet move. ok is false when color cannot move.
func SelectAutomatedMove(b *BoardState, color PlayerColor, rng *rand.Rand) (SimpleMove, bool) {
	captures := []SimpleMove{}
	quiet := []SimpleMove{}
	for _, move := range AllLegalMoves(b, color) {
		if target, ok := b.PieceAt(move.To); ok && target.Color == color.Opponent() {
			captures = append(captures, move)
		} else {
			quiet = append(quiet, move)
		}
	}

	switch {
	case len(captures) > 0:
		return captures[rng.Intn(len(captures))], true
	case len(quiet) > 0:
		return quiet[rng.Intn(len(quiet))], true
	default:
		return SimpleMove{}, false
	}
}
