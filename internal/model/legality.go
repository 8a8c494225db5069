package model

// LegalMoves returns the moves of the piece on from that leave its own king
// safe. It is empty when from is empty or holds a piece of the side not to move.
func LegalMoves(b *BoardState, from Position) []SimpleMove {
	piece, ok := b.PieceAt(from)
	if !ok || piece.Color != b.ToMove {
		return []SimpleMove{}
	}
	return legalMovesFor(b, from)
}

// legalMovesFor filters pseudo moves for whichever side owns from. Each
// candidate is played on a scratch copy with full executor bookkeeping, so en
// passant removals and king moves are simulated exactly.
func legalMovesFor(b *BoardState, from Position) []SimpleMove {
	piece, ok := b.PieceAt(from)
	if !ok {
		return []SimpleMove{}
	}
	legalMoves := []SimpleMove{}
	for _, move := range PseudoMoves(b, from) {
		scratch := b.Clone()
		scratch.Execute(move)
		if !IsKingInCheck(scratch, piece.Color) {
			legalMoves = append(legalMoves, move)
		}
	}
	return legalMoves
}

// AllLegalMoves collects the legal moves of every piece of color, in board order.
func AllLegalMoves(b *BoardState, color PlayerColor) []SimpleMove {
	legalMoves := []SimpleMove{}
	forEachPiece(b, color, func(from Position) bool {
		legalMoves = append(legalMoves, legalMovesFor(b, from)...)
		return true
	})
	return legalMoves
}

// forEachPiece visits the squares holding color's pieces until fn returns false.
func forEachPiece(b *BoardState, color PlayerColor, fn func(Position) bool) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if piece := b.Squares[y][x]; !piece.IsEmpty() && piece.Color == color {
				if !fn(Position{X: x, Y: y}) {
					return
				}
			}
		}
	}
}
