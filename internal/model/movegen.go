package model

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)
	kingDirs   = queenDirs
	knightDirs = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
)

var pieceDirs = map[PieceType][]Position{
	Rook:   rookDirs,
	Bishop: bishopDirs,
	Queen:  queenDirs,
	Knight: knightDirs,
	King:   kingDirs,
}

// PseudoMoves returns every move the occupant of from could make by geometry
// and capture rules alone. Whether the mover's own king is left attacked is
// not considered. An empty square yields no moves.
func PseudoMoves(b *BoardState, from Position) []SimpleMove {
	piece, ok := b.PieceAt(from)
	if !ok {
		return []SimpleMove{}
	}
	if piece.Type == Pawn {
		return pseudoPawnMoves(b, from, piece)
	}
	return pseudoPieceMoves(b, from, piece)
}

func pseudoPieceMoves(b *BoardState, from Position, piece Piece) []SimpleMove {
	moves := []SimpleMove{}
	slides := piece.Type.isSlider()
	for _, dir := range pieceDirs[piece.Type] {
		targetPos := Position{X: from.X + dir.X, Y: from.Y + dir.Y}
		for boundaryCheck(targetPos) {
			target := b.at(targetPos)
			if target.IsEmpty() {
				moves = append(moves, SimpleMove{From: from, To: targetPos})
			} else {
				if target.Color != piece.Color {
					moves = append(moves, SimpleMove{From: from, To: targetPos})
				}
				break
			}
			if !slides {
				break
			}
			targetPos = Position{X: targetPos.X + dir.X, Y: targetPos.Y + dir.Y}
		}
	}
	return moves
}

func pseudoPawnMoves(b *BoardState, from Position, piece Piece) []SimpleMove {
	pawnMoves := []SimpleMove{}
	dy := piece.Color.forward()
	add := func(to Position) {
		move := SimpleMove{From: from, To: to}
		if to.Y == piece.Color.promotionRow() {
			move.Promotion = Queen
		}
		pawnMoves = append(pawnMoves, move)
	}

	one := Position{X: from.X, Y: from.Y + dy}
	if boundaryCheck(one) && b.at(one).IsEmpty() {
		add(one)
		two := Position{X: from.X, Y: from.Y + 2*dy}
		if from.Y == piece.Color.pawnStartRow() && b.at(two).IsEmpty() {
			add(two)
		}
	}

	for _, dx := range []int{-1, 1} {
		diag := Position{X: from.X + dx, Y: from.Y + dy}
		if !boundaryCheck(diag) {
			continue
		}
		if target := b.at(diag); !target.IsEmpty() && target.Color != piece.Color {
			add(diag)
		} else if b.EnPassantTarget != nil && *b.EnPassantTarget == diag {
			add(diag)
		}
	}
	return pawnMoves
}
