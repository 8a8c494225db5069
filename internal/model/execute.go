package model

// Execute applies m to the board and returns a record of what happened. It
// does not validate m and does not change ToMove; moves must come from
// LegalMoves.
func (b *BoardState) Execute(m SimpleMove) Ply {
	piece := b.at(m.From)
	ply := Ply{Color: piece.Color, Piece: piece.Type, From: m.From, To: m.To}
	if piece.IsEmpty() {
		return ply
	}
	loser := piece.Color.Opponent()

	// standard capture
	if target := b.at(m.To); !target.IsEmpty() && target.Color == loser {
		b.Captured.record(loser, target.Type)
		ply.CapturedPiece = target.Type
	}

	// en passant removes the pawn that sits behind the target square
	if piece.Type == Pawn && b.EnPassantTarget != nil && *b.EnPassantTarget == m.To {
		behind := Position{X: m.To.X, Y: m.To.Y - piece.Color.forward()}
		if victim := b.at(behind); !victim.IsEmpty() && victim.Color == loser {
			b.Captured.record(loser, victim.Type)
			b.set(behind, Piece{})
			ply.CapturedPiece = victim.Type
			ply.EnPassant = true
		}
	}

	if piece.Type == Pawn && abs(m.To.Y-m.From.Y) == 2 {
		b.EnPassantTarget = &Position{X: m.From.X, Y: (m.From.Y + m.To.Y) / 2}
	} else {
		b.EnPassantTarget = nil
	}

	piece.HasMoved = true
	b.set(m.From, Piece{})

	if piece.Type == King {
		b.setKingPosition(piece.Color, m.To)
	}

	if piece.Type == Pawn && m.To.Y == piece.Color.promotionRow() {
		piece.Type = Queen
		ply.Promotion = Queen
	}
	b.set(m.To, piece)
	return ply
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
