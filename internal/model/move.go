package model

// SimpleMove is a from/to pair. Promotion is Queen when a pawn reaches its
// last rank and empty otherwise; no other promotion piece is ever offered.
type SimpleMove struct {
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

// WSMove is a move as clients send it. Squares may be given by name ("e2")
// or by coordinate; names win when both are present.
type WSMove struct {
	From     Position `json:"from"`
	To       Position `json:"to"`
	FromName string   `json:"fromSquare,omitempty"`
	ToName   string   `json:"toSquare,omitempty"`
}

func (m WSMove) Resolve() (SimpleMove, error) {
	move := SimpleMove{From: m.From, To: m.To}
	if m.FromName != "" {
		from, err := ParsePosition(m.FromName)
		if err != nil {
			return SimpleMove{}, err
		}
		move.From = from
	}
	if m.ToName != "" {
		to, err := ParsePosition(m.ToName)
		if err != nil {
			return SimpleMove{}, err
		}
		move.To = to
	}
	if !boundaryCheck(move.From) || !boundaryCheck(move.To) {
		return SimpleMove{}, ErrInvalidSquare
	}
	return move, nil
}

// Ply records one executed half-move.
type Ply struct {
	Color         PlayerColor `json:"color"`
	Piece         PieceType   `json:"piece"`
	From          Position    `json:"from"`
	To            Position    `json:"to"`
	CapturedPiece PieceType   `json:"capturedPiece,omitempty"`
	EnPassant     bool        `json:"enPassant"`
	Promotion     PieceType   `json:"promotion,omitempty"`
}

func (p Ply) IsCapture() bool {
	return p.CapturedPiece != ""
}
