package model

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestStartFEN(t *testing.T) {
	if got := NewBoard().FEN(); got != StartFEN {
		t.Fatalf("NewBoard().FEN() = %q, want %q", got, StartFEN)
	}
	b := mustFEN(t, StartFEN)
	if !reflect.DeepEqual(b, NewBoard()) {
		t.Fatalf("ParseFEN(StartFEN) differs from NewBoard()")
	}
}

func TestParseFEN(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/3pP3/8/8/8/4K3 w KQkq d6 0 12")
	if b.ToMove != PlayerColorWhite {
		t.Errorf("ToMove = %s", b.ToMove)
	}
	if b.EnPassantTarget == nil || b.EnPassantTarget.String() != "d6" {
		t.Errorf("EnPassantTarget = %v, want d6", b.EnPassantTarget)
	}
	if b.FullMove != 12 {
		t.Errorf("FullMove = %d, want 12", b.FullMove)
	}
	if got := b.KingPosition(PlayerColorBlack); got.String() != "e8" {
		t.Errorf("black king at %s", got)
	}
	if p, _ := b.PieceAt(sq(t, "e5")); p.Type != Pawn || !p.HasMoved {
		t.Errorf("e5 = %+v, want moved pawn", p)
	}
	// castling rights are not part of the rule set
	if got, want := b.FEN(), "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 12"; got != want {
		t.Errorf("FEN() = %q, want %q", got, want)
	}
}

func TestParseFENAllowsMissingCounters(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 b - -")
	if b.ToMove != PlayerColorBlack || b.FullMove != 1 {
		t.Fatalf("ToMove=%s FullMove=%d", b.ToMove, b.FullMove)
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"Empty", ""},
		{"Garbage", "not a position"},
		{"TooManyRanks", "8/8/8/8/8/8/8/8/8 w - - 0 1"},
		{"MissingWhiteKing", "4k3/8/8/8/8/8/8/8 w - - 0 1"},
		{"TwoBlackKings", "3kk3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"PawnOnLastRank", "P3k3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"PawnOnFirstRank", "4k3/8/8/8/8/8/8/p3K3 w - - 0 1"},
		{"BadEnPassantSquare", "4k3/8/8/8/8/8/8/4K3 w - z9 0 1"},
		{"EnPassantWithoutPawn", "4k3/8/8/8/8/8/8/4K3 w - d6 0 1"},
		{"EnPassantWrongRank", "4k3/8/8/3pP3/8/8/8/4K3 w - d3 0 1"},
		{"OpponentInCheck", "4k3/8/8/8/8/8/8/4RK2 w - - 0 1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFEN(tt.fen); !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("ParseFEN(%q) err = %v, want ErrInvalidFEN", tt.fen, err)
			}
		})
	}
}

func TestParseFENRejectsCapturableKing(t *testing.T) {
	// the same placement is fine with the checked side to move
	if _, err := ParseFEN("4k3/8/8/8/8/8/8/4RK2 b - - 0 1"); err != nil {
		t.Fatalf("checked side to move: %v", err)
	}
	_, err := ParseFEN("4k3/8/8/8/8/8/8/4RK2 w - - 0 1")
	if !errors.Is(err, ErrInvalidFEN) {
		t.Fatalf("err = %v, want ErrInvalidFEN", err)
	}
}

func TestFENRoundTripOverRandomGames(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for g := 0; g < 10; g++ {
		randomPlayout(NewBoard(), rng, 80, func(b *BoardState) {
			fen := b.FEN()
			parsed := mustFEN(t, fen)
			if got := parsed.FEN(); got != fen {
				t.Fatalf("round trip %q -> %q", fen, got)
			}
			if !reflect.DeepEqual(moveNames(AllLegalMoves(parsed, parsed.ToMove)), moveNames(AllLegalMoves(b, b.ToMove))) {
				t.Fatalf("legal moves differ after reloading %q", fen)
			}
		})
	}
}
