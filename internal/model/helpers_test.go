package model

import (
	"math/rand"
	"sort"
	"testing"
)

func mustFEN(t *testing.T, fen string) *BoardState {
	t.Helper()
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func sq(t *testing.T, name string) Position {
	t.Helper()
	p, err := ParsePosition(name)
	if err != nil {
		t.Fatalf("ParsePosition(%q): %v", name, err)
	}
	return p
}

// play makes from-to on b after checking it is in the legal list.
func play(t *testing.T, b *BoardState, from, to string) Ply {
	t.Helper()
	f, dst := sq(t, from), sq(t, to)
	for _, m := range LegalMoves(b, f) {
		if m.To == dst {
			return b.Play(m)
		}
	}
	t.Fatalf("%s-%s is not legal in %s", from, to, b.FEN())
	return Ply{}
}

func hasTarget(moves []SimpleMove, to Position) bool {
	for _, m := range moves {
		if m.To == to {
			return true
		}
	}
	return false
}

// moveNames renders moves as sorted from-to strings such as "e2e4".
func moveNames(moves []SimpleMove) []string {
	names := make([]string, 0, len(moves))
	for _, m := range moves {
		names = append(names, m.From.String()+m.To.String())
	}
	sort.Strings(names)
	return names
}

// randomPlayout plays up to plies random legal moves, calling visit before each.
func randomPlayout(b *BoardState, rng *rand.Rand, plies int, visit func(*BoardState)) {
	for i := 0; i < plies; i++ {
		if visit != nil {
			visit(b)
		}
		moves := AllLegalMoves(b, b.ToMove)
		if len(moves) == 0 {
			return
		}
		b.Play(moves[rng.Intn(len(moves))])
	}
}

func perft(b *BoardState, depth int) int {
	moves := AllLegalMoves(b, b.ToMove)
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		child := b.Clone()
		child.Play(m)
		nodes += perft(child, depth-1)
	}
	return nodes
}
