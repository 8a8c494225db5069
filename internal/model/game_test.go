package model

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
)

type fakeConn struct {
	mu     sync.Mutex
	writes []interface{}
	fail   bool
	closed bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.writes = append(c.writes, v)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.writes)
}

func newTestGame() *Game {
	return NewGame("test", "quiet-otter", rand.New(rand.NewSource(1)))
}

func move(t *testing.T, from, to string) SimpleMove {
	t.Helper()
	return SimpleMove{From: sq(t, from), To: sq(t, to)}
}

func TestApplyMoveErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		mode Mode
		move SimpleMove
		want error
	}{
		{
			name: "EmptySquare",
			fen:  StartFEN,
			move: SimpleMove{From: Position{X: 4, Y: 4}, To: Position{X: 4, Y: 3}},
			want: ErrNoPiece,
		},
		{
			name: "OpponentPiece",
			fen:  StartFEN,
			move: SimpleMove{From: Position{X: 4, Y: 1}, To: Position{X: 4, Y: 3}},
			want: ErrNotYourTurn,
		},
		{
			name: "IllegalGeometry",
			fen:  StartFEN,
			move: SimpleMove{From: Position{X: 4, Y: 6}, To: Position{X: 4, Y: 2}},
			want: ErrIllegalMove,
		},
		{
			name: "OffBoard",
			fen:  StartFEN,
			move: SimpleMove{From: Position{X: 4, Y: 6}, To: Position{X: 4, Y: 9}},
			want: ErrInvalidSquare,
		},
		{
			name: "GameOver",
			fen:  "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 1 3",
			move: SimpleMove{From: Position{X: 0, Y: 6}, To: Position{X: 0, Y: 5}},
			want: ErrGameOver,
		},
		{
			name: "ComputerSide",
			fen:  "4k3/8/8/8/8/8/8/4K3 b - - 0 1",
			mode: ModeComputer,
			move: SimpleMove{From: Position{X: 4, Y: 0}, To: Position{X: 4, Y: 1}},
			want: ErrComputerTurn,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame()
			mode := tt.mode
			if mode == "" {
				mode = ModeHuman
			}
			// load in human mode so Load does not reply for the computer
			g.Load(mustFEN(t, tt.fen), ModeHuman, PlayerColorWhite)
			g.players.Mode = mode

			before := g.GetState().FEN
			if _, err := g.ApplyMove(tt.move); !errors.Is(err, tt.want) {
				t.Fatalf("ApplyMove err = %v, want %v", err, tt.want)
			}
			if after := g.GetState().FEN; after != before {
				t.Fatalf("rejected move changed the board: %q -> %q", before, after)
			}
		})
	}
}

func TestApplyMoveRecordsHistory(t *testing.T) {
	g := newTestGame()
	g.Reset(ModeHuman, PlayerColorWhite)

	ply, err := g.ApplyMove(move(t, "e2", "e4"))
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if ply.Piece != Pawn || ply.Color != PlayerColorWhite {
		t.Errorf("ply = %+v", ply)
	}
	if _, err := g.ApplyMove(move(t, "e7", "e5")); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}

	state := g.GetState()
	if len(state.MoveHistory) != 2 {
		t.Fatalf("history has %d plies, want 2", len(state.MoveHistory))
	}
	if state.LastMove == nil || state.LastMove.From.String() != "e7" || state.LastMove.To.String() != "e5" {
		t.Errorf("LastMove = %+v, want e7-e5", state.LastMove)
	}
	if state.Status != StatusNormal {
		t.Errorf("Status = %s", state.Status)
	}
	if state.FEN != "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w - e6 0 2" {
		t.Errorf("FEN = %q", state.FEN)
	}
}

func TestGetStateIsSnapshot(t *testing.T) {
	g := newTestGame()
	g.Reset(ModeHuman, PlayerColorWhite)
	state := g.GetState()
	if _, err := g.ApplyMove(move(t, "d2", "d4")); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if len(state.MoveHistory) != 0 || state.Board.ToMove != PlayerColorWhite {
		t.Fatal("snapshot changed after a later move")
	}
}

func TestResetWithComputerMovingFirst(t *testing.T) {
	g := newTestGame()
	board := g.Reset(ModeComputer, PlayerColorBlack)
	if board.ToMove != PlayerColorBlack {
		t.Fatalf("ToMove = %s, want black after automated opening move", board.ToMove)
	}
	state := g.GetState()
	if len(state.MoveHistory) != 1 || state.MoveHistory[0].Color != PlayerColorWhite {
		t.Fatalf("history = %+v, want one white ply", state.MoveHistory)
	}
	if g.AutomatedToMove() {
		t.Fatal("automated side should be waiting for the human")
	}
}

func TestResetWithHumanMovingFirst(t *testing.T) {
	g := newTestGame()
	board := g.Reset(ModeComputer, PlayerColorWhite)
	if board.ToMove != PlayerColorWhite || len(g.GetState().MoveHistory) != 0 {
		t.Fatal("no move should be played when the human has white")
	}

	if _, err := g.ApplyMove(move(t, "e2", "e4")); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if !g.AutomatedToMove() {
		t.Fatal("selector should own the reply")
	}
	ply, ok := g.PlayAutomatedMove()
	if !ok || ply.Color != PlayerColorBlack {
		t.Fatalf("PlayAutomatedMove = %+v, %v", ply, ok)
	}
}

func TestBroadcastState(t *testing.T) {
	g := newTestGame()
	g.Reset(ModeHuman, PlayerColorWhite)

	good, bad := &fakeConn{}, &fakeConn{fail: true}
	g.RegisterConnection("good", good)
	g.RegisterConnection("bad", bad)
	if n := g.ConnectionCount(); n != 2 {
		t.Fatalf("ConnectionCount = %d, want 2", n)
	}

	g.BroadcastState()
	if good.count() != 1 {
		t.Fatalf("good connection got %d writes, want 1", good.count())
	}
	if n := g.ConnectionCount(); n != 1 {
		t.Fatalf("failing connection not dropped: %d connections", n)
	}

	g.UnregisterConnection("good")
	g.BroadcastState()
	if good.count() != 1 {
		t.Fatal("unregistered connection still receives state")
	}
}

func TestRegisterConnectionReplacesAndCloses(t *testing.T) {
	g := newTestGame()
	first, second := &fakeConn{}, &fakeConn{}
	g.RegisterConnection("c1", first)
	g.RegisterConnection("c1", second)
	if !first.closed {
		t.Error("replaced connection should be closed")
	}
	if n := g.ConnectionCount(); n != 1 {
		t.Errorf("ConnectionCount = %d, want 1", n)
	}

	g.CloseConnections()
	if !second.closed || g.ConnectionCount() != 0 {
		t.Error("CloseConnections left connections open")
	}
}

func TestPlayAutomatedMoveOnlyWhenDue(t *testing.T) {
	g := newTestGame()
	g.Reset(ModeHuman, PlayerColorWhite)
	if _, ok := g.PlayAutomatedMove(); ok {
		t.Fatal("hot-seat game should never get an automated move")
	}

	g.Reset(ModeComputer, PlayerColorWhite)
	if _, err := g.ApplyMove(move(t, "e2", "e4")); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if _, ok := g.PlayAutomatedMove(); !ok {
		t.Fatal("reply should be due after the human move")
	}
	// a second pending reply must not move the human's side
	if ply, ok := g.PlayAutomatedMove(); ok {
		t.Fatalf("stale reply played %+v", ply)
	}

	state := g.GetState()
	if len(state.MoveHistory) != 2 || state.Board.ToMove != PlayerColorWhite {
		t.Fatalf("history=%d toMove=%s, want 2 plies and white to move", len(state.MoveHistory), state.Board.ToMove)
	}
}

func TestSuggestMoveDoesNotPlay(t *testing.T) {
	g := newTestGame()
	g.Load(mustFEN(t, "7k/8/8/8/8/p7/8/1N2K3 w - - 0 1"), ModeHuman, PlayerColorWhite)
	before := g.GetState().FEN

	m, ok := g.SuggestMove()
	if !ok || m.From.String()+m.To.String() != "b1a3" {
		t.Fatalf("SuggestMove = %+v, %v, want b1a3", m, ok)
	}
	if after := g.GetState().FEN; after != before {
		t.Fatalf("board changed from %q to %q", before, after)
	}

	g.Load(mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"), ModeHuman, PlayerColorWhite)
	if _, ok := g.SuggestMove(); ok {
		t.Fatal("stalemated side should get no suggestion")
	}
}
