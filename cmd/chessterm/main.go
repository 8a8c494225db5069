// chessterm plays a game in the terminal against the automated opponent or
// hot-seat, using the same rules package as the server.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/fatih/color"
)

var symbols = map[model.PieceType]string{
	model.King:   "K",
	model.Queen:  "Q",
	model.Rook:   "R",
	model.Bishop: "B",
	model.Knight: "N",
	model.Pawn:   "P",
}

const (
	lightSquare = color.BgHiWhite
	darkSquare  = color.BgGreen
	hintSquare  = color.BgYellow
	whitePiece  = color.FgHiBlue
	blackPiece  = color.FgBlack
)

var statusLine = color.New(color.FgHiRed, color.Bold)

func main() {
	mode := flag.String("mode", "computer", "human (hot-seat) or computer")
	side := flag.String("color", "white", "your color in computer mode")
	fen := flag.String("fen", "", "start from this position")
	seed := flag.Int64("seed", 0, "seed for the automated opponent (0 = random)")
	flag.Parse()

	m, err := model.ParseMode(*mode)
	exitIf(err)
	human, err := model.ParsePlayerColor(*side)
	exitIf(err)
	board := model.NewBoard()
	if *fen != "" {
		board, err = model.ParseFEN(*fen)
		exitIf(err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	game := model.NewGame("local", "terminal", rand.New(rand.NewSource(*seed)))
	game.Load(board, m, human)
	t := &terminal{game: game, out: os.Stdout, mode: m, human: human}
	t.run(os.Stdin)
}

type terminal struct {
	game  *model.Game
	out   io.Writer
	mode  model.Mode
	human model.PlayerColor
	hints map[model.Position]bool
}

func (t *terminal) run(in io.Reader) {
	t.render()
	scanner := bufio.NewScanner(in)
	fmt.Fprint(t.out, "> ")
	for scanner.Scan() {
		if quit := t.handle(strings.Fields(strings.ToLower(scanner.Text()))); quit {
			return
		}
		fmt.Fprint(t.out, "> ")
	}
}

func (t *terminal) handle(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(t.out, "commands: <from> <to> | moves <square> | reset | fen | quit")
	case "fen":
		fmt.Fprintln(t.out, t.game.GetState().FEN)
	case "reset":
		t.game.Reset(t.mode, t.human)
		t.hints = nil
		t.render()
	case "moves":
		if len(args) < 2 {
			fmt.Fprintln(t.out, "usage: moves <square>")
			return false
		}
		from, err := model.ParsePosition(args[1])
		if err != nil {
			fmt.Fprintln(t.out, err)
			return false
		}
		t.hints = map[model.Position]bool{}
		for _, m := range t.game.LegalMoves(from) {
			t.hints[m.To] = true
		}
		t.render()
	default:
		if err := t.move(args); err != nil {
			fmt.Fprintln(t.out, err)
		}
	}
	return false
}

// move accepts "e2 e4" or "e2e4".
func (t *terminal) move(args []string) error {
	squares := args
	if len(args) == 1 && len(args[0]) == 4 {
		squares = []string{args[0][:2], args[0][2:]}
	}
	if len(squares) != 2 {
		return errors.New("unknown command, try help")
	}
	wsMove := model.WSMove{FromName: squares[0], ToName: squares[1]}
	move, err := wsMove.Resolve()
	if err != nil {
		return err
	}
	if _, err := t.game.ApplyMove(move); err != nil {
		return err
	}
	t.hints = nil
	if ply, ok := t.game.PlayAutomatedMove(); ok {
		fmt.Fprintln(t.out, "computer:", describe(ply))
	}
	t.render()
	return nil
}

// describe renders a ply as "e2-e4", or "d4xe5 (pawn)" for a capture.
func describe(ply model.Ply) string {
	if !ply.IsCapture() {
		return fmt.Sprintf("%s-%s", ply.From, ply.To)
	}
	return fmt.Sprintf("%sx%s (%s)", ply.From, ply.To, ply.CapturedPiece)
}

func (t *terminal) render() {
	state := t.game.GetState()
	for y := 0; y < 8; y++ {
		fmt.Fprintf(t.out, "%d ", 8-y)
		for x := 0; x < 8; x++ {
			pos := model.Position{X: x, Y: y}
			bg := lightSquare
			if (x+y)%2 == 1 {
				bg = darkSquare
			}
			if t.hints[pos] {
				bg = hintSquare
			}
			cell := color.New(bg)
			text := "   "
			if piece, ok := state.Board.PieceAt(pos); ok {
				fg := whitePiece
				if piece.Color == model.PlayerColorBlack {
					fg = blackPiece
				}
				cell.Add(fg, color.Bold)
				text = " " + symbols[piece.Type] + " "
			}
			cell.Fprint(t.out, text)
		}
		fmt.Fprintln(t.out)
	}
	fmt.Fprintln(t.out, "   a  b  c  d  e  f  g  h")
	fmt.Fprintf(t.out, "captured  white: %v  black: %v\n", state.Board.Captured.White, state.Board.Captured.Black)

	switch state.Status {
	case model.StatusCheckmate:
		statusLine.Fprintf(t.out, "%s is checkmated! %s wins!\n", state.Board.ToMove, state.Board.ToMove.Opponent())
	case model.StatusCheck:
		statusLine.Fprintf(t.out, "%s is in check!\n", state.Board.ToMove)
	case model.StatusStalemate:
		statusLine.Fprintln(t.out, "Stalemate! It's a draw.")
	default:
		fmt.Fprintf(t.out, "%s to move\n", state.Board.ToMove)
	}
}

func exitIf(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
