package model

import "errors"

var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidOption = errors.New("invalid option")
	ErrInvalidFEN    = errors.New("invalid fen")
	ErrNoPiece       = errors.New("no piece at from square")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrIllegalMove   = errors.New("invalid move, not legal")
	ErrGameOver      = errors.New("game is over")
	ErrComputerTurn  = errors.New("computer is to move")
)
