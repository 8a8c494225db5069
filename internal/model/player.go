package model

import "fmt"

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func (c PlayerColor) Opponent() PlayerColor {
	if c == PlayerColorWhite {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

// forward is the row delta of a pawn advance for c.
func (c PlayerColor) forward() int {
	if c == PlayerColorWhite {
		return -1
	}
	return 1
}

func (c PlayerColor) pawnStartRow() int {
	if c == PlayerColorWhite {
		return 6
	}
	return 1
}

func (c PlayerColor) promotionRow() int {
	if c == PlayerColorWhite {
		return 0
	}
	return 7
}

func ParsePlayerColor(s string) (PlayerColor, error) {
	switch PlayerColor(s) {
	case PlayerColorWhite, PlayerColorBlack:
		return PlayerColor(s), nil
	case "w":
		return PlayerColorWhite, nil
	case "b":
		return PlayerColorBlack, nil
	}
	return "", fmt.Errorf("%w: color %q", ErrInvalidOption, s)
}

// Mode selects who plays the side opposite the human.
type Mode string

const (
	// ModeHuman is hot-seat play: both sides are moved by callers.
	ModeHuman Mode = "human"
	// ModeComputer hands the side opposite HumanColor to the automated selector.
	ModeComputer Mode = "computer"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeHuman, ModeComputer:
		return Mode(s), nil
	case "":
		return ModeHuman, nil
	}
	return "", fmt.Errorf("%w: mode %q", ErrInvalidOption, s)
}

type ClientPlayer struct {
	Mode       Mode        `json:"mode"`
	HumanColor PlayerColor `json:"humanColor"`
}
