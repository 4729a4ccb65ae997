package game

import "errors"

var (
	ErrInvalidPlayer    = errors.New("invalid player")
	ErrPieceNotFound    = errors.New("piece not found")
	ErrNotOpponentPiece = errors.New("not an opponent piece")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidColor     = errors.New("invalid color")
	ErrIllegalMove      = errors.New("illegal move")
	ErrWrongPhase       = errors.New("wrong phase")
	ErrNoLegalMove      = errors.New("no legal move")
)
