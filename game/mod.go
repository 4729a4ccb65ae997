package game

import "fmt"

const (
	BoardWidth  = 6
	BoardHeight = 6
	MaxPieces   = 8 // Piece slots per player

	CapturesToDecide = 4 // Captures of one color that end the game
)

// Sentinel coordinates for pieces that are no longer on the board
const (
	LocCaptured    = 99
	LocEscapedWest = -1
	LocEscapedEast = BoardWidth
)

// Estimated color scale, from certainly red to certainly blue
const (
	EstimateRed     = -1.0
	EstimateUnknown = 0.0
	EstimateBlue    = 1.0

	CaptureAnyNotRed = EstimateRed + 0.1 // Capture anything not known to be red
	CaptureOnlyBlue  = EstimateBlue      // Capture only pieces known to be blue
)

// PlayerID identifies a side. Self is the automated side, Opponent the human one.
type PlayerID int

const (
	NoPlayer PlayerID = -1
	Self     PlayerID = 0
	Opponent PlayerID = 1
)

func (p PlayerID) Valid() bool {
	return p == Self || p == Opponent
}

func (p PlayerID) Other() PlayerID {
	switch p {
	case Self:
		return Opponent
	case Opponent:
		return Self
	}
	return NoPlayer
}

func (p PlayerID) String() string {
	switch p {
	case Self:
		return "self"
	case Opponent:
		return "opponent"
	}
	return "none"
}

// ParsePlayer accepts "self"/"f" (automated side first) and "opponent"/"s".
func ParsePlayer(s string) (PlayerID, error) {
	switch s {
	case "self", "f", "first":
		return Self, nil
	case "opponent", "s", "second":
		return Opponent, nil
	}
	return NoPlayer, fmt.Errorf("%w: %q", ErrInvalidPlayer, s)
}

// InBounds reports whether (x, y) is a square of the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < BoardWidth && y >= 0 && y < BoardHeight
}
