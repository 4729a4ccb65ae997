package game

import (
	"fmt"
	"strings"
)

// Color is the true color of a piece. Opponent pieces stay Unknown until disclosed.
type Color int

const (
	Unknown Color = iota
	Red
	Blue
)

func (c Color) String() string {
	switch c {
	case Red:
		return "r"
	case Blue:
		return "b"
	}
	return "?"
}

// ParseColor accepts r, red, b and blue in any case. Unknown is never a valid disclosure.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "red":
		return Red, nil
	case "b", "blue":
		return Blue, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// Piece is a single piece. X and Y hold either a board square or one of the
// Loc* sentinels.
type Piece struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Color    Color   `json:"color"`
	Estimate float64 `json:"estimate"` // EstimateRed..EstimateBlue
}

func NewPiece(x, y int, color Color) Piece {
	return Piece{X: x, Y: y, Color: color, Estimate: EstimateUnknown}
}

func (p Piece) OnBoard() bool {
	return InBounds(p.X, p.Y)
}

func (p Piece) Captured() bool {
	return p.X == LocCaptured
}

func (p Piece) Escaped() bool {
	return p.X == LocEscapedWest || p.X == LocEscapedEast
}

func (p Piece) colorString() string {
	switch {
	case p.Color == Red:
		return "R"
	case p.Color == Blue:
		return "B"
	case p.Estimate == EstimateRed:
		return "?R"
	case p.Estimate == EstimateBlue:
		return "?B"
	}
	return fmt.Sprintf("?%g", p.Estimate)
}

func (p Piece) String() string {
	return fmt.Sprintf("(%d,%d,%s)", p.X, p.Y, p.colorString())
}

// PieceRef points at a piece slot without aliasing the piece itself.
type PieceRef struct {
	Owner PlayerID `json:"owner"`
	Index int      `json:"index"`
}

var NoPiece = PieceRef{Owner: NoPlayer, Index: -1}

func (r PieceRef) Valid() bool {
	return r.Owner.Valid() && r.Index >= 0 && r.Index < MaxPieces
}
