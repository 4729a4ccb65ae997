package game

import "fmt"

// Move is a single step of one piece. Its destination is computed when it is
// constructed; treat it as immutable afterwards.
type Move struct {
	Player    PlayerID  `json:"player"`
	Piece     int       `json:"piece"` // Slot in Player.Pieces
	FromX     int       `json:"from_x"`
	FromY     int       `json:"from_y"`
	Direction Direction `json:"direction"`
	ToX       int       `json:"to_x"`
	ToY       int       `json:"to_y"`
}

// NewMoveFromIndex builds a move for the piece in the given slot.
func NewMoveFromIndex(g *Game, player PlayerID, index int, dir Direction) (Move, error) {
	if !player.Valid() {
		return Move{}, fmt.Errorf("%w: no player %d", ErrPieceNotFound, player)
	}
	if index < 0 || index >= MaxPieces {
		return Move{}, fmt.Errorf("%w: no slot %d", ErrPieceNotFound, index)
	}
	if !dir.Valid() {
		return Move{}, fmt.Errorf("%w: %d", ErrInvalidDirection, dir)
	}
	piece := g.Players[player].Pieces[index]
	return newMove(player, index, piece.X, piece.Y, dir), nil
}

// NewMoveFromCoordinate builds a move for whichever piece stands on (x, y).
func NewMoveFromCoordinate(g *Game, x, y int, dir Direction) (Move, error) {
	if !dir.Valid() {
		return Move{}, fmt.Errorf("%w: %d", ErrInvalidDirection, dir)
	}
	owner, index := g.locate(x, y)
	if owner == NoPlayer {
		return Move{}, fmt.Errorf("%w at (%d,%d)", ErrPieceNotFound, x, y)
	}
	return newMove(owner, index, x, y, dir), nil
}

func newMove(player PlayerID, index, x, y int, dir Direction) Move {
	dx, dy := dir.Delta()
	return Move{
		Player:    player,
		Piece:     index,
		FromX:     x,
		FromY:     y,
		Direction: dir,
		ToX:       x + dx,
		ToY:       y + dy,
	}
}

// IsEscape reports whether the move leaves the board sideways.
func (m Move) IsEscape() bool {
	return m.ToX == LocEscapedWest || m.ToX == LocEscapedEast
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d,%s)", m.FromX, m.FromY, m.Direction)
}

// Reversed renders the move as seen from the other side of the board.
func (m Move) Reversed() string {
	return fmt.Sprintf("(%d,%d,%s)", BoardWidth-1-m.FromX, BoardHeight-1-m.FromY, m.Direction.Opposite())
}
