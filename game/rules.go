package game

// IsLegal checks a move against the current position without mutating it.
func (g *Game) IsLegal(m Move) bool {
	if !m.Player.Valid() || m.Piece < 0 || m.Piece >= MaxPieces {
		return false
	}
	piece := g.Players[m.Player].Pieces[m.Piece]
	if piece.Escaped() || piece.Captured() {
		return false
	}

	// Unknown counts as possibly blue, so an opponent piece may attempt to escape
	// before its color is known.
	if canEscape(m.Player, piece, m.Direction) {
		return true
	}

	if !InBounds(m.ToX, m.ToY) {
		return false
	}
	owner, target := g.PieceAt(m.ToX, m.ToY)
	if owner == m.Player {
		return false
	}
	if owner == Opponent && target.Estimate < g.CaptureThreshold {
		return false
	}
	return true
}

func canEscape(player PlayerID, piece Piece, dir Direction) bool {
	if piece.Color == Red || piece.Y != EscapeRow(player) {
		return false
	}
	switch piece.X {
	case 0:
		return dir == West
	case BoardWidth - 1:
		return dir == East
	}
	return false
}

// EscapeRow is the row a player's pieces leave the board from: the far edge
// as seen by that player.
func EscapeRow(player PlayerID) int {
	if player == Self {
		return 0
	}
	return BoardHeight - 1
}
