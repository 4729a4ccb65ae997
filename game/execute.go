package game

// Execute applies a move that IsLegal has already accepted and returns the
// captured piece, if any. It does not check the result.
func (g *Game) Execute(m Move) (PieceRef, bool) {
	last := m
	g.LastMove = &last
	g.MovesPlayed++

	owner, index := g.locate(m.ToX, m.ToY) // Before moving, or the mover finds itself
	piece := &g.Players[m.Player].Pieces[m.Piece]
	piece.X, piece.Y = m.ToX, m.ToY // Escapes land on LocEscapedWest/East

	if owner == NoPlayer || owner == m.Player {
		return NoPiece, false
	}
	captured := &g.Players[owner].Pieces[index]
	captured.X, captured.Y = LocCaptured, LocCaptured
	return PieceRef{Owner: owner, Index: index}, true
}
