package game

// Player owns a fixed set of piece slots.
type Player struct {
	ID     PlayerID         `json:"id"`
	Pieces [MaxPieces]Piece `json:"pieces"`
}

// Counts are derived from the pieces. They are never stored.
type Counts struct {
	Alive        int `json:"alive"` // On the board
	Escaped      int `json:"escaped"`
	Captured     int `json:"captured"`
	AliveRed     int `json:"alive_red"`
	AliveBlue    int `json:"alive_blue"`
	CapturedRed  int `json:"captured_red"`
	CapturedBlue int `json:"captured_blue"`
}

// Counts tallies the player's pieces by location and color.
func (p *Player) Counts() Counts {
	var c Counts
	for _, piece := range p.Pieces {
		switch {
		case piece.Escaped():
			c.Escaped++
		case piece.Captured():
			c.Captured++
			switch piece.Color {
			case Red:
				c.CapturedRed++
			case Blue:
				c.CapturedBlue++
			}
		default:
			c.Alive++
			switch piece.Color {
			case Red:
				c.AliveRed++
			case Blue:
				c.AliveBlue++
			}
		}
	}
	return c
}
