package game

// Outcome evaluates the terminal conditions without changing the game.
// The first matching condition wins.
func (g *Game) Outcome() (Phase, bool) {
	if g.Phase.IsTerminal() {
		return g.Phase, true
	}

	self := g.Players[Self].Counts()
	opponent := g.Players[Opponent].Counts()

	switch {
	case self.Escaped > 0:
		return Won, true
	case opponent.Escaped > 0:
		return Lost, true
	case opponent.CapturedRed >= CapturesToDecide: // We took four reds
		return Lost, true
	case opponent.CapturedBlue >= CapturesToDecide:
		return Won, true
	case self.CapturedRed >= CapturesToDecide: // They took four reds
		return Won, true
	case self.CapturedBlue >= CapturesToDecide:
		return Lost, true
	}
	return g.Phase, false
}

// CheckWinner moves the game into its terminal phase when one is reached and
// returns the resulting phase. Once terminal it keeps returning that phase.
func (g *Game) CheckWinner() Phase {
	if phase, over := g.Outcome(); over {
		g.Phase = phase
	}
	return g.Phase
}

func (g *Game) IsOver() bool {
	_, over := g.Outcome()
	return over
}
