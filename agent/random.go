package agent

import (
	"golang.org/x/exp/rand"

	"geister/game"
)

type randomAgent struct {
	player game.PlayerID
	rand   *rand.Rand
}

// NewRandomAgent returns an agent that plays uniformly random legal moves for player.
func NewRandomAgent(player game.PlayerID, options ...Option) Agent {
	return &randomAgent{player: player, rand: newRand(options)}
}

func (a *randomAgent) Decide(g *game.Game) (Decision, error) {
	return randomMove(g, a.player, a.rand)
}
