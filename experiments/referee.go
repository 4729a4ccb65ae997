package experiments

import (
	"golang.org/x/exp/rand"

	"geister/agent"
	"geister/game"
)

// Referee stands in for the human opponent. It deals the opponent's hidden
// colors, plays the opponent with them, and answers color disclosures.
type Referee struct {
	colors   [game.MaxPieces]game.Color
	opponent agent.Agent
}

// NewReferee deals four red and four blue pieces in random slots.
func NewReferee(r *rand.Rand, opponent agent.Agent) *Referee {
	ref := &Referee{opponent: opponent}
	for i := range ref.colors {
		ref.colors[i] = game.Red
		if i >= game.MaxPieces/2 {
			ref.colors[i] = game.Blue
		}
	}
	r.Shuffle(len(ref.colors), func(i, j int) {
		ref.colors[i], ref.colors[j] = ref.colors[j], ref.colors[i]
	})
	return ref
}

// OpponentMove reveals the true colors on g, which the caller hands over, and
// lets the opponent agent choose.
func (r *Referee) OpponentMove(g *game.Game) (game.Move, error) {
	for i := range g.Players[game.Opponent].Pieces {
		g.Players[game.Opponent].Pieces[i].Color = r.colors[i]
	}
	decision, err := r.opponent.Decide(g)
	if err != nil {
		return game.Move{}, err
	}
	return decision.Move, nil
}

func (r *Referee) Disclose(ref game.PieceRef) game.Color {
	return r.colors[ref.Index]
}

func (r *Referee) Colors() [game.MaxPieces]game.Color {
	return r.colors
}
