package agent

import (
	"time"

	"golang.org/x/exp/rand"

	"geister/game"
)

// Rule names the policy rule that produced a move.
type Rule string

const (
	RuleEscape      Rule = "escape"
	RuleBlockEscape Rule = "block_escape"
	RuleAttackRed   Rule = "attack_red"
	RuleAttackBlue  Rule = "attack_blue"
	RuleClearCorner Rule = "clear_corner"
	RuleRandom      Rule = "random"
)

type Decision struct {
	Move game.Move
	Rule Rule
}

type Agent interface {
	// Decide returns a legal move for the side the agent plays, or
	// game.ErrNoLegalMove when there is none.
	Decide(g *game.Game) (Decision, error)
}

type Option func(r *rand.Rand)

// WithSeed makes the agent's random draws reproducible.
func WithSeed(seed uint64) Option {
	return func(r *rand.Rand) {
		if seed != 0 {
			r.Seed(seed)
		}
	}
}

func newRand(options []Option) *rand.Rand {
	r := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	for _, option := range options {
		option(r)
	}
	return r
}

// randomMove picks uniformly among the player's legal moves.
func randomMove(g *game.Game, player game.PlayerID, r *rand.Rand) (Decision, error) {
	moves := g.LegalMoves(player)
	if len(moves) == 0 {
		return Decision{}, game.ErrNoLegalMove
	}
	return Decision{Move: moves[r.Intn(len(moves))], Rule: RuleRandom}, nil
}
