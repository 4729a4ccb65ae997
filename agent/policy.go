package agent

import (
	"golang.org/x/exp/rand"

	"geister/game"
	"geister/meta"
	"geister/utils"
)

// neighbor is a square next to a target and the step that lands on it.
type neighbor struct {
	dx, dy int
	dir    game.Direction
}

// Capturing neighbors in search order: west, east, north, south of the target.
var capturers = []neighbor{
	{-1, 0, game.East},
	{1, 0, game.West},
	{0, -1, game.South},
	{0, 1, game.North},
}

// escapeCorners are the squares Self leaves the board from, with the exit step.
var escapeCorners = []struct {
	x, y int
	dir  game.Direction
}{
	{0, game.EscapeRow(game.Self), game.West},
	{game.BoardWidth - 1, game.EscapeRow(game.Self), game.East},
}

// RulePolicy plays the automated side with a fixed cascade of rules. It does
// not search; the only randomness is which attacker to push and the fallback.
type RulePolicy struct {
	rand *rand.Rand
}

func NewRulePolicy(options ...Option) *RulePolicy {
	return &RulePolicy{rand: newRand(options)}
}

// Decide runs the cascade. It may tighten g.CaptureThreshold, which stays
// tightened for the rest of the game.
func (p *RulePolicy) Decide(g *game.Game) (Decision, error) {
	if move, ok := escape(g); ok {
		return Decision{Move: move, Rule: RuleEscape}, nil
	}
	if move, ok := blockEscape(g); ok {
		return Decision{Move: move, Rule: RuleBlockEscape}, nil
	}

	if g.Players[game.Opponent].Counts().CapturedRed >= meta.TIGHTEN_AFTER_RED_CAPTURES {
		g.CaptureThreshold = game.CaptureOnlyBlue
	}

	if g.MovesPlayed < meta.ATTACK_WITH_RED_UNTIL {
		return p.attack(g, game.Red)
	}

	counts := g.Players[game.Self].Counts()
	color := game.Blue
	switch {
	case counts.AliveRed > counts.AliveBlue:
		color = game.Red
	case counts.AliveRed == counts.AliveBlue:
		if p.rand.Intn(2) == 0 {
			color = game.Red
		}
	}
	if color == game.Red {
		return p.attack(g, game.Red)
	}

	if move, ok := clearCorner(g); ok {
		return Decision{Move: move, Rule: RuleClearCorner}, nil
	}
	return p.attack(g, game.Blue)
}

// escape takes a blue piece sitting on an escape corner off the board.
func escape(g *game.Game) (game.Move, bool) {
	for _, corner := range escapeCorners {
		owner, piece := g.PieceAt(corner.x, corner.y)
		if owner != game.Self || piece.Color != game.Blue {
			continue
		}
		if move, ok := legalFrom(g, corner.x, corner.y, corner.dir); ok {
			return move, true
		}
	}
	return game.Move{}, false
}

// blockEscape captures an opponent piece sitting on one of Self's home corners.
func blockEscape(g *game.Game) (game.Move, bool) {
	y := game.EscapeRow(game.Opponent)
	for _, x := range []int{0, game.BoardWidth - 1} {
		if owner, _ := g.PieceAt(x, y); owner != game.Opponent {
			continue
		}
		if move, ok := captureAt(g, x, y); ok {
			return move, true
		}
	}
	return game.Move{}, false
}

func captureAt(g *game.Game, x, y int) (game.Move, bool) {
	for _, n := range capturers {
		nx, ny := x+n.dx, y+n.dy
		if owner, _ := g.PieceAt(nx, ny); owner != game.Self {
			continue
		}
		if move, ok := legalFrom(g, nx, ny, n.dir); ok {
			return move, true
		}
	}
	return game.Move{}, false
}

// clearCorner steps a red piece off an escape corner so blue pieces can use it.
func clearCorner(g *game.Game) (game.Move, bool) {
	for _, corner := range escapeCorners {
		owner, piece := g.PieceAt(corner.x, corner.y)
		if owner != game.Self || piece.Color != game.Red {
			continue
		}
		for _, dir := range game.Directions {
			if move, ok := legalFrom(g, corner.x, corner.y, dir); ok {
				return move, true
			}
		}
	}
	return game.Move{}, false
}

// attack pushes a random on-board piece of the given color, trying directions
// in order, and falls back to a random legal move.
func (p *RulePolicy) attack(g *game.Game, color game.Color) (Decision, error) {
	rule := RuleAttackRed
	if color == game.Blue {
		rule = RuleAttackBlue
	}

	candidates := utils.FilterIndex(g.Players[game.Self].Pieces[:], func(piece game.Piece) bool {
		return piece.OnBoard() && piece.Color == color
	})
	p.rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, index := range candidates {
		for _, dir := range game.Directions {
			move, err := game.NewMoveFromIndex(g, game.Self, index, dir)
			if err == nil && g.IsLegal(move) {
				return Decision{Move: move, Rule: rule}, nil
			}
		}
	}
	return randomMove(g, game.Self, p.rand)
}

func legalFrom(g *game.Game, x, y int, dir game.Direction) (game.Move, bool) {
	move, err := game.NewMoveFromCoordinate(g, x, y, dir)
	if err != nil || !g.IsLegal(move) {
		return game.Move{}, false
	}
	return move, true
}
