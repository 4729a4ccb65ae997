package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"geister/experiments/metrics"
	"geister/game"
	"geister/meta"
)

// Referee plays the opponent against a session in a local match. It knows
// the opponent's true colors, which the session never sees.
type Referee interface {
	// OpponentMove picks the opponent's next move on g, or returns
	// game.ErrNoLegalMove.
	OpponentMove(g *game.Game) (game.Move, error)
	// Disclose tells the true color of the captured opponent piece.
	Disclose(ref game.PieceRef) game.Color
}

// Match runs one session against a referee until the game ends or MaxMoves
// moves have been played (meta.MAX_TURNS when unset).
type Match struct {
	Session   *Session
	Referee   Referee
	First     game.PlayerID
	MaxMoves  int
	Collector metrics.Collector
}

// Run plays the match to the end and returns its metrics.
func (m *Match) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	collector := m.Collector
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	maxMoves := m.MaxMoves
	if maxMoves <= 0 {
		maxMoves = meta.MAX_TURNS
	}
	s := m.Session
	collector.Start(m.First)

	log.Info().Msgf("player %s is starting", m.First)

	played := 0
	err := s.ChooseFirst(m.First)
	for err == nil && !s.Phase().IsTerminal() {
		played = m.record(collector, played)
		if played >= maxMoves {
			log.Info().Msgf("stopped after %d moves with no winner", played)
			break
		}

		switch s.Phase() {
		case game.AwaitingOpponentMove:
			var move game.Move
			move, err = m.Referee.OpponentMove(s.Game())
			if errors.Is(err, game.ErrNoLegalMove) {
				log.Warn().Int("moves", played).Msg("opponent cannot move, game won")
				s.game.Phase = game.Won
				err = nil
				continue
			}
			if err == nil {
				_, err = s.PlayOpponent(move.FromX, move.FromY, move.Direction)
			}
		case game.AutomatedSideToMove:
			err = s.Advance()
		case game.AwaitingCapturedPieceColor:
			err = s.DiscloseColor(m.Referee.Disclose(s.game.LastCaptured))
		default:
			err = fmt.Errorf("%w: match cannot continue from %s", game.ErrWrongPhase, s.Phase())
		}
	}
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	m.record(collector, played)

	g := s.Game()
	gameMetric, moveMetrics := collector.Complete(g)
	log.Info().Msgf("game ended %s after %d moves", g.Phase, g.MovesPlayed)
	return gameMetric, moveMetrics, nil
}

// record adds a metric for the move played since the last call, if any.
func (m *Match) record(collector metrics.Collector, played int) int {
	g := m.Session.game
	if g.MovesPlayed == played || g.LastMove == nil {
		return played
	}
	metric := metrics.MoveMetric{
		Step:     g.MovesPlayed,
		Player:   g.LastMove.Player,
		Move:     g.LastMove.String(),
		Captured: g.LastCaptured.Valid(),
	}
	if metric.Player == game.Self {
		metric.Rule = string(m.Session.LastDecision().Rule)
	}
	collector.AddMove(metric)
	return g.MovesPlayed
}
