package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"geister/agent"
	"geister/game"
)

// Session owns one live game, its undo history and the agent playing Self.
// It is not safe for concurrent use; callers serialize access.
type Session struct {
	game    *game.Game
	history *Stack
	agent   agent.Agent
	last    agent.Decision
}

func NewSession(a agent.Agent) *Session {
	s := &Session{
		history: NewStack(),
		agent:   a,
	}
	s.Reset()
	return s
}

// Reset starts a fresh game and makes it the bottom of the undo history.
func (s *Session) Reset() {
	s.game = game.NewGame()
	s.last = agent.Decision{}
	s.history.Clear()
	s.history.Push(s.game)
	log.Debug().Msg("session reset")
}

// enter checks that the current phase accepts e. Terminal phases report
// false with no error, which callers return as a successful no-op.
func (s *Session) enter(e event) (bool, error) {
	phase := s.game.Phase
	if phase.IsTerminal() {
		return false, nil
	}
	if !accepts(phase, e) {
		return false, fmt.Errorf("%w: cannot %s while %s", game.ErrWrongPhase, e, phase)
	}
	return true, nil
}

// ChooseFirst records who moves first. When Self starts, its first move is
// played immediately.
func (s *Session) ChooseFirst(first game.PlayerID) error {
	ok, err := s.enter(chooseFirst)
	if !ok {
		return err
	}
	if !first.Valid() {
		return fmt.Errorf("%w: %d", game.ErrInvalidPlayer, first)
	}

	s.game.FirstPlayer = first
	log.Debug().Stringer("first", first).Msg("first player chosen")
	if first == game.Opponent {
		s.game.Phase = game.AwaitingOpponentMove
		return nil
	}
	s.game.Phase = game.AutomatedSideToMove
	return s.Advance()
}

// PlayOpponent applies the opponent's move from (x, y). Rejected input leaves
// the game untouched.
func (s *Session) PlayOpponent(x, y int, dir game.Direction) (game.Move, error) {
	ok, err := s.enter(opponentMove)
	if !ok {
		return game.Move{}, err
	}

	move, err := game.NewMoveFromCoordinate(s.game, x, y, dir)
	if err != nil {
		return game.Move{}, err
	}
	if move.Player != game.Opponent {
		return game.Move{}, fmt.Errorf("%w at (%d,%d)", game.ErrNotOpponentPiece, x, y)
	}
	if !s.game.IsLegal(move) {
		return game.Move{}, fmt.Errorf("%w: %s", game.ErrIllegalMove, move)
	}

	s.history.Push(s.game)
	s.execute(move)
	s.settle(game.AutomatedSideToMove)

	log.Debug().
		Stringer("move", move).
		Stringer("phase", s.game.Phase).
		Msg("opponent moved")
	return move, nil
}

// Advance plays one move for the automated side. A capture waits for the
// captured piece's color before any win check.
func (s *Session) Advance() error {
	ok, err := s.enter(automatedMove)
	if !ok {
		return err
	}

	decision, err := s.agent.Decide(s.game)
	if errors.Is(err, game.ErrNoLegalMove) {
		log.Warn().Int("moves", s.game.MovesPlayed).Msg("automated side cannot move, game lost")
		s.game.Phase = game.Lost
		return nil
	}
	if err != nil {
		return fmt.Errorf("automated move: %w", err)
	}
	if !s.game.IsLegal(decision.Move) {
		panic(fmt.Sprintf("agent chose illegal move %s by rule %s", decision.Move, decision.Rule))
	}

	s.last = decision
	if s.execute(decision.Move) {
		s.game.Phase = game.AwaitingCapturedPieceColor
	} else {
		s.settle(game.AwaitingOpponentMove)
	}

	log.Debug().
		Stringer("move", decision.Move).
		Str("reversed", decision.Move.Reversed()).
		Str("rule", string(decision.Rule)).
		Stringer("phase", s.game.Phase).
		Msg("automated side moved")
	return nil
}

// DiscloseColor sets the true color of the piece the automated side just
// captured. Anything but Red or Blue is rolled back and rejected.
func (s *Session) DiscloseColor(color game.Color) error {
	ok, err := s.enter(discloseColor)
	if !ok {
		return err
	}

	s.history.Push(s.game)
	piece := s.game.Piece(s.game.LastCaptured)
	if piece == nil || (color != game.Red && color != game.Blue) {
		s.history.drop()
		if piece == nil {
			return fmt.Errorf("%w: nothing awaits disclosure", game.ErrPieceNotFound)
		}
		return fmt.Errorf("%w: %s", game.ErrInvalidColor, color)
	}

	piece.Color = color
	s.game.LastCaptured = game.NoPiece
	s.settle(game.AwaitingOpponentMove)

	log.Debug().
		Stringer("color", color).
		Stringer("phase", s.game.Phase).
		Msg("captured color disclosed")
	return nil
}

// Undo restores the game from before the last opponent move or disclosure.
// Undoing past the start keeps returning the start.
func (s *Session) Undo() bool {
	g, ok := s.history.Pop()
	if !ok {
		return false
	}
	s.game = g
	s.last = agent.Decision{}
	log.Debug().Stringer("phase", g.Phase).Int("history", s.history.Len()).Msg("undo")
	return true
}

// execute applies a legal move and reports whether it captured.
func (s *Session) execute(move game.Move) bool {
	s.game.LastCaptured = game.NoPiece
	ref, captured := s.game.Execute(move)
	if captured {
		s.game.LastCaptured = ref
	}
	return captured
}

// settle moves to next unless the game is over.
func (s *Session) settle(next game.Phase) {
	s.game.Phase = next
	s.game.CheckWinner()
}

// Game returns a copy of the live game.
func (s *Session) Game() *game.Game {
	return s.game.Copy()
}

func (s *Session) Phase() game.Phase {
	return s.game.Phase
}

// LastDecision is the automated side's most recent move and the rule that
// chose it. It is cleared by Reset and Undo.
func (s *Session) LastDecision() agent.Decision {
	return s.last
}

func (s *Session) History() int {
	return s.history.Len()
}
