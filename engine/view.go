package engine

import (
	"errors"

	"geister/agent"
	"geister/game"
)

// View is what the session exposes after every transition.
type View struct {
	Phase        game.Phase                    `json:"phase"`
	Over         bool                          `json:"over"`
	FirstPlayer  game.PlayerID                 `json:"first_player"`
	MovesPlayed  int                           `json:"moves_played"`
	LastMove     *game.Move                    `json:"last_move,omitempty"`
	LastRule     agent.Rule                    `json:"last_rule,omitempty"`
	LastCaptured *game.PieceRef                `json:"last_captured,omitempty"`
	Pieces       [2][game.MaxPieces]game.Piece `json:"pieces"`
	Counts       [2]game.Counts                `json:"counts"`
	Hash         game.StateHash                `json:"hash"`
}

func (s *Session) View() View {
	g := s.Game()
	v := View{
		Phase:       g.Phase,
		Over:        g.Phase.IsTerminal(),
		FirstPlayer: g.FirstPlayer,
		MovesPlayed: g.MovesPlayed,
		LastMove:    g.LastMove,
		LastRule:    s.last.Rule,
		Hash:        g.Hash(),
	}
	if g.LastCaptured.Valid() {
		ref := g.LastCaptured
		v.LastCaptured = &ref
	}
	for i, player := range g.Players {
		v.Pieces[i] = player.Pieces
		v.Counts[i] = player.Counts()
	}
	return v
}

// Saved is the persisted form of a session: the live game and its undo history.
type Saved struct {
	Game    *game.Game   `json:"game"`
	History []*game.Game `json:"history"`
}

var ErrEmptySave = errors.New("saved session has no game")

func (s *Session) Export() Saved {
	return Saved{
		Game:    s.Game(),
		History: s.history.Snapshots(),
	}
}

// Restore replaces the live game and history. A save without history gets
// its game as the only snapshot.
func (s *Session) Restore(saved Saved) error {
	if saved.Game == nil {
		return ErrEmptySave
	}
	s.game = saved.Game.Copy()
	s.last = agent.Decision{}
	s.history.Clear()
	for _, g := range saved.History {
		if g != nil {
			s.history.Push(g)
		}
	}
	if s.history.Len() == 0 {
		s.history.Push(s.game)
	}
	return nil
}
