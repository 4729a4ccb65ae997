package engine

import "geister/game"

// Stack holds deep copies of past games for undo. Stored games never alias
// the live one.
type Stack struct {
	snapshots []*game.Game
}

func NewStack() *Stack {
	return &Stack{}
}

// Push stores a copy of g.
func (s *Stack) Push(g *game.Game) {
	s.snapshots = append(s.snapshots, g.Copy())
}

// Pop removes and returns the most recent snapshot. Popping the last snapshot
// puts a copy of it back, so the stack never empties once it has been pushed
// to. Popping an empty stack returns false.
func (s *Stack) Pop() (*game.Game, bool) {
	n := len(s.snapshots)
	if n == 0 {
		return nil, false
	}
	top := s.snapshots[n-1]
	s.snapshots[n-1] = nil
	s.snapshots = s.snapshots[:n-1]
	if len(s.snapshots) == 0 {
		s.snapshots = append(s.snapshots, top.Copy())
	}
	return top, true
}

// drop discards the most recent snapshot without restoring it.
func (s *Stack) drop() {
	if n := len(s.snapshots); n > 1 {
		s.snapshots = s.snapshots[:n-1]
	}
}

func (s *Stack) Len() int {
	return len(s.snapshots)
}

func (s *Stack) Clear() {
	s.snapshots = nil
}

// Snapshots returns copies of the stored games, oldest first.
func (s *Stack) Snapshots() []*game.Game {
	out := make([]*game.Game, len(s.snapshots))
	for i, g := range s.snapshots {
		out[i] = g.Copy()
	}
	return out
}
