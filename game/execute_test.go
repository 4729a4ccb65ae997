package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestExecute(t *testing.T) {
	t.Run("plain step", func(t *testing.T) {
		g := NewGame()
		move := mustMove(t, g, 1, 4, North)

		captured, ok := g.Execute(move)

		require.False(t, ok)
		require.Equal(t, NoPiece, captured)
		require.Equal(t, 1, g.MovesPlayed)
		require.Equal(t, move, *g.LastMove)
		require.Equal(t, Piece{X: 1, Y: 3, Color: Red}, g.Players[Self].Pieces[0])
	})

	t.Run("capture moves the victim to the sentinel", func(t *testing.T) {
		g := NewGame()
		place(g, Self, 0, 1, 2)

		captured, ok := g.Execute(mustMove(t, g, 1, 2, North))

		require.True(t, ok)
		require.Equal(t, PieceRef{Owner: Opponent, Index: 4}, captured)
		victim := g.Piece(captured)
		require.Equal(t, LocCaptured, victim.X)
		require.Equal(t, LocCaptured, victim.Y)
		require.True(t, victim.Captured())

		owner, piece := g.PieceAt(1, 1)
		require.Equal(t, Self, owner)
		require.Same(t, &g.Players[Self].Pieces[0], piece)
		require.Equal(t, 1, g.Players[Opponent].Counts().Captured)
	})

	t.Run("escape west lands on the west sentinel", func(t *testing.T) {
		g := NewGame()
		place(g, Self, 4, 0, 0)

		_, ok := g.Execute(mustMove(t, g, 0, 0, West))

		require.False(t, ok)
		require.Equal(t, LocEscapedWest, g.Players[Self].Pieces[4].X)
		require.True(t, g.Players[Self].Pieces[4].Escaped())
		require.Equal(t, 1, g.Players[Self].Counts().Escaped)
	})

	t.Run("escape east lands on the east sentinel", func(t *testing.T) {
		g := NewGame()
		place(g, Opponent, 3, BoardWidth-1, BoardHeight-1)

		g.Execute(mustMove(t, g, BoardWidth-1, BoardHeight-1, East))

		require.Equal(t, LocEscapedEast, g.Players[Opponent].Pieces[3].X)
		require.Equal(t, 1, g.Players[Opponent].Counts().Escaped)
	})
}

// Random playouts never stack two pieces on one square.
func TestExecuteKeepsSquaresExclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 50; game++ {
		g := NewGame()
		player := Self
		for step := 0; step < 200 && !g.IsOver(); step++ {
			moves := g.LegalMoves(player)
			if len(moves) == 0 {
				break
			}
			move := moves[rng.Intn(len(moves))]
			if ref, ok := g.Execute(move); ok && ref.Owner == Opponent {
				// Reveal at random so the color thresholds get exercised
				g.Piece(ref).Color = Color(1 + rng.Intn(2))
			}

			seen := map[[2]int]bool{}
			for _, p := range g.Players {
				for _, piece := range p.Pieces {
					if !piece.OnBoard() {
						continue
					}
					square := [2]int{piece.X, piece.Y}
					require.False(t, seen[square], "square %v holds two pieces after %s", square, move)
					seen[square] = true
				}
			}
			player = player.Other()
		}
	}
}
