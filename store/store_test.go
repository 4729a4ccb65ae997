package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"geister/agent"
	"geister/engine"
	"geister/game"
)

// playedSession returns an export with an opponent move and a reply behind it.
func playedSession(t *testing.T) engine.Saved {
	s := engine.NewSession(agent.NewRulePolicy(agent.WithSeed(4)))
	require.NoError(t, s.ChooseFirst(game.Opponent))
	_, err := s.PlayOpponent(1, 1, game.South)
	require.NoError(t, err)
	require.NoError(t, s.Advance())
	return s.Export()
}

func testStore(t *testing.T, st Store) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		_, err := st.Load(ctx, "nobody")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		saved := playedSession(t)

		require.NoError(t, st.Save(ctx, "default", saved))
		loaded, err := st.Load(ctx, "default")

		require.NoError(t, err)
		require.Equal(t, saved, loaded)
	})

	t.Run("overwrite", func(t *testing.T) {
		first := playedSession(t)
		second := engine.NewSession(agent.NewRulePolicy()).Export()

		require.NoError(t, st.Save(ctx, "again", first))
		require.NoError(t, st.Save(ctx, "again", second))
		loaded, err := st.Load(ctx, "again")

		require.NoError(t, err)
		require.Equal(t, second, loaded)
	})

	t.Run("restores into a session", func(t *testing.T) {
		saved := playedSession(t)
		require.NoError(t, st.Save(ctx, "resume", saved))
		loaded, err := st.Load(ctx, "resume")
		require.NoError(t, err)

		s := engine.NewSession(agent.NewRulePolicy(agent.WithSeed(4)))
		require.NoError(t, s.Restore(loaded))

		require.Equal(t, saved.Game, s.Game())
		require.True(t, s.Undo())
		require.Equal(t, game.AwaitingOpponentMove, s.Phase())
		require.Equal(t, 0, s.Game().MovesPlayed)
	})
}

func TestMemory(t *testing.T) {
	st := NewMemory()
	defer st.Close()

	testStore(t, st)

	t.Run("stored copy is isolated", func(t *testing.T) {
		ctx := context.Background()
		saved := playedSession(t)
		require.NoError(t, st.Save(ctx, "isolated", saved))

		saved.Game.Phase = game.Won
		loaded, err := st.Load(ctx, "isolated")
		require.NoError(t, err)
		require.NotEqual(t, game.Won, loaded.Game.Phase)

		loaded.History[0].MovesPlayed = 99
		again, err := st.Load(ctx, "isolated")
		require.NoError(t, err)
		require.Equal(t, 0, again.History[0].MovesPlayed)
	})
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "geister.db")
	st, err := OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()

	testStore(t, st)

	t.Run("survives reopening", func(t *testing.T) {
		ctx := context.Background()
		saved := playedSession(t)
		require.NoError(t, st.Save(ctx, "durable", saved))
		require.NoError(t, st.Close())

		reopened, err := OpenSQLite(path)
		require.NoError(t, err)
		defer reopened.Close()

		loaded, err := reopened.Load(ctx, "durable")
		require.NoError(t, err)
		require.Equal(t, saved, loaded)
	})
}
