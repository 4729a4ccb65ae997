package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"geister/agent"
	"geister/game"
)

func TestReferee(t *testing.T) {
	t.Run("deals four of each color", func(t *testing.T) {
		r := NewReferee(rand.New(rand.NewSource(5)), agent.NewRandomAgent(game.Opponent, agent.WithSeed(5)))

		reds := 0
		for _, c := range r.Colors() {
			require.Contains(t, []game.Color{game.Red, game.Blue}, c)
			if c == game.Red {
				reds++
			}
		}
		require.Equal(t, game.MaxPieces/2, reds)
	})

	t.Run("discloses the dealt color", func(t *testing.T) {
		r := NewReferee(rand.New(rand.NewSource(5)), agent.NewRandomAgent(game.Opponent, agent.WithSeed(5)))
		colors := r.Colors()

		for i := range colors {
			require.Equal(t, colors[i], r.Disclose(game.PieceRef{Owner: game.Opponent, Index: i}))
		}
	})

	t.Run("plays the opponent with true colors", func(t *testing.T) {
		r := NewReferee(rand.New(rand.NewSource(5)), agent.NewRandomAgent(game.Opponent, agent.WithSeed(5)))
		g := game.NewGame()

		move, err := r.OpponentMove(g)

		require.NoError(t, err)
		require.Equal(t, game.Opponent, move.Player)
		require.True(t, g.IsLegal(move))
		for i, piece := range g.Players[game.Opponent].Pieces {
			require.Equal(t, r.Colors()[i], piece.Color)
		}
	})
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	tallies, err := Run(Config{Name: "smoke", Games: 4, Seed: 11, MaxMoves: 200, OutDir: dir})

	require.NoError(t, err)
	require.Len(t, tallies, len(policyConfigs))
	for _, config := range policyConfigs {
		require.Equal(t, 4, tallies[config.ID].Games())
	}

	runs, err := os.ReadDir(filepath.Join(dir, "smoke"))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	base := filepath.Join(dir, "smoke", runs[0].Name())

	records := readCSV(t, filepath.Join(base, "game_records.csv"))
	require.Equal(t, []string{"id", "agent", "starting_player", "outcome", "total_moves", "start_time", "end_time", "duration"}, records[0])
	require.Len(t, records, 1+4*len(policyConfigs))
	require.Equal(t, "self", records[1][2])
	require.Equal(t, "opponent", records[2][2])

	configs := readCSV(t, filepath.Join(base, "agent_configs.csv"))
	require.Len(t, configs, 1+len(policyConfigs))
	require.Equal(t, "11", configs[1][2])

	moves := readCSV(t, filepath.Join(base, "move_records.csv"))
	require.Greater(t, len(moves), 1)
}

func TestRunIsReproducible(t *testing.T) {
	first, err := Run(Config{Games: 6, Seed: 21, MaxMoves: 150})
	require.NoError(t, err)
	second, err := Run(Config{Games: 6, Seed: 21, MaxMoves: 150})
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestRunThroughput(t *testing.T) {
	result, err := RunThroughput(Config{Games: 2, Seed: 3, MaxMoves: 100})

	require.NoError(t, err)
	require.Equal(t, 2, result.Games)
	require.Positive(t, result.Moves)
}

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}
