package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"geister/experiments/metrics"
	"geister/game"
	"geister/meta"
)

type Throughput struct {
	Games       int
	Moves       int
	Duration    time.Duration
	MovesPerSec float64
}

// RunThroughput times cfg.Games games of the rule policy against a random
// opponent. Nothing is written to disk.
func RunThroughput(cfg Config) (Throughput, error) {
	if cfg.Games <= 0 {
		cfg.Games = meta.NUM_GAMES
	}
	if cfg.MaxMoves <= 0 {
		cfg.MaxMoves = meta.MAX_TURNS
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	config := metrics.AgentConfig{ID: 1, Policy: PolicyRules, Seed: cfg.Seed}

	log.Info().Msg("starting throughput experiment...")

	result := Throughput{Games: cfg.Games}
	start := time.Now()
	for i := 0; i < cfg.Games; i++ {
		first := game.Self
		if i%2 == 1 {
			first = game.Opponent
		}
		gameMetric, _, err := runGame(config, first, cfg.Seed+uint64(i), cfg.MaxMoves)
		if err != nil {
			return Throughput{}, fmt.Errorf("game %d: %w", i+1, err)
		}
		result.Moves += gameMetric.TotalMoves
	}
	result.Duration = time.Since(start)
	if seconds := result.Duration.Seconds(); seconds > 0 {
		result.MovesPerSec = float64(result.Moves) / seconds
	}

	log.Info().Msgf("completed throughput experiment: %d games, %d moves in %s (%.0f moves/s)",
		result.Games, result.Moves, result.Duration, result.MovesPerSec)
	return result, nil
}
