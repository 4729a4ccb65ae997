package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"geister/agent"
	"geister/engine"
	"geister/experiments/metrics"
	"geister/game"
	"geister/meta"
)

const (
	PolicyRules  = "rules"
	PolicyRandom = "random"
)

type Config struct {
	Name     string
	Games    int    // Per agent config
	Seed     uint64 // 0 seeds from the clock
	MaxMoves int
	OutDir   string // Empty skips writing CSVs
}

// Tally counts outcomes for one agent config.
type Tally struct {
	Won        int
	Lost       int
	Unfinished int
}

func (t Tally) Games() int {
	return t.Won + t.Lost + t.Unfinished
}

// The rule policy against a random automated side, both facing a random opponent.
var policyConfigs = []metrics.AgentConfig{
	{ID: 0, Policy: PolicyRandom},
	{ID: 1, Policy: PolicyRules},
}

// Run plays cfg.Games games per agent config, alternating who moves first,
// and returns the outcomes keyed by AgentConfig.ID.
func Run(cfg Config) (map[int]Tally, error) {
	if cfg.Name == "" {
		cfg.Name = "policy_vs_random"
	}
	if cfg.Games <= 0 {
		cfg.Games = meta.NUM_GAMES
	}
	if cfg.MaxMoves <= 0 {
		cfg.MaxMoves = meta.MAX_TURNS
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	configs := make([]metrics.AgentConfig, len(policyConfigs))
	for i, config := range policyConfigs {
		config.Seed = cfg.Seed
		configs[i] = config
	}

	count := 0
	tallies := map[int]Tally{}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", cfg.Name)

	for ci, config := range configs {
		log.Info().Msgf("starting config %d of %d: %+v", ci+1, len(configs), config)

		for i := 0; i < cfg.Games; i++ {
			first := game.Self
			if i%2 == 1 {
				first = game.Opponent
			}
			seed := config.Seed + uint64(i)

			gameMetric, moveMetrics, err := runGame(config, first, seed, cfg.MaxMoves)
			if err != nil {
				return nil, fmt.Errorf("config %d game %d: %w", config.ID, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent:      config.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			tally := tallies[config.ID]
			switch gameMetric.Outcome {
			case game.Won.String():
				tally.Won++
			case game.Lost.String():
				tally.Lost++
			default:
				tally.Unfinished++
			}
			tallies[config.ID] = tally

			log.Debug().Msgf("config %d game %d of %d ended %s after %d moves", config.ID, i+1, cfg.Games, gameMetric.Outcome, gameMetric.TotalMoves)
		}

		t := tallies[config.ID]
		log.Info().Msgf("completed config %d: won %d, lost %d, unfinished %d", config.ID, t.Won, t.Lost, t.Unfinished)
	}

	log.Info().Msgf("completed %s experiment", cfg.Name)

	if cfg.OutDir == "" {
		return tallies, nil
	}
	err := store(cfg, configs, gameRecords, moveRecords)
	return tallies, err
}

func store(cfg Config, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(cfg.OutDir, cfg.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(games)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moves)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored move records")
	return nil
}

// runGame plays one game of the configured automated side against a random
// opponent with randomly dealt colors.
func runGame(config metrics.AgentConfig, first game.PlayerID, seed uint64, maxMoves int) (metrics.GameMetric, []metrics.MoveMetric, error) {
	referee := NewReferee(
		rand.New(rand.NewSource(seed)),
		agent.NewRandomAgent(game.Opponent, agent.WithSeed(seed+1)),
	)
	match := &engine.Match{
		Session:   engine.NewSession(newAgent(config, seed)),
		Referee:   referee,
		First:     first,
		MaxMoves:  maxMoves,
		Collector: metrics.NewCollector(),
	}
	return match.Run()
}

func newAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	if config.Policy == PolicyRandom {
		return agent.NewRandomAgent(game.Self, agent.WithSeed(seed))
	}
	return agent.NewRulePolicy(agent.WithSeed(seed))
}
