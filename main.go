package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"geister/agent"
	"geister/config"
	"geister/engine"
	"geister/experiments"
	"geister/server"
	"geister/store"
)

func main() {
	mode := flag.String("mode", "serve", "serve | experiment | throughput")
	games := flag.Int("games", 0, "Games per agent config (overrides GEISTER_GAMES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if *games > 0 {
		cfg.Games = *games
	}

	switch *mode {
	case "serve":
		if err := serve(cfg); err != nil {
			log.Fatal().Err(err).Msg("serve failed")
		}
	case "experiment":
		_, err := experiments.Run(experiments.Config{
			Games:  cfg.Games,
			Seed:   cfg.Seed,
			OutDir: cfg.OutDir,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
	case "throughput":
		if _, err := experiments.RunThroughput(experiments.Config{Games: cfg.Games, Seed: cfg.Seed}); err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

// serve runs the HTTP server until it exits. The store is closed on every
// return path.
func serve(cfg config.Config) error {
	st := store.NewMemory()
	if cfg.DB != "" {
		var err error
		st, err = store.OpenSQLite(cfg.DB)
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
	}
	defer st.Close()

	session := engine.NewSession(agent.NewRulePolicy(agent.WithSeed(cfg.Seed)))
	srv := server.New(session, st)
	if err := srv.Restore(context.Background()); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	log.Info().Str("addr", cfg.Addr).Msg("starting geister server")
	return srv.Start(cfg.Addr)
}
