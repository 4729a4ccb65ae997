package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"geister/meta"
)

type Config struct {
	Addr     string // GEISTER_ADDR
	DB       string // GEISTER_DB, empty keeps sessions in memory
	Seed     uint64 // GEISTER_SEED, 0 seeds from the clock
	LogLevel zerolog.Level
	Games    int    // GEISTER_GAMES, per agent config in experiments
	OutDir   string // GEISTER_OUT, where experiment CSVs go
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:   getEnv("GEISTER_ADDR", ":8080"),
		DB:     getEnv("GEISTER_DB", ""),
		OutDir: getEnv("GEISTER_OUT", "experiments"),
	}

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.Seed, err = strconv.ParseUint(getEnv("GEISTER_SEED", "0"), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("GEISTER_SEED: %w", err)
	}

	cfg.Games, err = strconv.Atoi(getEnv("GEISTER_GAMES", strconv.Itoa(meta.NUM_GAMES)))
	if err != nil {
		return Config{}, fmt.Errorf("GEISTER_GAMES: %w", err)
	}
	return cfg, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
