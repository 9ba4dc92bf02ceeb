// Package config reads runtime configuration from the environment.
// The match target and UCB exploration constant are deliberately
// runtime values rather than compile-time constants: both vary by
// house rules and tuning.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the values the match controller and searcher need,
// loaded from environment variables with sensible defaults.
type Config struct {
	// MatchTarget is the cumulative team score (0..30 per round) that
	// ends a match. House rules vary between 61 and 101; 61 is the
	// more common value and is the default here.
	MatchTarget int

	// MCTSThink is how long the searcher runs per decision.
	MCTSThink time.Duration

	// MCTSExploration is the UCB1 constant C, empirically tuned to
	// 4.5 rather than the canonical sqrt(2).
	MCTSExploration float64

	// MCTSArenaCapacity bounds the search's node arena.
	MCTSArenaCapacity int

	// RNGSeed seeds every RNG source the CLI creates, for reproducible
	// benchmarks. Zero means "seed from the current time".
	RNGSeed int64
}

// Load reads MATCH_TARGET, MCTS_THINK_MS, MCTS_EXPLORATION,
// MCTS_ARENA_CAPACITY and RNG_SEED from the environment, falling back
// to defaults for anything unset or unparsable.
func Load() Config {
	return Config{
		MatchTarget:       envIntOrDefault("MATCH_TARGET", 61),
		MCTSThink:         time.Duration(envIntOrDefault("MCTS_THINK_MS", 500)) * time.Millisecond,
		MCTSExploration:   envFloatOrDefault("MCTS_EXPLORATION", 4.5),
		MCTSArenaCapacity: envIntOrDefault("MCTS_ARENA_CAPACITY", 500_000),
		RNGSeed:           int64(envIntOrDefault("RNG_SEED", 0)),
	}
}

func envIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloatOrDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
