package config

import (
	"log"
	"os"
	"strconv"

	"levelgen.dev/internal/generation"
)

// Config holds all application configuration
type Config struct {
	ServerAddr    string
	CatalogPath   string // optional catalog file registered next to the built-ins
	TargetModules int
	MaxAttempts   int
	BroadPhase    generation.BroadPhase

	// Ceilings for request-supplied sizes; zero keeps the service defaults
	MaxTarget    int
	AttemptLimit int
}

// Load reads configuration from the environment
func Load() *Config {
	serverAddr := os.Getenv("SERVER_ADDR")
	if serverAddr == "" {
		serverAddr = ":8080"
	}

	broadPhase, err := generation.ParseBroadPhase(os.Getenv("BROAD_PHASE"))
	if err != nil {
		log.Printf("Warning: %v, using linear", err)
	}

	return &Config{
		ServerAddr:    serverAddr,
		CatalogPath:   os.Getenv("CATALOG_PATH"),
		TargetModules: envInt("TARGET_MODULES", generation.DefaultConfig().TargetModules, 2),
		MaxAttempts:   envInt("MAX_ATTEMPTS", generation.DefaultMaxAttempts, 1),
		BroadPhase:    broadPhase,
		MaxTarget:     envInt("MAX_TARGET", 0, 2),
		AttemptLimit:  envInt("ATTEMPT_LIMIT", 0, 1),
	}
}

// envInt reads an integer variable, falling back to def when unset or below min
func envInt(name string, def, min int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		log.Printf("Warning: invalid %s=%q, using %d", name, raw, def)
		return def
	}
	return n
}
