package generation

import (
	"fmt"
	"math/rand/v2"
)

// DefaultMaxAttempts bounds the outer retry loop
const DefaultMaxAttempts = 5

// SeedPolicy selects how each attempt is seeded
type SeedPolicy int

const (
	// SeedRandom draws a fresh seed for every attempt
	SeedRandom SeedPolicy = iota
	// SeedFixed derives every attempt from Config.Seed
	SeedFixed
)

func (p SeedPolicy) String() string {
	if p == SeedFixed {
		return "fixed"
	}
	return "random"
}

// Config holds the parameters of a generation request
type Config struct {
	TargetModules int
	MaxAttempts   int
	SeedPolicy    SeedPolicy
	Seed          int64

	Start      Vec2    // root module position
	Shrink     float64 // overlap margin scale, 0.95 leaves 5%
	ProbeSize  Size    // box used to check an open door can still expand
	BroadPhase BroadPhase
	CellSize   float64 // grid cell size for BroadPhaseGrid

	Host       Host
	Observer   Observer
	SeedSource func() int64 // used by SeedRandom
}

// DefaultConfig returns the standard settings
func DefaultConfig() Config {
	return Config{
		TargetModules: 15,
		MaxAttempts:   DefaultMaxAttempts,
		SeedPolicy:    SeedRandom,
		Shrink:        DefaultShrink,
		ProbeSize:     Size{1, 1},
		BroadPhase:    BroadPhaseLinear,
		CellSize:      4,
	}
}

// Option tweaks a Config
type Option func(*Config)

// WithTarget sets the exact number of modules to produce
func WithTarget(n int) Option {
	return func(c *Config) { c.TargetModules = n }
}

// WithSeed switches to the fixed seed policy
func WithSeed(seed int64) Option {
	return func(c *Config) {
		c.SeedPolicy = SeedFixed
		c.Seed = seed
	}
}

// WithRandomSeed switches to the random seed policy with an optional seed source
func WithRandomSeed(source func() int64) Option {
	return func(c *Config) {
		c.SeedPolicy = SeedRandom
		c.SeedSource = source
	}
}

// WithMaxAttempts bounds the retry loop
func WithMaxAttempts(n int) Option {
	return func(c *Config) { c.MaxAttempts = n }
}

// WithHost sets the instance lifecycle host
func WithHost(h Host) Option {
	return func(c *Config) { c.Host = h }
}

// WithObserver registers an event callback
func WithObserver(o Observer) Option {
	return func(c *Config) { c.Observer = o }
}

// WithBroadPhase selects the spatial index
func WithBroadPhase(mode BroadPhase, cellSize float64) Option {
	return func(c *Config) {
		c.BroadPhase = mode
		c.CellSize = cellSize
	}
}

// WithStart sets the root module position
func WithStart(pos Vec2) Option {
	return func(c *Config) { c.Start = pos }
}

// NewConfig applies options over DefaultConfig
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate reports configuration errors
func (c Config) Validate() error {
	if c.TargetModules < 2 {
		return fmt.Errorf("%w (got %d)", ErrTargetTooSmall, c.TargetModules)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1 (got %d)", ErrInvalidConfig, c.MaxAttempts)
	}
	if c.ProbeSize.W <= 0 || c.ProbeSize.H <= 0 {
		return fmt.Errorf("%w: probe size must be positive", ErrInvalidConfig)
	}
	return nil
}

// attemptSeed returns the seed for a 1-based attempt number.
// The fixed policy hands out the same seed on every attempt.
func (c Config) attemptSeed(attempt int) int64 {
	if c.SeedPolicy == SeedFixed {
		return c.Seed
	}
	if c.SeedSource != nil {
		return c.SeedSource()
	}
	return rand.Int64()
}
