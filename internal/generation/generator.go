package generation

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoMapProduced is returned when every attempt failed to reach the target
var ErrNoMapProduced = errors.New("no map produced")

// MapGenerator runs the attempt loop over a catalog
type MapGenerator struct {
	catalog *Catalog
	config  Config
	host    Host
}

// NewMapGenerator creates a generator for the given catalog and config
func NewMapGenerator(catalog *Catalog, config Config) *MapGenerator {
	host := config.Host
	if host == nil {
		host = NewMemoryHost()
	}
	return &MapGenerator{catalog: catalog, config: config, host: host}
}

// GenerateMap is a convenience wrapper around NewMapGenerator(...).Generate
func GenerateMap(ctx context.Context, catalog *Catalog, opts ...Option) (*Result, error) {
	return NewMapGenerator(catalog, NewConfig(opts...)).Generate(ctx)
}

// Generate produces a layout of exactly TargetModules modules.
//
// Configuration errors are returned immediately with a nil result. When every
// attempt fails the result is non-nil with Success unset, and the error wraps
// ErrNoMapProduced. A done ctx ends the loop the same way with ctx.Err().
func (g *MapGenerator) Generate(ctx context.Context) (*Result, error) {
	if err := g.catalog.Validate(); err != nil {
		return nil, err
	}
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	res := &Result{State: StateIdle}
	emit := g.config.Observer

	for attempt := 1; attempt <= g.config.MaxAttempts; attempt++ {
		// 1. Seed a fresh session
		seed := g.config.attemptSeed(attempt)
		g.host.ClearExistingMap()
		s := newSession(g.catalog, &g.config, g.host, attempt, seed)
		s.emitState(EventAttemptStarted, StateSeeding)

		// 2. Expand
		err := s.run(ctx)

		res.Attempts = attempt
		res.Seed = seed
		res.Iterations = s.passes

		// 3. Keep the map only if it is closed at exactly the target size
		if err == nil && s.succeeded() {
			res.Success = true
			res.State = StateSucceeded
			res.Modules = s.modules
			s.emitState(EventSucceeded, StateSucceeded)
			return res, nil
		}

		s.emitState(EventAttemptFailed, StateRetrying)
		s.teardown()

		if err != nil {
			res.State = StateTerminated
			return res, fmt.Errorf("generation stopped after %d attempts: %w", attempt, err)
		}
	}

	res.State = StateTerminated
	if emit != nil {
		emit(Event{Kind: EventFailed, State: StateTerminated, Attempt: res.Attempts, Seed: res.Seed, Pass: res.Iterations})
	}
	return res, fmt.Errorf("%w after %d attempts", ErrNoMapProduced, res.Attempts)
}
