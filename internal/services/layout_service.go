package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"levelgen.dev/internal/generation"
	"levelgen.dev/internal/models"
	"levelgen.dev/internal/render"
)

// MaxBatchSize caps the number of layouts in one batch request
const MaxBatchSize = 256

// Server-side ceilings for request-supplied generation sizes
const (
	DefaultMaxTarget    = 200
	DefaultAttemptLimit = 50
)

// LayoutDefaults are applied to requests that leave a field unset.
// MaxTarget and AttemptLimit cap what a request may ask for.
type LayoutDefaults struct {
	Target       int
	MaxAttempts  int
	MaxTarget    int
	AttemptLimit int
	BroadPhase   generation.BroadPhase
}

type layoutKey struct {
	catalog string
	seed    int64
	target  int
}

// LayoutService generates layouts and caches fixed-seed results
type LayoutService struct {
	catalogs *CatalogService
	defaults LayoutDefaults

	mu    sync.Mutex
	cache map[layoutKey]*models.Layout

	// OnLayout, when set, is called with every layout produced
	OnLayout func(*models.Layout)
}

// NewLayoutService creates a new LayoutService
func NewLayoutService(cs *CatalogService, defaults LayoutDefaults) *LayoutService {
	if defaults.Target == 0 {
		defaults.Target = generation.DefaultConfig().TargetModules
	}
	if defaults.MaxAttempts == 0 {
		defaults.MaxAttempts = generation.DefaultMaxAttempts
	}
	if defaults.MaxTarget == 0 {
		defaults.MaxTarget = DefaultMaxTarget
	}
	if defaults.AttemptLimit == 0 {
		defaults.AttemptLimit = DefaultAttemptLimit
	}
	return &LayoutService{
		catalogs: cs,
		defaults: defaults,
		cache:    make(map[layoutKey]*models.Layout),
	}
}

// Generate runs one generation request.
// When no map could be produced the failed layout is returned along with an
// error wrapping generation.ErrNoMapProduced.
func (s *LayoutService) Generate(ctx context.Context, req models.GenerateRequest) (*models.Layout, error) {
	return s.generate(ctx, req, nil)
}

// Stream runs a generation request and forwards every engine event to fn
func (s *LayoutService) Stream(ctx context.Context, req models.GenerateRequest, fn func(models.LayoutEvent)) (*models.Layout, error) {
	return s.generate(ctx, req, func(e generation.Event) { fn(NewLayoutEvent(e)) })
}

// Get returns the layout for a fixed seed, generating it on first use
func (s *LayoutService) Get(ctx context.Context, catalogName string, seed int64, target int) (*models.Layout, error) {
	target, _ = s.limits(target, 0)
	key := layoutKey{catalog: catalogName, seed: seed, target: target}

	// Check cache
	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	layout, err := s.Generate(ctx, models.GenerateRequest{Catalog: catalogName, Target: target, Seed: &seed, ASCII: true})
	if err != nil {
		return layout, err
	}

	// Cache it
	s.mu.Lock()
	s.cache[key] = layout
	s.mu.Unlock()

	return layout, nil
}

// CacheSize returns the number of cached layouts
func (s *LayoutService) CacheSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

// GenerateBatch runs many requests in parallel. Every run owns its session and host.
// Runs that exhaust their attempts are counted as failed; any other error aborts the batch.
func (s *LayoutService) GenerateBatch(ctx context.Context, req models.BatchRequest) (*models.BatchResponse, error) {
	seeds := req.Seeds
	if len(seeds) == 0 {
		if req.Count <= 0 {
			return nil, fmt.Errorf("%w: batch needs seeds or a positive count", generation.ErrInvalidConfig)
		}
		seeds = make([]int64, req.Count)
		for i := range seeds {
			seeds[i] = rand.Int64()
		}
	}
	if len(seeds) > MaxBatchSize {
		return nil, fmt.Errorf("%w: batch of %d exceeds %d", generation.ErrInvalidConfig, len(seeds), MaxBatchSize)
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	layouts := make([]*models.Layout, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, seed := range seeds {
		g.Go(func() error {
			layout, err := s.Generate(gctx, models.GenerateRequest{
				Catalog:     req.Catalog,
				Target:      req.Target,
				Seed:        &seed,
				MaxAttempts: req.MaxAttempts,
			})
			if err != nil && !errors.Is(err, generation.ErrNoMapProduced) {
				return err
			}
			layouts[i] = layout
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &models.BatchResponse{ID: uuid.NewString(), Layouts: make([]models.Layout, len(layouts))}
	for i, l := range layouts {
		resp.Layouts[i] = *l
		if l.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	log.Printf("batch %s: %d/%d layouts from %s", resp.ID, resp.Succeeded, len(seeds), req.Catalog)
	return resp, nil
}

func (s *LayoutService) generate(ctx context.Context, req models.GenerateRequest, observer generation.Observer) (*models.Layout, error) {
	cat, err := s.catalogs.Get(req.Catalog)
	if err != nil {
		return nil, err
	}

	target, attempts := s.limits(req.Target, req.MaxAttempts)

	opts := []generation.Option{
		generation.WithTarget(target),
		generation.WithMaxAttempts(attempts),
		generation.WithBroadPhase(s.defaults.BroadPhase, 0),
		generation.WithObserver(observer),
	}
	if req.Seed != nil {
		opts = append(opts, generation.WithSeed(*req.Seed))
	} else {
		opts = append(opts, generation.WithRandomSeed(nil))
	}

	res, err := generation.GenerateMap(ctx, cat, opts...)
	if res == nil {
		return nil, err
	}

	layout := NewLayout(req.Catalog, target, req.Seed, res)
	if req.ASCII {
		layout.ASCII = render.ASCII(res.Modules)
	}
	if s.OnLayout != nil {
		s.OnLayout(layout)
	}
	return layout, err
}

// limits fills unset sizes from the defaults and clamps them to the ceilings.
// Values below the engine minimum pass through so the engine can reject them.
func (s *LayoutService) limits(target, attempts int) (int, int) {
	if target == 0 {
		target = s.defaults.Target
	}
	if attempts == 0 {
		attempts = s.defaults.MaxAttempts
	}
	return min(target, s.defaults.MaxTarget), min(attempts, s.defaults.AttemptLimit)
}

// NewLayout converts an engine result into its transport form
func NewLayout(catalogName string, target int, seed *int64, res *generation.Result) *models.Layout {
	layout := &models.Layout{
		ID:          uuid.NewString(),
		Catalog:     catalogName,
		Target:      target,
		Seed:        seed,
		AttemptSeed: res.Seed,
		Success:     res.Success,
		Attempts:    res.Attempts,
		Iterations:  res.Iterations,
		Modules:     make([]models.PlacedModule, 0, len(res.Modules)),
		Connections: make([]models.Connection, 0, len(res.Modules)),
		OpenDoors:   len(res.OpenDoors()),
	}

	for _, m := range res.Modules {
		pm := models.PlacedModule{
			Handle:   int(m.Handle),
			Template: m.Template.Name(),
			Position: point(m.Position),
			Width:    m.Template.Size().W,
			Height:   m.Template.Size().H,
			Doors:    make([]models.PlacedDoor, len(m.Doors)),
		}
		for i, d := range m.Doors {
			pm.Doors[i] = models.PlacedDoor{
				Index:        d.Index,
				Side:         d.Side.String(),
				Position:     point(d.Position),
				Connected:    d.Connected,
				EntranceExit: d.EntranceExit,
			}
		}
		layout.Modules = append(layout.Modules, pm)
	}

	for _, c := range res.Connections() {
		layout.Connections = append(layout.Connections, models.Connection{
			A: models.DoorRef{Module: int(c.A.Module), Door: c.A.Index},
			B: models.DoorRef{Module: int(c.B.Module), Door: c.B.Index},
		})
	}

	return layout
}

// NewLayoutEvent converts an engine event into its transport form
func NewLayoutEvent(e generation.Event) models.LayoutEvent {
	le := models.LayoutEvent{
		Kind:    e.Kind.String(),
		State:   e.State.String(),
		Attempt: e.Attempt,
		Pass:    e.Pass,
		Seed:    e.Seed,
		Spawned: e.Spawned,
		Open:    e.Open,
	}
	if e.Kind == generation.EventModulePlaced || e.Kind == generation.EventModuleRolledBack {
		p := point(e.Position)
		le.Template = e.Template
		le.Position = &p
	}
	if e.Reason != generation.RollbackNone {
		le.Reason = e.Reason.String()
	}
	return le
}

func point(v generation.Vec2) models.Point {
	return models.Point{X: v.X, Y: v.Y}
}
