package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"levelgen.dev/internal/catalog"
	"levelgen.dev/internal/generation"
	"levelgen.dev/internal/models"
)

// deadEndYAML never closes above two modules: its only normal module is a dead end
const deadEndYAML = `
name: dead_ends
modules:
  - name: entry_r
    size: {w: 1, h: 1}
    doors:
      - offset: {x: 0.5, y: 0}
      - offset: {x: -0.5, y: 0}
        entrance_exit: true
  - name: dead_l
    size: {w: 1, h: 1}
    doors:
      - offset: {x: -0.5, y: 0}
`

func newTestServices(t *testing.T) (*CatalogService, *LayoutService) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dead_ends.yaml")
	if err := os.WriteFile(path, []byte(deadEndYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cs, err := NewCatalogService(path)
	if err != nil {
		t.Fatalf("NewCatalogService: %v", err)
	}
	return cs, NewLayoutService(cs, LayoutDefaults{Target: 5, MaxAttempts: 3, MaxTarget: 40, AttemptLimit: 5})
}

func seed(v int64) *int64 { return &v }

func TestCatalogServiceListsBuiltinsAndFile(t *testing.T) {
	cs, _ := newTestServices(t)

	list := cs.List()
	want := []string{"basic", "corridors", "cross", "dead_ends"}
	if len(list) != len(want) {
		t.Fatalf("List() returned %d catalogs", len(list))
	}
	for i, s := range list {
		if s.Name != want[i] {
			t.Fatalf("catalog %d = %s, want %s", i, s.Name, want[i])
		}
	}
	if list[3].Terminal != 1 || list[3].Normal != 1 || len(list[3].Modules) != 2 {
		t.Fatalf("dead_ends summary %+v", list[3])
	}

	if _, err := cs.Get("missing"); !errors.Is(err, ErrCatalogNotFound) {
		t.Fatalf("Get(missing) = %v", err)
	}
	def, err := cs.Definition("dead_ends")
	if err != nil || def.Modules[0].Doors[0].Side != "right" {
		t.Fatalf("Definition: %+v, %v", def, err)
	}
}

func TestCatalogServiceRegisterRejectsInvalid(t *testing.T) {
	cs, _ := newTestServices(t)
	err := cs.Register(&catalog.Definition{Name: "empty"})
	if !errors.Is(err, generation.ErrInvalidConfig) {
		t.Fatalf("Register(empty) = %v", err)
	}
	if _, err := cs.Get("empty"); err == nil {
		t.Fatalf("invalid catalog was registered")
	}
}

func TestLayoutServiceGenerate(t *testing.T) {
	_, ls := newTestServices(t)

	layout, err := ls.Generate(context.Background(), models.GenerateRequest{Catalog: "cross", Seed: seed(3), ASCII: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !layout.Success || layout.Target != 5 || len(layout.Modules) != 5 {
		t.Fatalf("unexpected layout: success=%v target=%d modules=%d", layout.Success, layout.Target, len(layout.Modules))
	}
	if len(layout.Connections) != 4 || layout.OpenDoors != 0 {
		t.Fatalf("connections=%d open=%d", len(layout.Connections), layout.OpenDoors)
	}
	if layout.ID == "" || layout.ASCII == "" || *layout.Seed != 3 {
		t.Fatalf("missing id, seed or ascii")
	}

	// Replaying the attempt seed as a fixed seed reproduces the map
	again, err := ls.Generate(context.Background(), models.GenerateRequest{Catalog: "cross", Seed: seed(layout.AttemptSeed)})
	if err != nil {
		t.Fatal(err)
	}
	for i := range layout.Modules {
		if layout.Modules[i].Template != again.Modules[i].Template || layout.Modules[i].Position != again.Modules[i].Position {
			t.Fatalf("module %d differs on replay", i)
		}
	}
}

func TestLayoutServiceReportsFailures(t *testing.T) {
	_, ls := newTestServices(t)
	ctx := context.Background()

	layout, err := ls.Generate(ctx, models.GenerateRequest{Catalog: "dead_ends", Target: 3})
	if !errors.Is(err, generation.ErrNoMapProduced) {
		t.Fatalf("expected ErrNoMapProduced, got %v", err)
	}
	if layout == nil || layout.Success || layout.Attempts != 3 || len(layout.Modules) != 0 {
		t.Fatalf("unexpected failed layout %+v", layout)
	}

	if _, err := ls.Generate(ctx, models.GenerateRequest{Catalog: "nope"}); !errors.Is(err, ErrCatalogNotFound) {
		t.Fatalf("unknown catalog: %v", err)
	}
	if _, err := ls.Generate(ctx, models.GenerateRequest{Catalog: "cross", Target: 1}); !errors.Is(err, generation.ErrTargetTooSmall) {
		t.Fatalf("target 1: %v", err)
	}
}

func TestLayoutServiceClampsRequestSizes(t *testing.T) {
	_, ls := newTestServices(t)
	ctx := context.Background()

	layout, err := ls.Generate(ctx, models.GenerateRequest{Catalog: "corridors", Target: 100000, Seed: seed(4)})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if layout.Target != 40 || len(layout.Modules) != 40 {
		t.Fatalf("target not clamped: target=%d modules=%d", layout.Target, len(layout.Modules))
	}

	failed, err := ls.Generate(ctx, models.GenerateRequest{Catalog: "dead_ends", Target: 3, MaxAttempts: 1 << 30})
	if !errors.Is(err, generation.ErrNoMapProduced) {
		t.Fatalf("expected ErrNoMapProduced, got %v", err)
	}
	if failed.Attempts != 5 {
		t.Fatalf("attempts = %d, want the limit of 5", failed.Attempts)
	}

	if _, err := ls.Get(ctx, "corridors", 4, 100000); err != nil {
		t.Fatal(err)
	}
	if _, err := ls.Get(ctx, "corridors", 4, 40); err != nil || ls.CacheSize() != 1 {
		t.Fatalf("clamped and explicit targets cached separately: %v", err)
	}
}

func TestLayoutServiceGetCaches(t *testing.T) {
	_, ls := newTestServices(t)
	ctx := context.Background()

	first, err := ls.Get(ctx, "corridors", 42, 6)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ls.Get(ctx, "corridors", 42, 6)
	if err != nil {
		t.Fatal(err)
	}
	if first != second || ls.CacheSize() != 1 {
		t.Fatalf("second Get was not served from cache")
	}
	if first.ASCII == "" {
		t.Fatalf("cached layout has no ascii rendering")
	}

	if _, err := ls.Get(ctx, "dead_ends", 42, 3); err == nil {
		t.Fatalf("failed layout returned without error")
	}
	if ls.CacheSize() != 1 {
		t.Fatalf("failed layout was cached")
	}
}

func TestLayoutServiceBatch(t *testing.T) {
	_, ls := newTestServices(t)
	var mu sync.Mutex
	produced := 0
	ls.OnLayout = func(*models.Layout) {
		mu.Lock()
		produced++
		mu.Unlock()
	}

	resp, err := ls.GenerateBatch(context.Background(), models.BatchRequest{
		Catalog: "corridors", Target: 6, Seeds: []int64{1, 2, 3, 4, 5, 6, 7, 8}, Workers: 3,
	})
	if err != nil {
		t.Fatalf("GenerateBatch: %v", err)
	}
	if resp.ID == "" || resp.Succeeded != 8 || resp.Failed != 0 || len(resp.Layouts) != 8 {
		t.Fatalf("unexpected batch %+v", resp)
	}
	for i, l := range resp.Layouts {
		if *l.Seed != int64(i+1) {
			t.Fatalf("layout %d has seed %d, order not kept", i, *l.Seed)
		}
	}
	if produced != 8 {
		t.Fatalf("OnLayout called %d times", produced)
	}

	failing, err := ls.GenerateBatch(context.Background(), models.BatchRequest{Catalog: "dead_ends", Target: 3, Count: 4})
	if err != nil {
		t.Fatalf("exhausted runs must not abort the batch: %v", err)
	}
	if failing.Failed != 4 {
		t.Fatalf("failed = %d, want 4", failing.Failed)
	}

	if _, err := ls.GenerateBatch(context.Background(), models.BatchRequest{Catalog: "corridors"}); !errors.Is(err, generation.ErrInvalidConfig) {
		t.Fatalf("empty batch: %v", err)
	}
	if _, err := ls.GenerateBatch(context.Background(), models.BatchRequest{Catalog: "nope", Count: 2}); !errors.Is(err, ErrCatalogNotFound) {
		t.Fatalf("unknown catalog batch: %v", err)
	}
}

func TestLayoutServiceStreamForwardsEvents(t *testing.T) {
	_, ls := newTestServices(t)

	var events []models.LayoutEvent
	layout, err := ls.Stream(context.Background(), models.GenerateRequest{Catalog: "corridors", Target: 4, Seed: seed(8)},
		func(e models.LayoutEvent) { events = append(events, e) })
	if err != nil {
		t.Fatal(err)
	}

	if len(events) < 2 || events[0].Kind != "attempt_start" || events[len(events)-1].Kind != "succeeded" {
		t.Fatalf("unexpected event sequence: %d events", len(events))
	}
	placed := 0
	for _, e := range events {
		if e.Kind == "placed" {
			placed++
			if e.Position == nil || e.Template == "" {
				t.Fatalf("placement event without position or template")
			}
		}
	}
	if placed < len(layout.Modules)-1 {
		t.Fatalf("%d placements streamed for %d modules", placed, len(layout.Modules))
	}
}
