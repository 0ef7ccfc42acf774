package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidateFlagsBrokenLayouts(t *testing.T) {
	a := newModuleInstance(1, unitModule("a", door(offR)), Vec2{})
	b := newModuleInstance(2, unitModule("b", door(offL)), Vec2{X: 1})
	a.Doors[0].Connected = true
	b.Doors[0].Connected = true

	ok := &Result{Success: true, Modules: []*ModuleInstance{a, b}}
	if err := Validate(ok, 2, DefaultShrink); err != nil {
		t.Fatalf("valid layout rejected: %v", err)
	}

	overlapping := newModuleInstance(3, unitModule("c"), Vec2{X: 0.5})
	bad := &Result{Modules: []*ModuleInstance{a, b, overlapping}}
	err := Validate(bad, 3, DefaultShrink)
	if !errors.Is(err, ErrInvalidLayout) || !strings.Contains(err.Error(), "overlap") {
		t.Fatalf("overlap not reported: %v", err)
	}
	if !strings.Contains(err.Error(), "reachable") {
		t.Fatalf("disconnected module not reported: %v", err)
	}

	b.Doors[0].Connected = false
	err = Validate(ok, 2, DefaultShrink)
	if err == nil || !strings.Contains(err.Error(), "open") || !strings.Contains(err.Error(), "counterparts") {
		t.Fatalf("dangling connection not reported: %v", err)
	}
}

func TestResultGraphOfPlusShape(t *testing.T) {
	res, err := GenerateMap(context.Background(), crossCatalog(t), WithTarget(5), WithSeed(11))
	if err != nil {
		t.Fatal(err)
	}

	g := res.Graph()
	if len(g.Nodes) != 5 || len(g.Edges) != 4 {
		t.Fatalf("graph has %d nodes and %d edges", len(g.Nodes), len(g.Edges))
	}
	if !g.IsConnected(res.Modules[0].Handle) {
		t.Fatalf("plus shape is not connected")
	}
	for _, m := range res.Modules {
		want := 1
		if m.Template.Name() == "cross" {
			want = 4
		}
		if g.Degree(m.Handle) != want {
			t.Fatalf("%s has degree %d, want %d", m.Template.Name(), g.Degree(m.Handle), want)
		}
	}

	root, last := res.Modules[0], res.Modules[4]
	path := g.Path(root.Handle, last.Handle)
	if len(path) != 3 || path[0] != root.Handle || path[2] != last.Handle || res.Module(path[1]).Template.Name() != "cross" {
		t.Fatalf("root to last path = %v", path)
	}
	e, ok := g.Edge(path[1], last.Handle)
	if !ok || e.From != path[1] || !last.Doors[e.ToDoor].Connected || !res.Module(path[1]).Doors[e.FromDoor].Connected {
		t.Fatalf("edge cross->last = %+v, %v", e, ok)
	}
	if !res.Module(e.From).Doors[e.FromDoor].Position.Equal(last.Doors[e.ToDoor].Position) {
		t.Fatalf("edge doors do not meet")
	}

	lonely := NewGraph()
	lonely.AddNode(1)
	lonely.AddNode(2)
	if lonely.IsConnected(1) || lonely.Reachable(3).Size() != 0 {
		t.Fatalf("disconnected graph reported as connected")
	}
	if lonely.Path(1, 2) != nil || lonely.Path(3, 1) != nil {
		t.Fatalf("path found across a disconnected graph")
	}
	if p := lonely.Path(1, 1); len(p) != 1 {
		t.Fatalf("path to self = %v", p)
	}
}
