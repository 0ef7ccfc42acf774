package generation

import (
	"errors"
	"testing"
)

func TestDoorSideOppositeIsInvolution(t *testing.T) {
	for _, s := range []DoorSide{Left, Right, Top, Bottom} {
		if s.Opposite() == s {
			t.Errorf("%s is its own opposite", s)
		}
		if s.Opposite().Opposite() != s {
			t.Errorf("Opposite(Opposite(%s)) = %s", s, s.Opposite().Opposite())
		}
	}
	if Left.Opposite() != Right || Top.Opposite() != Bottom {
		t.Fatalf("unexpected opposite mapping")
	}
}

func TestSideFromOffsetUsesDominantAxis(t *testing.T) {
	cases := []struct {
		offset Vec2
		want   DoorSide
	}{
		{Vec2{X: 0.5}, Right},
		{Vec2{X: -0.5, Y: 0.2}, Left},
		{Vec2{X: 0.1, Y: 1}, Top},
		{Vec2{Y: -1.5}, Bottom},
	}
	for _, c := range cases {
		if got := SideFromOffset(c.offset); got != c.want {
			t.Errorf("SideFromOffset(%v) = %s, want %s", c.offset, got, c.want)
		}
	}
}

func TestParseDoorSideRoundTrip(t *testing.T) {
	for _, s := range []DoorSide{Left, Right, Top, Bottom} {
		got, err := ParseDoorSide(s.String())
		if err != nil || got != s {
			t.Errorf("ParseDoorSide(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseDoorSide("north"); err == nil {
		t.Fatalf("expected error for unknown side")
	}
}

func TestBoxTouchingEdgesDoNotIntersect(t *testing.T) {
	a := Box{Center: Vec2{}, Size: Size{W: 1, H: 1}}
	b := Box{Center: Vec2{X: 1}, Size: Size{W: 1, H: 1}}
	if a.Intersects(b) {
		t.Fatalf("flush boxes reported as intersecting")
	}
	c := Box{Center: Vec2{X: 0.9}, Size: Size{W: 1, H: 1}}
	if !a.Intersects(c) {
		t.Fatalf("overlapping boxes not detected")
	}
}

func TestNewModuleTemplateRejectsDoorOffBoundary(t *testing.T) {
	_, err := NewModuleTemplate("bad", Size{W: 2, H: 2}, []DoorTemplate{door(Vec2{X: 0.5})})
	if !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}
	_, err = NewModuleTemplate("flat", Size{W: 0, H: 1}, nil)
	if !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate for zero width, got %v", err)
	}
}

func TestNewModuleTemplateDerivesSides(t *testing.T) {
	tpl := MustModuleTemplate("hall", Size{W: 3, H: 1}, []DoorTemplate{
		{Offset: Vec2{X: -1.5}, Side: Top}, // wrong side is overwritten
		{Offset: Vec2{Y: 0.5}},
	})
	if tpl.Door(0).Side != Left {
		t.Errorf("door 0 side = %s, want left", tpl.Door(0).Side)
	}
	if tpl.Door(1).Side != Top {
		t.Errorf("door 1 side = %s, want top", tpl.Door(1).Side)
	}
}

func TestCompatibleDoorsSkipsEntranceExit(t *testing.T) {
	tpl := unitModule("t", door(offL), exitDoor(offR), door(offT))
	if got := tpl.CompatibleDoors(Left); len(got) != 0 {
		t.Fatalf("exit door offered for docking: %v", got)
	}
	got := tpl.CompatibleDoors(Right)
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("CompatibleDoors(Right) = %v, want [0]", got)
	}
	if !tpl.HasEntranceExit() {
		t.Fatalf("HasEntranceExit = false")
	}
}

func TestNewCatalogPartitions(t *testing.T) {
	c := crossCatalog(t)
	if len(c.Terminal) != 4 || len(c.Normal) != 5 {
		t.Fatalf("partition = %d terminal / %d normal", len(c.Terminal), len(c.Normal))
	}

	_, err := NewCatalog(entryTemplates())
	if !errors.Is(err, ErrEmptyNormal) || !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrEmptyNormal, got %v", err)
	}
	_, err = NewCatalog(deadEndTemplates())
	if !errors.Is(err, ErrEmptyTerminal) {
		t.Fatalf("expected ErrEmptyTerminal, got %v", err)
	}
}

func TestRNGIsDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("streams diverged at %d", i)
		}
	}

	items := []int{0, 1, 2, 3, 4, 5, 6, 7}
	Shuffle(NewRNG(7), items)
	seen := make(map[int]bool)
	for _, v := range items {
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Fatalf("shuffle lost elements: %v", items)
	}

	low := 0
	r := NewRNG(1)
	for i := 0; i < 1000; i++ {
		low += r.Intn(2)
	}
	if low < 400 || low > 600 {
		t.Fatalf("Intn(2) badly skewed: %d/1000", low)
	}
}
