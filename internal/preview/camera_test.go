package preview

import (
	"math"
	"testing"

	"levelgen.dev/internal/generation"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestWorldToScreenFlipsY(t *testing.T) {
	c := NewCamera(32)
	x, y := c.WorldToScreen(generation.Vec2{X: 1, Y: 1}, 640, 480)
	if !near(x, 352) || !near(y, 208) {
		t.Fatalf("WorldToScreen = (%v,%v), want (352,208)", x, y)
	}
}

func TestPanIsZoomIndependent(t *testing.T) {
	c := NewCamera(32)
	c.ZoomBy(2)
	c.Pan(64, 0)
	if c.X != 1 {
		t.Fatalf("panning 64px at 64px/unit moved %v units", c.X)
	}
	c.Pan(0, 64)
	if c.Y != -1 {
		t.Fatalf("panning down should move the camera to negative world Y, got %v", c.Y)
	}
}

func TestZoomIsClamped(t *testing.T) {
	c := NewCamera(32)
	c.ZoomBy(1000)
	if c.Zoom != zoomMax {
		t.Fatalf("zoom = %v", c.Zoom)
	}
	c.ZoomBy(1e-6)
	if c.Zoom != zoomMin {
		t.Fatalf("zoom = %v", c.Zoom)
	}
}

func TestFitCentresLayout(t *testing.T) {
	tpl := generation.MustModuleTemplate("room", generation.Size{W: 1, H: 1}, nil)
	modules := []*generation.ModuleInstance{
		{Template: tpl, Position: generation.Vec2{}},
		{Template: tpl, Position: generation.Vec2{X: 4}},
	}
	c := NewCamera(32)
	c.Fit(modules, 640, 480)

	if c.X != 2 || c.Y != 0 {
		t.Fatalf("centre = (%v,%v), want (2,0)", c.X, c.Y)
	}
	// 5 units wide at 32px is 160px, so 0.9*640/160
	if math.Abs(c.Zoom-3.6) > 1e-9 {
		t.Fatalf("zoom = %v, want 3.6", c.Zoom)
	}
}
