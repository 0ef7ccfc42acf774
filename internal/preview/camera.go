package preview

import "levelgen.dev/internal/generation"

const (
	zoomMin = 0.25
	zoomMax = 8.0
)

// Camera maps world units onto the screen. World Y grows up, screen Y grows down.
type Camera struct {
	X, Y          float64 // world-space centre
	Zoom          float64 // 1.0 = PixelsPerUnit pixels per world unit
	PixelsPerUnit float64
}

// NewCamera returns a camera centred on the origin
func NewCamera(pixelsPerUnit float64) *Camera {
	return &Camera{Zoom: 1, PixelsPerUnit: pixelsPerUnit}
}

func (c *Camera) scale() float64 {
	return c.Zoom * c.PixelsPerUnit
}

// Pan moves the camera by a screen-space delta, so panning feels the same at every zoom
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.scale()
	c.Y -= dy / c.scale()
}

// ZoomBy multiplies the zoom, clamped to a sane range
func (c *Camera) ZoomBy(factor float64) {
	c.Zoom *= factor
	if c.Zoom < zoomMin {
		c.Zoom = zoomMin
	}
	if c.Zoom > zoomMax {
		c.Zoom = zoomMax
	}
}

// WorldToScreen converts a world position to pixel coordinates
func (c *Camera) WorldToScreen(v generation.Vec2, screenW, screenH int) (float32, float32) {
	s := c.scale()
	x := (v.X-c.X)*s + float64(screenW)/2
	y := (c.Y-v.Y)*s + float64(screenH)/2
	return float32(x), float32(y)
}

// Fit centres the camera on the modules and zooms so they fill most of the screen
func (c *Camera) Fit(modules []*generation.ModuleInstance, screenW, screenH int) {
	if len(modules) == 0 {
		c.X, c.Y, c.Zoom = 0, 0, 1
		return
	}

	lo, hi := modules[0].Box().Min(), modules[0].Box().Max()
	for _, m := range modules[1:] {
		mlo, mhi := m.Box().Min(), m.Box().Max()
		lo = generation.Vec2{X: min(lo.X, mlo.X), Y: min(lo.Y, mlo.Y)}
		hi = generation.Vec2{X: max(hi.X, mhi.X), Y: max(hi.Y, mhi.Y)}
	}

	c.X, c.Y = (lo.X+hi.X)/2, (lo.Y+hi.Y)/2
	w, h := (hi.X-lo.X)*c.PixelsPerUnit, (hi.Y-lo.Y)*c.PixelsPerUnit
	c.Zoom = 1
	c.ZoomBy(0.9 * min(float64(screenW)/w, float64(screenH)/h))
}
