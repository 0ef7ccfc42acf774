package render

import (
	"math"

	"levelgen.dev/internal/generation"
)

// Palette defines the tiles used to draw a layout
type Palette struct {
	Empty         string
	Floor         string
	Wall          string
	DoorConnected string
	DoorOpen      string
	Exit          string
	Root          string
	Route         string
}

// DefaultPalette returns the standard tile palette
func DefaultPalette() *Palette {
	return &Palette{
		Empty:         " ",
		Floor:         ".",
		Wall:          "#",
		DoorConnected: "+",
		DoorOpen:      "?",
		Exit:          "E",
		Root:          "@",
		Route:         "*",
	}
}

// DefaultScale is the number of tiles per world unit
const DefaultScale = 4

// Rasterizer converts placed modules into a tile grid
type Rasterizer struct {
	Scale   int
	Palette *Palette

	// ShowRoute marks the walk from the root to the last placed module
	ShowRoute bool
}

// NewRasterizer creates a rasterizer with default settings
func NewRasterizer() *Rasterizer {
	return &Rasterizer{Scale: DefaultScale, Palette: DefaultPalette()}
}

// Render draws every module of the layout. The root module's center is marked.
func (r *Rasterizer) Render(modules []*generation.ModuleInstance) *Grid {
	if len(modules) == 0 {
		return NewGrid(0, 0, r.Palette.Empty)
	}
	scale := float64(r.Scale)

	// 1. World extents
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, m := range modules {
		lo, hi := m.Box().Min(), m.Box().Max()
		minX, minY = math.Min(minX, lo.X), math.Min(minY, lo.Y)
		maxX, maxY = math.Max(maxX, hi.X), math.Max(maxY, hi.Y)
	}

	width := int(math.Round((maxX - minX) * scale))
	height := int(math.Round((maxY - minY) * scale))
	grid := NewGrid(width, height, r.Palette.Empty)

	// World Y grows up, tile rows grow down.
	toTile := func(v generation.Vec2) (float64, float64) {
		return (v.X - minX) * scale, (maxY - v.Y) * scale
	}

	// 2. Rooms
	tileBounds := make([]Bounds, len(modules))
	for i, m := range modules {
		lx, ty := toTile(generation.Vec2{X: m.Box().Min().X, Y: m.Box().Max().Y})
		rx, by := toTile(generation.Vec2{X: m.Box().Max().X, Y: m.Box().Min().Y})
		b := Bounds{
			MinX: int(math.Round(lx)), MinY: int(math.Round(ty)),
			MaxX: int(math.Round(rx)) - 1, MaxY: int(math.Round(by)) - 1,
		}
		tileBounds[i] = b
		grid.Rect(b, r.Palette.Floor)
		grid.RectOutline(b, r.Palette.Wall)
	}

	// 3. Doors sit on the module's own wall tile
	doorTile := func(i int, d *generation.DoorInstance) Point {
		tx, ty := toTile(d.Position)
		b := tileBounds[i]
		p := b.Clamp(Point{int(math.Floor(tx)), int(math.Floor(ty))})
		switch d.Side {
		case generation.Left:
			p.X = b.MinX
		case generation.Right:
			p.X = b.MaxX
		case generation.Top:
			p.Y = b.MinY
		case generation.Bottom:
			p.Y = b.MaxY
		}
		return p
	}
	for i, m := range modules {
		for _, d := range m.Doors {
			tile := r.Palette.DoorOpen
			switch {
			case d.EntranceExit:
				tile = r.Palette.Exit
			case d.Connected:
				tile = r.Palette.DoorConnected
			}
			grid.Set(doorTile(i, d), tile)
		}
	}

	centre := func(i int) Point {
		cx, cy := toTile(modules[i].Position)
		return tileBounds[i].Clamp(Point{int(math.Floor(cx)), int(math.Floor(cy))})
	}
	grid.Set(centre(0), r.Palette.Root)

	// 4. Route: the shortest chain of connected modules from the root to the
	// last placed one, drawn centre to door to centre
	if r.ShowRoute && len(modules) > 1 {
		index := make(map[generation.Handle]int, len(modules))
		for i, m := range modules {
			index[m.Handle] = i
		}
		g := generation.NewModuleGraph(modules)
		chain := g.Path(modules[0].Handle, modules[len(modules)-1].Handle)
		for k := 1; k < len(chain); k++ {
			e, _ := g.Edge(chain[k-1], chain[k])
			a, b := index[e.From], index[e.To]
			grid.Walk(centre(a), doorTile(a, modules[a].Doors[e.FromDoor]), r.Palette.Floor, r.Palette.Route)
			grid.Walk(doorTile(b, modules[b].Doors[e.ToDoor]), centre(b), r.Palette.Floor, r.Palette.Route)
		}
	}

	return grid
}

// ASCII renders a layout with the default rasterizer
func ASCII(modules []*generation.ModuleInstance) string {
	return NewRasterizer().Render(modules).String()
}
