package render

import "strings"

// Point represents a tile coordinate; Y grows downwards
type Point struct {
	X, Y int
}

// Bounds represents a rectangular tile region, inclusive on both ends
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns the width of the bounds
func (b Bounds) Width() int {
	return b.MaxX - b.MinX + 1
}

// Height returns the height of the bounds
func (b Bounds) Height() int {
	return b.MaxY - b.MinY + 1
}

// Contains checks if a point is within bounds
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Clamp moves p onto the nearest tile inside the bounds
func (b Bounds) Clamp(p Point) Point {
	return Point{clamp(p.X, b.MinX, b.MaxX), clamp(p.Y, b.MinY, b.MaxY)}
}

// Grid represents a 2D tile grid that layouts are rasterized onto
type Grid struct {
	Width, Height int
	Tiles         [][]string
}

// NewGrid creates a new grid filled with a default tile
func NewGrid(width, height int, defaultTile string) *Grid {
	tiles := make([][]string, height)
	for y := 0; y < height; y++ {
		tiles[y] = make([]string, width)
		for x := 0; x < width; x++ {
			tiles[y][x] = defaultTile
		}
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

// InBounds checks if a point is within the grid
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Set sets a tile at a position
func (g *Grid) Set(p Point, tile string) {
	if g.InBounds(p) {
		g.Tiles[p.Y][p.X] = tile
	}
}

// Get returns the tile at a position
func (g *Grid) Get(p Point) string {
	if g.InBounds(p) {
		return g.Tiles[p.Y][p.X]
	}
	return ""
}

// Rect fills a rectangular area with a tile
func (g *Grid) Rect(b Bounds, tile string) {
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			g.Set(Point{x, y}, tile)
		}
	}
}

// RectOutline draws the outline of a rectangle
func (g *Grid) RectOutline(b Bounds, tile string) {
	for x := b.MinX; x <= b.MaxX; x++ {
		g.Set(Point{x, b.MinY}, tile)
		g.Set(Point{x, b.MaxY}, tile)
	}
	for y := b.MinY; y <= b.MaxY; y++ {
		g.Set(Point{b.MinX, y}, tile)
		g.Set(Point{b.MaxX, y}, tile)
	}
}

// Count returns how many tiles equal tile
func (g *Grid) Count(tile string) int {
	n := 0
	for _, row := range g.Tiles {
		for _, t := range row {
			if t == tile {
				n++
			}
		}
	}
	return n
}

// String joins the rows with newlines
func (g *Grid) String() string {
	var sb strings.Builder
	for _, row := range g.Tiles {
		sb.WriteString(strings.TrimRight(strings.Join(row, ""), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Walk steps from one tile to another along X then Y, replacing tiles equal to
// over with tile. Both ends are included.
func (g *Grid) Walk(from, to Point, over, tile string) {
	p := from
	for {
		if g.Get(p) == over {
			g.Set(p, tile)
		}
		switch {
		case p.X != to.X:
			p.X += sign(to.X - p.X)
		case p.Y != to.Y:
			p.Y += sign(to.Y - p.Y)
		default:
			return
		}
	}
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
