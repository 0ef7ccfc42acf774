package generation

import (
	"fmt"
	"math"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// DefaultShrink is the scale applied to boxes before overlap tests so that
// flush-adjacent modules sharing a door edge are not reported as colliding.
const DefaultShrink = 0.95

// BroadPhase selects how Space answers overlap queries
type BroadPhase int

const (
	// BroadPhaseLinear scans every placed box
	BroadPhaseLinear BroadPhase = iota
	// BroadPhaseGrid buckets boxes into uniform grid cells first
	BroadPhaseGrid
)

func (m BroadPhase) String() string {
	if m == BroadPhaseGrid {
		return "grid"
	}
	return "linear"
}

// ParseBroadPhase accepts "linear" or "grid"; empty means linear
func ParseBroadPhase(name string) (BroadPhase, error) {
	switch strings.ToLower(name) {
	case "", "linear":
		return BroadPhaseLinear, nil
	case "grid":
		return BroadPhaseGrid, nil
	}
	return BroadPhaseLinear, fmt.Errorf("unknown broad phase %q", name)
}

// Space stores placed module boxes and answers HasSpace queries
type Space interface {
	HasSpace(position Vec2, size Size) bool
	Insert(h Handle, box Box)
	Remove(h Handle)
	Len() int
}

// NewSpace creates a Space for the chosen broad phase
func NewSpace(mode BroadPhase, shrink, cellSize float64) Space {
	if shrink <= 0 || shrink > 1 {
		shrink = DefaultShrink
	}
	if mode == BroadPhaseGrid {
		if cellSize <= 0 {
			cellSize = 4
		}
		return &gridSpace{
			shrink:   shrink,
			cellSize: cellSize,
			boxes:    make(map[Handle]Box),
			cells:    make(map[[2]int]mapset.Set[Handle]),
		}
	}
	return &linearSpace{shrink: shrink}
}

type spaceEntry struct {
	handle Handle
	box    Box
}

type linearSpace struct {
	shrink  float64
	entries []spaceEntry
}

func (s *linearSpace) HasSpace(position Vec2, size Size) bool {
	q := Box{Center: position, Size: size}.Shrink(s.shrink)
	for _, e := range s.entries {
		if q.Intersects(e.box) {
			return false
		}
	}
	return true
}

func (s *linearSpace) Insert(h Handle, box Box) {
	s.entries = append(s.entries, spaceEntry{handle: h, box: box.Shrink(s.shrink)})
}

func (s *linearSpace) Remove(h Handle) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].handle == h {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

func (s *linearSpace) Len() int { return len(s.entries) }

type gridSpace struct {
	shrink   float64
	cellSize float64
	boxes    map[Handle]Box
	cells    map[[2]int]mapset.Set[Handle]
}

func (s *gridSpace) cellRange(b Box) (minX, minY, maxX, maxY int) {
	lo, hi := b.Min(), b.Max()
	return int(math.Floor(lo.X / s.cellSize)), int(math.Floor(lo.Y / s.cellSize)),
		int(math.Floor(hi.X / s.cellSize)), int(math.Floor(hi.Y / s.cellSize))
}

func (s *gridSpace) HasSpace(position Vec2, size Size) bool {
	q := Box{Center: position, Size: size}.Shrink(s.shrink)
	minX, minY, maxX, maxY := s.cellRange(q)
	checked := mapset.New[Handle]()
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			cell, ok := s.cells[[2]int{cx, cy}]
			if !ok {
				continue
			}
			hit := false
			cell.Each(func(h Handle) {
				if hit || checked.Has(h) {
					return
				}
				checked.Put(h)
				if q.Intersects(s.boxes[h]) {
					hit = true
				}
			})
			if hit {
				return false
			}
		}
	}
	return true
}

func (s *gridSpace) Insert(h Handle, box Box) {
	b := box.Shrink(s.shrink)
	s.boxes[h] = b
	minX, minY, maxX, maxY := s.cellRange(b)
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			key := [2]int{cx, cy}
			cell, ok := s.cells[key]
			if !ok {
				cell = mapset.New[Handle]()
				s.cells[key] = cell
			}
			cell.Put(h)
		}
	}
}

func (s *gridSpace) Remove(h Handle) {
	b, ok := s.boxes[h]
	if !ok {
		return
	}
	delete(s.boxes, h)
	minX, minY, maxX, maxY := s.cellRange(b)
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			key := [2]int{cx, cy}
			if cell, ok := s.cells[key]; ok {
				cell.Remove(h)
				if cell.Size() == 0 {
					delete(s.cells, key)
				}
			}
		}
	}
}

func (s *gridSpace) Len() int { return len(s.boxes) }
