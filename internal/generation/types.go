package generation

import (
	"fmt"
	"math"
	"strings"
)

// positionEpsilon is the tolerance used when comparing world positions of doors.
const positionEpsilon = 1e-4

// Vec2 represents a 2D position or offset in world units
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns v offset by o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v minus o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Equal reports whether two positions coincide within positionEpsilon
func (v Vec2) Equal(o Vec2) bool {
	return math.Abs(v.X-o.X) <= positionEpsilon && math.Abs(v.Y-o.Y) <= positionEpsilon
}

// Key quantizes the position so coincident doors hash to the same bucket
func (v Vec2) Key() [2]int64 {
	return [2]int64{int64(math.Round(v.X * 1000)), int64(math.Round(v.Y * 1000))}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", v.X, v.Y)
}

// Size is the width and height of a module's bounding box
type Size struct {
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// DoorSide is the compass side of a module a door sits on
type DoorSide int

const (
	Left DoorSide = iota
	Right
	Top
	Bottom
)

var doorSideNames = [...]string{"left", "right", "top", "bottom"}

// Opposite returns the side a docking door must face
func (s DoorSide) Opposite() DoorSide {
	switch s {
	case Left:
		return Right
	case Right:
		return Left
	case Top:
		return Bottom
	}
	return Top
}

// Outward returns the unit vector pointing away from the module through this side.
// Y grows upwards.
func (s DoorSide) Outward() Vec2 {
	switch s {
	case Left:
		return Vec2{-1, 0}
	case Right:
		return Vec2{1, 0}
	case Top:
		return Vec2{0, 1}
	}
	return Vec2{0, -1}
}

func (s DoorSide) String() string {
	if s < Left || s > Bottom {
		return fmt.Sprintf("DoorSide(%d)", int(s))
	}
	return doorSideNames[s]
}

// ParseDoorSide converts a side name into a DoorSide
func ParseDoorSide(name string) (DoorSide, error) {
	for i, n := range doorSideNames {
		if strings.EqualFold(name, n) {
			return DoorSide(i), nil
		}
	}
	return Left, fmt.Errorf("unknown door side %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (s DoorSide) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *DoorSide) UnmarshalText(text []byte) error {
	side, err := ParseDoorSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// SideFromOffset derives a door's side from its offset relative to the module center.
// The dominant axis wins; ties go to the vertical sides.
func SideFromOffset(offset Vec2) DoorSide {
	if math.Abs(offset.X) > math.Abs(offset.Y) {
		if offset.X > 0 {
			return Right
		}
		return Left
	}
	if offset.Y > 0 {
		return Top
	}
	return Bottom
}

// Box is an axis-aligned bounding box
type Box struct {
	Center Vec2
	Size   Size
}

// Min returns the lower-left corner
func (b Box) Min() Vec2 {
	return Vec2{b.Center.X - b.Size.W/2, b.Center.Y - b.Size.H/2}
}

// Max returns the upper-right corner
func (b Box) Max() Vec2 {
	return Vec2{b.Center.X + b.Size.W/2, b.Center.Y + b.Size.H/2}
}

// Shrink returns the box scaled around its center
func (b Box) Shrink(factor float64) Box {
	return Box{Center: b.Center, Size: Size{b.Size.W * factor, b.Size.H * factor}}
}

// Intersects reports whether two boxes overlap. Boxes that only touch do not intersect.
func (b Box) Intersects(other Box) bool {
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := other.Min(), other.Max()
	return bMin.X < oMax.X && bMax.X > oMin.X &&
		bMin.Y < oMax.Y && bMax.Y > oMin.Y
}
