package generation

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTemplate is returned when a module template is malformed
var ErrInvalidTemplate = errors.New("invalid module template")

// DoorTemplate is a docking point on a module template
type DoorTemplate struct {
	Offset       Vec2     // relative to the module center
	Side         DoorSide // derived from the offset
	EntranceExit bool     // never matched during interior expansion
}

// ModuleTemplate is an immutable catalog entry: a bounding size and its doors
type ModuleTemplate struct {
	name  string
	size  Size
	doors []DoorTemplate
}

// NewModuleTemplate validates and builds a template.
// Door sides are always derived from the offsets, so a door must sit on the
// boundary side its offset points to.
func NewModuleTemplate(name string, size Size, doors []DoorTemplate) (*ModuleTemplate, error) {
	if size.W <= 0 || size.H <= 0 {
		return nil, fmt.Errorf("%w: %q has non-positive size %vx%v", ErrInvalidTemplate, name, size.W, size.H)
	}

	halfW, halfH := size.W/2, size.H/2
	tpl := &ModuleTemplate{name: name, size: size, doors: make([]DoorTemplate, len(doors))}

	for i, d := range doors {
		side := SideFromOffset(d.Offset)
		var onBoundary bool
		switch side {
		case Left:
			onBoundary = nearly(d.Offset.X, -halfW) && math.Abs(d.Offset.Y) <= halfH+positionEpsilon
		case Right:
			onBoundary = nearly(d.Offset.X, halfW) && math.Abs(d.Offset.Y) <= halfH+positionEpsilon
		case Top:
			onBoundary = nearly(d.Offset.Y, halfH) && math.Abs(d.Offset.X) <= halfW+positionEpsilon
		case Bottom:
			onBoundary = nearly(d.Offset.Y, -halfH) && math.Abs(d.Offset.X) <= halfW+positionEpsilon
		}
		if !onBoundary {
			return nil, fmt.Errorf("%w: %q door %d at %v is not on its %s boundary",
				ErrInvalidTemplate, name, i, d.Offset, side)
		}
		tpl.doors[i] = DoorTemplate{Offset: d.Offset, Side: side, EntranceExit: d.EntranceExit}
	}

	return tpl, nil
}

// MustModuleTemplate is like NewModuleTemplate but panics on error.
// Intended for built-in catalogs and tests.
func MustModuleTemplate(name string, size Size, doors []DoorTemplate) *ModuleTemplate {
	tpl, err := NewModuleTemplate(name, size, doors)
	if err != nil {
		panic(err)
	}
	return tpl
}

// Name returns the template name
func (t *ModuleTemplate) Name() string { return t.name }

// Size returns the bounding size
func (t *ModuleTemplate) Size() Size { return t.size }

// Doors returns a copy of the door list
func (t *ModuleTemplate) Doors() []DoorTemplate {
	out := make([]DoorTemplate, len(t.doors))
	copy(out, t.doors)
	return out
}

// Door returns the door at index i
func (t *ModuleTemplate) Door(i int) DoorTemplate { return t.doors[i] }

// NumDoors returns the number of doors
func (t *ModuleTemplate) NumDoors() int { return len(t.doors) }

// HasEntranceExit reports whether any door is an entrance/exit
func (t *ModuleTemplate) HasEntranceExit() bool {
	for _, d := range t.doors {
		if d.EntranceExit {
			return true
		}
	}
	return false
}

// CompatibleDoors returns the indices of doors that can dock a door on targetSide
func (t *ModuleTemplate) CompatibleDoors(targetSide DoorSide) []int {
	want := targetSide.Opposite()
	out := make([]int, 0, len(t.doors))
	for i, d := range t.doors {
		if !d.EntranceExit && d.Side == want {
			out = append(out, i)
		}
	}
	return out
}

func nearly(a, b float64) bool {
	return math.Abs(a-b) <= positionEpsilon
}
