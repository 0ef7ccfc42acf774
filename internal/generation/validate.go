package generation

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout is wrapped by every Validate failure
var ErrInvalidLayout = errors.New("invalid layout")

// Validate checks a successful result against the layout invariants:
// exact module count, no overlapping boxes, one-to-one door pairing, no open
// non-exit doors and a single connected component.
func Validate(r *Result, target int, shrink float64) error {
	if shrink <= 0 || shrink > 1 {
		shrink = DefaultShrink
	}
	var errs []error

	// 1. Module count
	if len(r.Modules) != target {
		errs = append(errs, fmt.Errorf("%w: %d modules, want %d", ErrInvalidLayout, len(r.Modules), target))
	}

	// 2. Overlap
	for i, a := range r.Modules {
		ab := a.Box().Shrink(shrink)
		for _, b := range r.Modules[i+1:] {
			if ab.Intersects(b.Box().Shrink(shrink)) {
				errs = append(errs, fmt.Errorf("%w: modules %d and %d overlap", ErrInvalidLayout, a.Handle, b.Handle))
			}
		}
	}

	// 3. Door pairing
	byKey := make(map[[2]int64][]*DoorInstance)
	for _, m := range r.Modules {
		for _, d := range m.Doors {
			byKey[d.Position.Key()] = append(byKey[d.Position.Key()], d)
		}
	}
	graph := NewGraph()
	for _, m := range r.Modules {
		graph.AddNode(m.Handle)
	}
	for _, m := range r.Modules {
		for _, d := range m.Doors {
			if !d.Connected {
				if !d.EntranceExit {
					errs = append(errs, fmt.Errorf("%w: module %d door %d is open", ErrInvalidLayout, m.Handle, d.Index))
				}
				continue
			}
			var partners []*DoorInstance
			for _, o := range byKey[d.Position.Key()] {
				if o != d && o.Connected && o.Module != d.Module && o.Position.Equal(d.Position) {
					partners = append(partners, o)
				}
			}
			if len(partners) != 1 {
				errs = append(errs, fmt.Errorf("%w: module %d door %d has %d counterparts",
					ErrInvalidLayout, m.Handle, d.Index, len(partners)))
				continue
			}
			if m.Handle < partners[0].Module {
				graph.AddEdge(Edge{From: m.Handle, To: partners[0].Module, FromDoor: d.Index, ToDoor: partners[0].Index})
			}
		}
	}

	// 4. Connectivity
	if len(r.Modules) > 0 {
		if reached := graph.Reachable(r.Modules[0].Handle).Size(); reached != len(r.Modules) {
			errs = append(errs, fmt.Errorf("%w: only %d of %d modules reachable from the root",
				ErrInvalidLayout, reached, len(r.Modules)))
		}
	}

	return errors.Join(errs...)
}
