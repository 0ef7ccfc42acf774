package generation

import "testing"

var (
	offL = Vec2{X: -0.5}
	offR = Vec2{X: 0.5}
	offT = Vec2{Y: 0.5}
	offB = Vec2{Y: -0.5}
)

func door(o Vec2) DoorTemplate { return DoorTemplate{Offset: o} }

func exitDoor(o Vec2) DoorTemplate { return DoorTemplate{Offset: o, EntranceExit: true} }

func unitModule(name string, doors ...DoorTemplate) *ModuleTemplate {
	return MustModuleTemplate(name, Size{W: 1, H: 1}, doors)
}

func mustCatalog(t *testing.T, templates ...*ModuleTemplate) *Catalog {
	t.Helper()
	c, err := NewCatalog(templates)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func entryTemplates() []*ModuleTemplate {
	return []*ModuleTemplate{
		unitModule("entry_l", door(offL), exitDoor(offR)),
		unitModule("entry_r", door(offR), exitDoor(offL)),
		unitModule("entry_t", door(offT), exitDoor(offB)),
		unitModule("entry_b", door(offB), exitDoor(offT)),
	}
}

func deadEndTemplates() []*ModuleTemplate {
	return []*ModuleTemplate{
		unitModule("dead_l", door(offL)),
		unitModule("dead_r", door(offR)),
		unitModule("dead_t", door(offT)),
		unitModule("dead_b", door(offB)),
	}
}

// corridorsCatalog closes for any target: entries plus a horizontal corridor
func corridorsCatalog(t *testing.T) *Catalog {
	return mustCatalog(t,
		unitModule("entry_l", door(offL), exitDoor(offR)),
		unitModule("entry_r", door(offR), exitDoor(offL)),
		unitModule("corridor_h", door(offL), door(offR)),
	)
}

// crossCatalog closes at exactly five modules around a single cross
func crossCatalog(t *testing.T) *Catalog {
	tpls := entryTemplates()
	tpls = append(tpls, unitModule("cross", door(offL), door(offR), door(offT), door(offB)))
	tpls = append(tpls, deadEndTemplates()...)
	return mustCatalog(t, tpls...)
}

// mixedCatalog has corridors, corners, junctions and dead ends
func mixedCatalog(t *testing.T) *Catalog {
	tpls := entryTemplates()
	tpls = append(tpls,
		unitModule("corridor_h", door(offL), door(offR)),
		unitModule("corridor_v", door(offT), door(offB)),
		unitModule("corner_lt", door(offL), door(offT)),
		unitModule("corner_lb", door(offL), door(offB)),
		unitModule("corner_rt", door(offR), door(offT)),
		unitModule("corner_rb", door(offR), door(offB)),
		unitModule("tee_t", door(offL), door(offR), door(offT)),
		unitModule("tee_b", door(offL), door(offR), door(offB)),
		unitModule("cross", door(offL), door(offR), door(offT), door(offB)),
		MustModuleTemplate("hall", Size{W: 3, H: 3}, []DoorTemplate{
			door(Vec2{X: -1.5}), door(Vec2{X: 1.5}), door(Vec2{Y: 1.5}), door(Vec2{Y: -1.5}),
		}),
	)
	tpls = append(tpls, deadEndTemplates()...)
	return mustCatalog(t, tpls...)
}

type eventLog struct {
	events []Event
}

func (l *eventLog) observe(e Event) { l.events = append(l.events, e) }

func (l *eventLog) filter(kind EventKind) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// requireValid fails the test if a successful result breaks a layout invariant
func requireValid(t *testing.T, r *Result, target int) {
	t.Helper()
	if !r.Success {
		t.Fatalf("expected success, got failure after %d attempts", r.Attempts)
	}
	if err := Validate(r, target, DefaultShrink); err != nil {
		t.Fatalf("invalid layout (seed %d): %v", r.Seed, err)
	}
}

func countTemplates(r *Result) map[string]int {
	counts := make(map[string]int)
	for _, m := range r.Modules {
		counts[m.Template.Name()]++
	}
	return counts
}
