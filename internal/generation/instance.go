package generation

// Handle identifies a module instance owned by a Host
type Handle int

// DoorInstance is a door on a placed module
type DoorInstance struct {
	Module       Handle
	Index        int // index into the template's door list
	Side         DoorSide
	EntranceExit bool
	Connected    bool
	Position     Vec2 // world space
}

// Open reports whether the door belongs on the frontier
func (d *DoorInstance) Open() bool {
	return !d.EntranceExit && !d.Connected
}

// ModuleInstance is a placed copy of a template
type ModuleInstance struct {
	Handle   Handle
	Template *ModuleTemplate
	Position Vec2
	Doors    []*DoorInstance
}

func newModuleInstance(h Handle, tpl *ModuleTemplate, pos Vec2) *ModuleInstance {
	m := &ModuleInstance{
		Handle:   h,
		Template: tpl,
		Position: pos,
		Doors:    make([]*DoorInstance, tpl.NumDoors()),
	}
	for i := range m.Doors {
		d := tpl.Door(i)
		m.Doors[i] = &DoorInstance{
			Module:       h,
			Index:        i,
			Side:         d.Side,
			EntranceExit: d.EntranceExit,
			Position:     pos.Add(d.Offset),
		}
	}
	return m
}

// Box returns the module's world-space bounding box
func (m *ModuleInstance) Box() Box {
	return Box{Center: m.Position, Size: m.Template.Size()}
}

// OpenDoors returns the doors that are neither connected nor entrance/exit
func (m *ModuleInstance) OpenDoors() []*DoorInstance {
	out := make([]*DoorInstance, 0, len(m.Doors))
	for _, d := range m.Doors {
		if d.Open() {
			out = append(out, d)
		}
	}
	return out
}

// Connection pairs two connected doors on different modules
type Connection struct {
	A, B *DoorInstance
}
