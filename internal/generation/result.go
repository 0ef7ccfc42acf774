package generation

// Result is the outcome of a generation request
type Result struct {
	Success    bool
	Seed       int64 // seed of the last attempt run
	Attempts   int
	Iterations int // expansion passes in the last attempt
	State      State
	Modules    []*ModuleInstance // placement order, empty on failure
}

// Connections returns every connected door pair once
func (r *Result) Connections() []Connection {
	return connections(r.Modules)
}

func connections(modules []*ModuleInstance) []Connection {
	open := make(map[[2]int64][]*DoorInstance)
	var out []Connection
	for _, m := range modules {
		for _, d := range m.Doors {
			if !d.Connected {
				continue
			}
			key := d.Position.Key()
			paired := false
			for i, other := range open[key] {
				if other.Module != d.Module && other.Side == d.Side.Opposite() {
					out = append(out, Connection{A: other, B: d})
					open[key] = append(open[key][:i], open[key][i+1:]...)
					paired = true
					break
				}
			}
			if !paired {
				open[key] = append(open[key], d)
			}
		}
	}
	return out
}

// OpenDoors returns doors that are neither connected nor entrance/exit
func (r *Result) OpenDoors() []*DoorInstance {
	var out []*DoorInstance
	for _, m := range r.Modules {
		out = append(out, m.OpenDoors()...)
	}
	return out
}

// Module returns the instance with the given handle
func (r *Result) Module(h Handle) *ModuleInstance {
	for _, m := range r.Modules {
		if m.Handle == h {
			return m
		}
	}
	return nil
}
