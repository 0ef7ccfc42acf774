package generation

// Frontier is the ordered set of open doors across all placed modules.
// It keeps a position index so coincident doors can be found without a scan.
type Frontier struct {
	doors []*DoorInstance
	byKey map[[2]int64][]*DoorInstance
}

// NewFrontier creates an empty frontier
func NewFrontier() *Frontier {
	return &Frontier{byKey: make(map[[2]int64][]*DoorInstance)}
}

// Len returns the number of open doors
func (f *Frontier) Len() int { return len(f.doors) }

// Snapshot returns a copy of the current door order
func (f *Frontier) Snapshot() []*DoorInstance {
	out := make([]*DoorInstance, len(f.doors))
	copy(out, f.doors)
	return out
}

// Contains reports whether d is on the frontier
func (f *Frontier) Contains(d *DoorInstance) bool {
	for _, o := range f.byKey[d.Position.Key()] {
		if o == d {
			return true
		}
	}
	return false
}

// Add appends a door
func (f *Frontier) Add(d *DoorInstance) {
	f.insertAt(len(f.doors), d)
}

// Remove deletes a door and returns the index it occupied, or -1
func (f *Frontier) Remove(d *DoorInstance) int {
	idx := -1
	for i, o := range f.doors {
		if o == d {
			idx = i
			break
		}
	}
	if idx < 0 {
		return -1
	}
	f.doors = append(f.doors[:idx], f.doors[idx+1:]...)

	key := d.Position.Key()
	bucket := f.byKey[key]
	for i, o := range bucket {
		if o == d {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(f.byKey, key)
	} else {
		f.byKey[key] = bucket
	}
	return idx
}

// Find returns an open door at pos that faces side and belongs to another module
func (f *Frontier) Find(pos Vec2, side DoorSide, exclude Handle) *DoorInstance {
	for _, d := range f.byKey[pos.Key()] {
		if d.Module != exclude && d.Side == side && d.Position.Equal(pos) {
			return d
		}
	}
	return nil
}

func (f *Frontier) insertAt(idx int, d *DoorInstance) {
	f.doors = append(f.doors, nil)
	copy(f.doors[idx+1:], f.doors[idx:])
	f.doors[idx] = d

	key := d.Position.Key()
	f.byKey[key] = append(f.byKey[key], d)
}
