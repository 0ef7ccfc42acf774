package generation

import (
	"context"
	"slices"
)

// session is the mutable state of one attempt. It is rebuilt from scratch for
// every attempt and never shared.
type session struct {
	cfg     *Config
	catalog *Catalog
	host    Host
	emit    Observer

	attempt int
	seed    int64
	rng     *RNG

	modules  []*ModuleInstance
	frontier *Frontier
	space    Space
	passes   int
}

// frontierOp is one journaled frontier mutation made by a placement
type frontierOp struct {
	door  *DoorInstance
	index int  // index the door was removed from
	added bool // door was appended rather than removed
}

// placement records everything a single module placement changed so it can be undone
type placement struct {
	module *ModuleInstance
	ops    []frontierOp
}

func newSession(catalog *Catalog, cfg *Config, host Host, attempt int, seed int64) *session {
	emit := cfg.Observer
	if emit == nil {
		emit = func(Event) {}
	}
	return &session{
		cfg:      cfg,
		catalog:  catalog,
		host:     host,
		emit:     emit,
		attempt:  attempt,
		seed:     seed,
		rng:      NewRNG(seed),
		frontier: NewFrontier(),
		space:    NewSpace(cfg.BroadPhase, cfg.Shrink, cfg.CellSize),
	}
}

// run places the root and expands until the frontier closes or the pass budget
// runs out. It only returns an error when ctx is done.
func (s *session) run(ctx context.Context) error {
	s.placeRoot()

	for s.passes < s.cfg.TargetModules && s.frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.passes++

		// Earlier attachments in this pass mutate the frontier, so iterate a snapshot.
		for _, door := range s.frontier.Snapshot() {
			if door.Connected {
				continue
			}
			s.attach(door)
		}
	}
	return nil
}

// succeeded reports whether the attempt produced a closed map of the target size
func (s *session) succeeded() bool {
	return len(s.modules) == s.cfg.TargetModules && s.frontier.Len() == 0
}

func (s *session) placeRoot() {
	candidates := slices.Clone(s.catalog.Terminal)
	Shuffle(s.rng, candidates)

	p := s.place(candidates[0], s.cfg.Start)
	s.emitPlacement(EventModulePlaced, p.module, RollbackNone)
}

// isLastConnection reports whether the next module must close the map
func (s *session) isLastConnection() bool {
	return len(s.modules) == s.cfg.TargetModules-1 && s.frontier.Len() == 1
}

// attach tries to dock a module onto target, backtracking over candidates.
// It reports whether a placement was committed.
func (s *session) attach(target *DoorInstance) bool {
	last := s.isLastConnection()
	pool := s.catalog.Normal
	if last {
		pool = s.catalog.Terminal
	}

	candidates := slices.Clone(pool)
	Shuffle(s.rng, candidates)

	for _, tpl := range candidates {
		doors := tpl.CompatibleDoors(target.Side)
		Shuffle(s.rng, doors)

		for _, di := range doors {
			pos := target.Position.Sub(tpl.Door(di).Offset)
			if !s.space.HasSpace(pos, tpl.Size()) {
				continue
			}

			// The candidate door sits on target's position facing it, so place
			// always docks it.
			p := s.place(tpl, pos)
			if reason := s.rollbackReason(last); reason != RollbackNone {
				s.emitPlacement(EventModuleRolledBack, p.module, reason)
				s.rollback(p)
				continue
			}

			s.emitPlacement(EventModulePlaced, p.module, RollbackNone)
			return true
		}
	}
	return false
}

// place instantiates tpl at pos and merges its doors into the frontier.
// A new door that coincides with an open door facing it connects both.
func (s *session) place(tpl *ModuleTemplate, pos Vec2) *placement {
	h := s.host.InstantiateModule(tpl, pos)
	m := newModuleInstance(h, tpl, pos)
	s.modules = append(s.modules, m)
	s.space.Insert(h, m.Box())

	p := &placement{module: m}
	for _, d := range m.Doors {
		if d.EntranceExit {
			continue
		}
		if match := s.frontier.Find(d.Position, d.Side.Opposite(), h); match != nil {
			idx := s.frontier.Remove(match)
			match.Connected = true
			d.Connected = true
			p.ops = append(p.ops, frontierOp{door: match, index: idx})
			continue
		}
		s.frontier.Add(d)
		p.ops = append(p.ops, frontierOp{door: d, added: true})
	}
	return p
}

// rollback undoes a placement, restoring the frontier order exactly
func (s *session) rollback(p *placement) {
	for i := len(p.ops) - 1; i >= 0; i-- {
		op := p.ops[i]
		if op.added {
			s.frontier.Remove(op.door)
			continue
		}
		op.door.Connected = false
		s.frontier.insertAt(op.index, op.door)
	}
	for _, d := range p.module.Doors {
		d.Connected = false
	}

	if n := len(s.modules); n > 0 && s.modules[n-1] == p.module {
		s.modules = s.modules[:n-1]
	} else {
		s.modules = slices.DeleteFunc(s.modules, func(m *ModuleInstance) bool { return m == p.module })
	}
	s.space.Remove(p.module.Handle)
	s.host.DestroyModule(p.module.Handle)
}

// rollbackReason evaluates the budget and expandability rules after a placement.
// Budget accounting: a module adds its open doors minus the connections it made,
// and spawned + open may never exceed the target. Only the last connection may
// close the map.
func (s *session) rollbackReason(last bool) RollbackReason {
	spawned, open := len(s.modules), s.frontier.Len()

	if spawned+open > s.cfg.TargetModules {
		return RollbackOvershoot
	}
	if !last && open == 0 {
		return RollbackPrematureClose
	}
	if !s.canAllOpenDoorsExpand() {
		return RollbackStranded
	}
	return RollbackNone
}

// canAllOpenDoorsExpand checks every open door still has room for a probe-sized
// module directly outside it
func (s *session) canAllOpenDoorsExpand() bool {
	probe := s.cfg.ProbeSize
	for _, d := range s.frontier.doors {
		reach := probe.H / 2
		if d.Side == Left || d.Side == Right {
			reach = probe.W / 2
		}
		center := d.Position.Add(d.Side.Outward().Scale(reach))
		if !s.space.HasSpace(center, probe) {
			return false
		}
	}
	return true
}

// teardown destroys every instance this attempt spawned
func (s *session) teardown() {
	for i := len(s.modules) - 1; i >= 0; i-- {
		m := s.modules[i]
		s.space.Remove(m.Handle)
		s.host.DestroyModule(m.Handle)
	}
	s.modules = nil
	s.frontier = NewFrontier()
}

func (s *session) emitPlacement(kind EventKind, m *ModuleInstance, reason RollbackReason) {
	s.emit(Event{
		Kind:     kind,
		State:    StateExpanding,
		Attempt:  s.attempt,
		Seed:     s.seed,
		Pass:     s.passes,
		Template: m.Template.Name(),
		Handle:   m.Handle,
		Position: m.Position,
		Spawned:  len(s.modules),
		Open:     s.frontier.Len(),
		Reason:   reason,
	})
}

func (s *session) emitState(kind EventKind, state State) {
	s.emit(Event{
		Kind:    kind,
		State:   state,
		Attempt: s.attempt,
		Seed:    s.seed,
		Pass:    s.passes,
		Spawned: len(s.modules),
		Open:    s.frontier.Len(),
	})
}
