package generation

import "sync"

// Host owns the concrete representation of placed modules.
// The engine only ever asks it to create, destroy or clear instances; a host
// must treat DestroyModule as infallible, including in the middle of a rollback.
type Host interface {
	InstantiateModule(tpl *ModuleTemplate, position Vec2) Handle
	DestroyModule(h Handle)
	ClearExistingMap()
}

// HostRecord is what MemoryHost stores for each live instance
type HostRecord struct {
	Template *ModuleTemplate
	Position Vec2
}

// MemoryHost is an arena of instances addressed by handle.
// Handles are never reused within a host.
type MemoryHost struct {
	mu      sync.Mutex
	next    Handle
	live    map[Handle]HostRecord
	created int
	removed int
}

// NewMemoryHost creates an empty arena
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{live: make(map[Handle]HostRecord)}
}

// InstantiateModule records a new instance and returns its handle
func (h *MemoryHost) InstantiateModule(tpl *ModuleTemplate, position Vec2) Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.live[h.next] = HostRecord{Template: tpl, Position: position}
	h.created++
	return h.next
}

// DestroyModule removes an instance; unknown handles are ignored
func (h *MemoryHost) DestroyModule(handle Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.live[handle]; ok {
		delete(h.live, handle)
		h.removed++
	}
}

// ClearExistingMap removes every live instance
func (h *MemoryHost) ClearExistingMap() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removed += len(h.live)
	h.live = make(map[Handle]HostRecord)
}

// Len returns the number of live instances
func (h *MemoryHost) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}

// Get returns the record for a live handle
func (h *MemoryHost) Get(handle Handle) (HostRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.live[handle]
	return r, ok
}

// Stats returns how many instances were ever created and destroyed
func (h *MemoryHost) Stats() (created, destroyed int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.created, h.removed
}
