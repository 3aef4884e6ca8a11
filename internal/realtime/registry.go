package realtime

import "sync"

// Event is one frame pushed to a live connection.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Conn is the delivery side of a live connection. TrySend must never
// block: it reports false when the connection is gone or its buffer is
// full, and the caller treats that as a best-effort miss.
type Conn interface {
	TrySend(Event) bool
}

// Registry maps a user id to their single live connection. It is shared
// by every session lifecycle and every delivery, so all access goes
// through one lock; operations are O(1) and never touch I/O.
type Registry struct {
	mu    sync.RWMutex
	conns map[uint64]Conn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[uint64]Conn)}
}

// Register inserts or replaces the entry for id. A newer connection for
// the same user displaces the old one (last-registered-wins); the old
// session's teardown is then a stale unregister and leaves the new entry
// alone.
func (r *Registry) Register(id uint64, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = c
}

// Unregister removes the entry for id only if the stored connection is
// identity-equal to c. This closes the ordering hazard where a slow
// disconnect callback would otherwise evict a replacement connection.
func (r *Registry) Unregister(id uint64, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.conns[id]; ok && cur == c {
		delete(r.conns, id)
	}
}

// Lookup returns the live connection for id, if any. The result is only
// good for one best-effort send; the connection may die at any moment.
func (r *Registry) Lookup(id uint64) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[id]
	return c, ok
}
