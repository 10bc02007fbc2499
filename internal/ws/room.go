package ws

import "sync"

// Room is a named broadcast group of connections. Membership is a set:
// adding twice is a no-op, iteration order is unspecified.
type Room struct {
	name    string
	mu      sync.RWMutex
	members map[*Conn]struct{}
}

// NewRoom creates an empty room.
func NewRoom(name string) *Room {
	return &Room{name: name, members: map[*Conn]struct{}{}}
}

// Name returns the room identifier (trimmed, case-sensitive).
func (r *Room) Name() string { return r.name }

// Add inserts a connection. Returns true if it was newly added.
func (r *Room) Add(c *Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[c]; ok {
		return false
	}
	r.members[c] = struct{}{}
	return true
}

// Remove deletes a connection. Returns true if it was a member.
func (r *Room) Remove(c *Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[c]; !ok {
		return false
	}
	delete(r.members, c)
	return true
}

// Len returns the current member count.
func (r *Room) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Snapshot copies the member set so callers can iterate while
// joins and leaves proceed on other connections.
func (r *Room) Snapshot() []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Conn, 0, len(r.members))
	for c := range r.members {
		out = append(out, c)
	}
	return out
}

// Broadcast enqueues a frame to every open member, skipping except when
// set. Returns how many members received it and how many were skipped
// or dropped (closed connection, full queue).
func (r *Room) Broadcast(frame []byte, except *Conn) (sent, dropped int) {
	for _, c := range r.Snapshot() {
		if c == except {
			continue
		}
		if !c.Open() {
			dropped++
			continue
		}
		if c.Enqueue(frame) {
			sent++
		} else {
			dropped++
		}
	}
	return sent, dropped
}
