package ws

import "sync"

// Registry owns the room-name to Room mapping. It is constructed once at
// startup and shared by every connection's read loop; rooms are created
// lazily on first join and pruned once their last member leaves.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: map[string]*Room{}}
}

// EnsureRoom returns the room with the given name, creating it if needed.
func (g *Registry) EnsureRoom(name string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	rm := g.rooms[name]
	if rm == nil {
		rm = NewRoom(name)
		g.rooms[name] = rm
	}
	return rm
}

// Room looks up a room without creating it.
func (g *Registry) Room(name string) *Room {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rooms[name]
}

// Len returns the number of live rooms.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// Join adds a connection to the named room, creating the room if needed.
// Creation and membership insert happen under the registry lock so a join
// can never land in a room a concurrent last-leave is about to prune.
func (g *Registry) Join(name string, c *Conn) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	rm := g.rooms[name]
	if rm == nil {
		rm = NewRoom(name)
		g.rooms[name] = rm
	}
	rm.Add(c)
	return rm
}

// Leave removes a connection from the named room and prunes the room once
// its member set empties. Unknown rooms and non-members are no-ops.
func (g *Registry) Leave(name string, c *Conn) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	rm := g.rooms[name]
	if rm == nil {
		return nil
	}
	rm.Remove(c)
	if rm.Len() == 0 {
		delete(g.rooms, name)
	}
	return rm
}
