/*
Package chat contains the core logic of the translating chat relay.

This file defines the Registry: the process-wide index from room name to live
Room. Rooms are created implicitly when the first connection joins and removed
as soon as the last member leaves. The Registry is a plain value so tests can
construct several in isolation.
*/
package chat

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/ReyMar81/gestor-doc/internal/pkg/logx"
)

// Registry tracks every active Room in the process.
type Registry struct {
	// mu protects the rooms map and serializes join/leave so an emptied room is
	// removed atomically with respect to a concurrent join under the same name.
	mu sync.Mutex

	rooms map[string]*Room

	logger zerolog.Logger
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:  make(map[string]*Room),
		logger: logx.Logger().With().Str("component", "registry").Logger(),
	}
}

// Join adds the connection to the named room, creating the room if it does not
// exist yet, and returns it.
func (g *Registry) Join(name string, c *Client) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.rooms[name]
	if !ok {
		room = newRoom(name)
		g.rooms[name] = room
		g.logger.Info().Str("room", name).Msg("Room created.")
	}

	room.add(c)
	return room
}

// Leave removes the connection from its room. When the room empties it is
// dropped from the index immediately. Safe to call more than once.
func (g *Registry) Leave(c *Client) {
	if c.room == nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if c.room.remove(c) == 0 {
		// Only drop the entry if the index still points at this room; a room
		// under the same name may have been recreated in between.
		if current, ok := g.rooms[c.room.name]; ok && current == c.room {
			delete(g.rooms, c.room.name)
			g.logger.Info().Str("room", c.room.name).Msg("Room empty, removed.")
		}
	}
}

// RoomCount returns the number of active rooms.
func (g *Registry) RoomCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.rooms)
}

// Shutdown closes every live connection in every room. Called once during
// server shutdown.
func (g *Registry) Shutdown() {
	g.mu.Lock()
	clients := make([]*Client, 0)
	for _, room := range g.rooms {
		room.mu.RLock()
		for _, c := range room.clients {
			clients = append(clients, c)
		}
		room.mu.RUnlock()
	}
	g.rooms = make(map[string]*Room)
	g.mu.Unlock()

	for _, c := range clients {
		c.shutdown()
	}

	g.logger.Info().Int("connections", len(clients)).Msg("Registry shutdown complete.")
}
