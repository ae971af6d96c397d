/*
Package chat contains the core logic of the translating chat relay.

This file defines the Room struct: the member set of one broadcast group and the
fan-out of events to its members. Rooms hold no state beyond membership and are
created and garbage-collected implicitly by the Registry.
*/
package chat

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ReyMar81/gestor-doc/internal/pkg/logx"
)

// Room is a single broadcast group. Membership is keyed by the per-connection
// channel identifier so the same user may hold several connections at once.
type Room struct {
	name string

	// mu protects access to the clients map.
	mu sync.RWMutex

	// clients holds the current member connections, keyed by connection ID.
	clients map[uuid.UUID]*Client

	logger zerolog.Logger
}

func newRoom(name string) *Room {
	roomLogger := logx.Logger().With().
		Str("room", name).
		Logger()

	return &Room{
		name:    name,
		clients: make(map[uuid.UUID]*Client),
		logger:  roomLogger,
	}
}

// Name returns the room's identifier.
func (r *Room) Name() string {
	return r.name
}

// add registers the connection as a member. Adding the same connection twice
// has no additional effect.
func (r *Room) add(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[c.id]; ok {
		return
	}

	r.clients[c.id] = c
	r.logger.Info().
		Str("client_id", c.id.String()).
		Str("username", c.user.Username).
		Int("members", len(r.clients)).
		Msg("Client joined room.")
}

// remove deregisters the connection and returns the remaining member count.
// A connection that is not a member is a no-op.
func (r *Room) remove(c *Client) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[c.id]; ok {
		delete(r.clients, c.id)
		r.logger.Info().
			Str("client_id", c.id.String()).
			Str("username", c.user.Username).
			Int("members", len(r.clients)).
			Msg("Client left room.")
	}

	return len(r.clients)
}

// size returns the current member count.
func (r *Room) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.clients)
}

// Broadcast delivers the event to every member present in the membership
// snapshot taken at fan-out time, including the sender. Each member gets
// exactly one delivery attempt; a member whose queue is full simply misses the
// event, and a member that disconnected after the snapshot absorbs it harmlessly.
func (r *Room) Broadcast(ev Event) {
	r.mu.RLock()
	members := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		members = append(members, c)
	}
	r.mu.RUnlock()

	for _, c := range members {
		c.enqueue(ev)
	}
}
