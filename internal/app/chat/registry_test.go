package chat

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReyMar81/gestor-doc/internal/app/user"
)

func newRegistryClient(g *Registry, id, room string) *Client {
	deps := Deps{
		Registry:   g,
		Profiles:   &fakeProfiles{},
		Translator: &fakeTranslator{},
		DailyLimit: 10,
	}
	return NewClient(deps, nil, user.User{ID: id, Username: id}, room)
}

func TestJoinCreatesRoomImplicitly(t *testing.T) {
	g := NewRegistry()
	require.Equal(t, 0, g.RoomCount())

	a := newRegistryClient(g, "a", "team1")
	assert.Equal(t, 1, g.RoomCount())
	assert.Equal(t, "team1", a.room.Name())

	b := newRegistryClient(g, "b", "team1")
	assert.Equal(t, 1, g.RoomCount())
	assert.Same(t, a.room, b.room)
}

func TestJoinIsIdempotentPerConnection(t *testing.T) {
	g := NewRegistry()

	a := newRegistryClient(g, "a", "team1")
	g.Join("team1", a)

	assert.Equal(t, 1, a.room.size())
}

func TestEmptyRoomIsGarbageCollected(t *testing.T) {
	g := NewRegistry()

	a := newRegistryClient(g, "a", "team1")
	b := newRegistryClient(g, "b", "team1")

	g.Leave(a)
	assert.Equal(t, 1, g.RoomCount())

	g.Leave(b)
	assert.Equal(t, 0, g.RoomCount())
}

func TestLeaveIsIdempotent(t *testing.T) {
	g := NewRegistry()

	a := newRegistryClient(g, "a", "team1")
	g.Leave(a)
	g.Leave(a)

	assert.Equal(t, 0, g.RoomCount())
}

func TestBroadcastSkipsDepartedConnections(t *testing.T) {
	g := NewRegistry()

	a := newRegistryClient(g, "a", "team1")
	b := newRegistryClient(g, "b", "team1")

	room := a.room
	g.Leave(b)

	room.Broadcast(Event{Message: "still here", Username: "a", Type: TypeText, SourceLang: "es"})

	ev := receiveEvent(t, a)
	assert.Equal(t, "still here", ev.Message)
	assertNoEvent(t, b)
}

func TestSameUserMayHoldMultipleConnections(t *testing.T) {
	g := NewRegistry()

	first := newRegistryClient(g, "a", "team1")
	second := newRegistryClient(g, "a", "team1")

	require.Equal(t, 2, first.room.size())

	first.room.Broadcast(Event{Message: "hi", Username: "a", Type: TypeText, SourceLang: "es"})

	receiveEvent(t, first)
	receiveEvent(t, second)
}

func TestConcurrentJoinLeaveBroadcast(t *testing.T) {
	g := NewRegistry()

	// One stable member observes while churn happens around it.
	observer := newRegistryClient(g, "observer", "busy")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			c := newRegistryClient(g, fmt.Sprintf("u%d", n), "busy")
			c.room.Broadcast(Event{Message: "m", Username: c.user.Username, Type: TypeText, SourceLang: "es"})
			g.Leave(c)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, observer.room.size())
	assert.Equal(t, 1, g.RoomCount())
}

func TestRegistryShutdownClearsRooms(t *testing.T) {
	g := NewRegistry()

	newRegistryClient(g, "a", "team1")
	newRegistryClient(g, "b", "team2")
	require.Equal(t, 2, g.RoomCount())

	g.Shutdown()

	assert.Equal(t, 0, g.RoomCount())
}

func TestRegistriesAreIsolated(t *testing.T) {
	g1 := NewRegistry()
	g2 := NewRegistry()

	a := newRegistryClient(g1, "a", "team1")
	b := newRegistryClient(g2, "b", "team1")

	a.room.Broadcast(Event{Message: "only g1", Username: "a", Type: TypeText, SourceLang: "es"})

	receiveEvent(t, a)
	assertNoEvent(t, b)
}
