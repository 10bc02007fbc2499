package ws

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureRoomIsIdempotent(t *testing.T) {
	g := NewRegistry()

	rm := g.EnsureRoom("lobby")
	require.NotNil(t, rm)
	assert.Same(t, rm, g.EnsureRoom("lobby"))
	assert.Equal(t, 1, g.Len())
}

func TestRoomNamesAreCaseSensitive(t *testing.T) {
	g := NewRegistry()

	a := g.EnsureRoom("Lobby")
	b := g.EnsureRoom("lobby")
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, g.Len())
}

func TestJoinAndLeave(t *testing.T) {
	g := NewRegistry()
	c := NewConn(nil, 8, time.Minute)

	rm := g.Join("lobby", c)
	assert.Equal(t, 1, rm.Len())
	assert.Same(t, rm, g.Room("lobby"))

	// Duplicate join is a no-op.
	g.Join("lobby", c)
	assert.Equal(t, 1, rm.Len())

	g.Leave("lobby", c)
	assert.Nil(t, g.Room("lobby"), "empty room is pruned")
	assert.Equal(t, 0, g.Len())
}

func TestLeaveUnknownRoomOrMember(t *testing.T) {
	g := NewRegistry()
	c := NewConn(nil, 8, time.Minute)

	assert.Nil(t, g.Leave("nowhere", c))

	g.Join("lobby", NewConn(nil, 8, time.Minute))
	rm := g.Leave("lobby", c) // c never joined
	require.NotNil(t, rm)
	assert.Equal(t, 1, rm.Len())
}

func TestRoomAddRemoveReportChanges(t *testing.T) {
	rm := NewRoom("lobby")
	c := NewConn(nil, 8, time.Minute)

	assert.True(t, rm.Add(c))
	assert.False(t, rm.Add(c))
	assert.True(t, rm.Remove(c))
	assert.False(t, rm.Remove(c))
}

func TestSnapshotIsACopy(t *testing.T) {
	rm := NewRoom("lobby")
	a := NewConn(nil, 8, time.Minute)
	b := NewConn(nil, 8, time.Minute)
	rm.Add(a)
	rm.Add(b)

	snap := rm.Snapshot()
	rm.Remove(a)
	rm.Remove(b)
	assert.Len(t, snap, 2, "snapshot unaffected by later mutation")
	assert.Equal(t, 0, rm.Len())
}

func TestBroadcastExcludesSenderAndClosed(t *testing.T) {
	rm := NewRoom("lobby")
	sender := NewConn(nil, 8, time.Minute)
	open := NewConn(nil, 8, time.Minute)
	gone := NewConn(nil, 8, time.Minute)
	rm.Add(sender)
	rm.Add(open)
	rm.Add(gone)
	require.NoError(t, gone.Close())

	sent, dropped := rm.Broadcast([]byte(`{"type":"system","text":"x"}`), sender)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, dropped)
	assert.Len(t, open.out, 1)
	assert.Empty(t, sender.out)
	assert.Empty(t, gone.out)
}

func TestBroadcastDropsWhenQueueFull(t *testing.T) {
	rm := NewRoom("lobby")
	slow := NewConn(nil, 1, time.Minute)
	rm.Add(slow)

	payload := []byte(`{"type":"system","text":"x"}`)
	sent, dropped := rm.Broadcast(payload, nil)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 0, dropped)

	sent, dropped = rm.Broadcast(payload, nil)
	assert.Equal(t, 0, sent)
	assert.Equal(t, 1, dropped, "full queue is skipped, never blocked on")
}

// Concurrent joins and leaves across goroutines must never lose an
// update: whoever completed a join with no later leave is a member.
func TestRegistryConcurrentJoinLeave(t *testing.T) {
	g := NewRegistry()
	const workers = 32

	conns := make([]*Conn, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		conns[i] = NewConn(nil, 8, time.Minute)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			room := fmt.Sprintf("r%d", i%2)
			g.Join(room, conns[i])
			if i%4 == 0 {
				g.Leave(room, conns[i])
			}
		}(i)
	}
	wg.Wait()

	total := 0
	for _, name := range []string{"r0", "r1"} {
		if rm := g.Room(name); rm != nil {
			total += rm.Len()
		}
	}
	assert.Equal(t, workers-workers/4, total)
}
