package handlers

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	id string

	mu     sync.Mutex
	events []string
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Emit(event string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func TestRegistryPushReachesAllUserConnections(t *testing.T) {
	r := NewRegistry()

	phone := &fakeConn{id: "c1"}
	laptop := &fakeConn{id: "c2"}
	other := &fakeConn{id: "c3"}

	r.Join("alice", phone)
	r.Join("alice", laptop)
	r.Join("bob", other)

	reached := r.Push("alice", "receiveMessage", "payload")

	assert.Equal(t, 2, reached)
	assert.Equal(t, 1, phone.count())
	assert.Equal(t, 1, laptop.count())
	assert.Zero(t, other.count())
}

func TestRegistryPushToOfflineUserIsNoop(t *testing.T) {
	r := NewRegistry()

	reached := r.Push("ghost", "receiveMessage", "payload")
	assert.Zero(t, reached)
}

func TestRegistryLeaveCleansUp(t *testing.T) {
	r := NewRegistry()

	conn := &fakeConn{id: "c1"}
	r.Join("alice", conn)
	assert.True(t, r.IsOnline("alice"))

	r.Leave("c1")
	assert.False(t, r.IsOnline("alice"))
	assert.Zero(t, r.Push("alice", "receiveMessage", nil))

	// leaving twice must not panic
	r.Leave("c1")
}

func TestRegistryRejoinMovesConnection(t *testing.T) {
	r := NewRegistry()

	conn := &fakeConn{id: "c1"}
	r.Join("alice", conn)
	r.Join("alice2", conn)

	assert.False(t, r.IsOnline("alice"))
	assert.True(t, r.IsOnline("alice2"))
}

func TestRegistryBroadcast(t *testing.T) {
	r := NewRegistry()

	a := &fakeConn{id: "c1"}
	b := &fakeConn{id: "c2"}
	r.Join("alice", a)
	r.Join("bob", b)

	r.Broadcast("postLiked", map[string]string{"postId": "p1"})

	assert.Equal(t, 1, a.count())
	assert.Equal(t, 1, b.count())
}

func TestRegistryConcurrentJoinLeave(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn := &fakeConn{id: string(rune('a' + i%26))}
			r.Join("user", conn)
			r.Push("user", "ev", nil)
			r.Leave(conn.ID())
		}(i)
	}
	wg.Wait()

	assert.False(t, r.IsOnline("user"))
}
