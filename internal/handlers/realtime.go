package handlers

import (
	"sync"
)

// clientConn is the slice of socketio.Conn the registry needs. Kept
// narrow so tests can drive the registry with fakes.
type clientConn interface {
	ID() string
	Emit(event string, args ...interface{})
}

// Registry maps a user identity to the set of their active
// connections. Membership is connection-scoped: a connection enters on
// join and is removed on disconnect, nothing is persisted.
type Registry struct {
	mu     sync.RWMutex
	users  map[string]map[string]clientConn // userID -> connID -> conn
	byConn map[string]string                // connID -> userID
}

func NewRegistry() *Registry {
	return &Registry{
		users:  make(map[string]map[string]clientConn),
		byConn: make(map[string]string),
	}
}

// Join binds a connection to a user's delivery channel. A connection
// belongs to at most one user; re-joining moves it.
func (r *Registry) Join(userID string, conn clientConn) {
	if userID == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byConn[conn.ID()]; ok && prev != userID {
		delete(r.users[prev], conn.ID())
		if len(r.users[prev]) == 0 {
			delete(r.users, prev)
		}
	}

	if r.users[userID] == nil {
		r.users[userID] = make(map[string]clientConn)
	}
	r.users[userID][conn.ID()] = conn
	r.byConn[conn.ID()] = userID
}

// Leave removes a connection, cleaning up its user entry when that was
// the user's last connection.
func (r *Registry) Leave(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[connID]
	if !ok {
		return
	}
	delete(r.byConn, connID)
	delete(r.users[userID], connID)
	if len(r.users[userID]) == 0 {
		delete(r.users, userID)
	}
}

// Push emits the event to every connection of one user. Best-effort:
// offline users simply miss the event, history stays queryable. The
// number of connections reached is returned.
func (r *Registry) Push(userID, event string, payload interface{}) int {
	r.mu.RLock()
	conns := make([]clientConn, 0, len(r.users[userID]))
	for _, conn := range r.users[userID] {
		conns = append(conns, conn)
	}
	r.mu.RUnlock()

	for _, conn := range conns {
		conn.Emit(event, payload)
	}
	return len(conns)
}

// Broadcast emits the event to every identified connection. Used for
// the ephemeral activity relays, never for durable data.
func (r *Registry) Broadcast(event string, payload interface{}) {
	r.mu.RLock()
	conns := make([]clientConn, 0, len(r.byConn))
	for _, byUser := range r.users {
		for _, conn := range byUser {
			conns = append(conns, conn)
		}
	}
	r.mu.RUnlock()

	for _, conn := range conns {
		conn.Emit(event, payload)
	}
}

// IsOnline reports whether the user has at least one connection.
func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users[userID]) > 0
}
