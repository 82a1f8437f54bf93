package chat

import (
	"sort"
	"sync"
)

// Registry maps user ids to their set of live connections. A user is online
// iff they have at least one registered connection; empty sets are removed
// immediately so the map never holds offline users. All state is in-memory:
// presence is ephemeral and a restart simply forces clients to reconnect.
type Registry struct {
	mu sync.RWMutex

	// conns maps userID → connID → client. Multiple connections per user
	// (several tabs) are expected.
	conns map[string]map[string]*Client
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]map[string]*Client),
	}
}

// Register adds the connection to the user's set, creating the set if absent.
// Registering the same ids twice is idempotent. Returns true when the user
// had no connections before this call, i.e. they just came online.
func (r *Registry) Register(userID, connID string, c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[userID]
	if !ok {
		set = make(map[string]*Client)
		r.conns[userID] = set
	}
	set[connID] = c

	return !ok
}

// Unregister removes the connection from the user's set, deleting the entry
// entirely when the set becomes empty. Unknown ids are a no-op, which makes
// duplicate close events harmless. Reports whether the connection was
// actually present and whether its removal took the user offline; both are
// decided under the same lock so the transition can never be stale.
func (r *Registry) Unregister(userID, connID string) (removed, wentOffline bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[userID]
	if !ok {
		return false, false
	}

	if _, ok := set[connID]; !ok {
		return false, false
	}

	delete(set, connID)
	if len(set) == 0 {
		delete(r.conns, userID)
		return true, true
	}

	return true, false
}

// IsOnline reports whether the user has at least one live connection.
func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns[userID]) > 0
}

// OnlineUsers returns the sorted ids of every user with at least one live
// connection.
func (r *Registry) OnlineUsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.onlineUsersLocked()
}

func (r *Registry) onlineUsersLocked() []string {
	users := make([]string, 0, len(r.conns))
	for userID := range r.conns {
		users = append(users, userID)
	}
	sort.Strings(users)
	return users
}

// ConnectionsFor returns the user's live connections, possibly empty.
func (r *Registry) ConnectionsFor(userID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.conns[userID]
	clients := make([]*Client, 0, len(set))
	for _, c := range set {
		clients = append(clients, c)
	}
	return clients
}

// Snapshot returns the online-user set and every live connection under a
// single lock acquisition, so a presence broadcast never pairs a stale
// online list with a newer connection set.
func (r *Registry) Snapshot() (online []string, clients []*Client) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	online = r.onlineUsersLocked()

	for _, set := range r.conns {
		for _, c := range set {
			clients = append(clients, c)
		}
	}
	return online, clients
}
