package signaling

import "sync"

// Registry maps connection ids to live clients. It is the single owner of
// connection identity: ids are minted here and a client exists in exactly
// one registry entry from Register until Unregister.
type Registry struct {
	ids IDGenerator

	mu      sync.RWMutex
	clients map[string]*Client
}

func NewRegistry(ids IDGenerator) *Registry {
	return &Registry{
		ids:     ids,
		clients: make(map[string]*Client),
	}
}

// Register assigns the client a fresh connection id and records it.
// Must be called exactly once per transport connect, before any message
// from that connection is processed.
func (r *Registry) Register(c *Client) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.ids.NewID()
	for _, taken := r.clients[id]; taken; _, taken = r.clients[id] {
		id = r.ids.NewID()
	}
	c.ID = id
	r.clients[id] = c
	return id
}

// SetIdentity updates the mutable identity fields of a registered client.
// Unknown ids are ignored.
func (r *Registry) SetIdentity(id, username, roomCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clients[id]; ok {
		c.Username = username
		c.RoomCode = roomCode
	}
}

// Lookup resolves a connection id to its client. A miss means the peer
// already disconnected; callers treat that as a silent no-op.
func (r *Registry) Lookup(id string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	return c, ok
}

// Unregister removes the client record. Called exactly once per transport
// disconnect, after room cleanup has used the record's RoomCode.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
