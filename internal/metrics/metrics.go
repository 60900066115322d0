package metrics

import "sync"

// Counter names used by the signaling hub.
const (
	ConnectionsTotal    = "connections_total"
	ConnectionsActive   = "connections_active"
	EnvelopesRelayed    = "envelopes_relayed"
	DropReasonMalformed = "dropped_malformed"
	DropReasonSlowPeer  = "dropped_slow_peer"
	DropReasonNoTarget  = "dropped_missing_target"
	DropReasonNotInRoom = "dropped_not_in_room"
)

// Metrics is a minimal, concurrency-safe counter registry. Kept small on
// purpose so the relay logic stays testable without a metrics backend.
type Metrics struct {
	mu sync.Mutex
	m  map[string]uint64
}

func New() *Metrics {
	return &Metrics{
		m: make(map[string]uint64),
	}
}

func (m *Metrics) Inc(name string) {
	m.mu.Lock()
	m.m[name]++
	m.mu.Unlock()
}

func (m *Metrics) Dec(name string) {
	m.mu.Lock()
	if m.m[name] > 0 {
		m.m[name]--
	}
	m.mu.Unlock()
}

func (m *Metrics) Get(name string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.m[name]
}

// Snapshot returns a copy of every counter, for the /stats endpoint.
func (m *Metrics) Snapshot() map[string]uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]uint64, len(m.m))
	for k, v := range m.m {
		out[k] = v
	}
	return out
}
