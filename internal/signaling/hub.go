package signaling

import (
	"log/slog"

	"github.com/mah27fuz/p2p-chat-server/internal/config"
	"github.com/mah27fuz/p2p-chat-server/internal/metrics"
)

// inboundEnvelope pairs a decoded envelope with the client that sent it.
type inboundEnvelope struct {
	client *Client
	env    *Envelope
}

// Hub is the central brain of the signaling server: the router that turns
// inbound envelopes into room broadcasts and peer-targeted sends.
//
// Run is the single goroutine that processes register, unregister and
// inbound events, so every join/leave/broadcast sequence is serialized:
// a broadcast snapshot can never observe a half-applied membership change.
type Hub struct {
	cfg config.SignalingConfig

	registry *Registry
	rooms    *RoomDirectory
	metrics  *metrics.Metrics
	logger   *slog.Logger

	register   chan *Client
	unregister chan *Client
	inbound    chan *inboundEnvelope
}

// NewHub creates a hub. The id generator is injected so tests can assign
// deterministic connection ids.
func NewHub(cfg config.SignalingConfig, ids IDGenerator, m *metrics.Metrics, logger *slog.Logger) *Hub {
	return &Hub{
		cfg:        cfg,
		registry:   NewRegistry(ids),
		rooms:      NewRoomDirectory(),
		metrics:    m,
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan *inboundEnvelope),
	}
}

// Register queues a new transport connection for registration. The queue
// is unbuffered, so by the time Register returns the caller may start the
// connection's pumps knowing the hub has already admitted it.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Run starts the hub's main processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleDisconnect(client)

		case in := <-h.inbound:
			h.handleEnvelope(in.client, in.env)
		}
	}
}

// handleRegister assigns the connection its id and greets it. Runs before
// any envelope from the connection because registration is queued ahead of
// the read pump starting.
func (h *Hub) handleRegister(c *Client) {
	id := h.registry.Register(c)

	h.metrics.Inc(metrics.ConnectionsTotal)
	h.metrics.Inc(metrics.ConnectionsActive)
	h.logger.Info("client connected", "client_id", id)

	h.send(c, &Envelope{Type: TypeWelcome, ClientID: id})
}

// handleDisconnect performs the same room cleanup as an explicit leave,
// then retires the connection. The empty-RoomCode guard keeps the cleanup
// at-most-once when a leave message and the disconnect overlap.
func (h *Hub) handleDisconnect(c *Client) {
	h.leaveCurrentRoom(c)
	h.registry.Unregister(c.ID)

	h.metrics.Dec(metrics.ConnectionsActive)
	h.logger.Info("client disconnected", "client_id", c.ID)

	// Stops the client's write pump. Safe because nothing routes to this
	// client once it is out of the registry and every room.
	close(c.Send)
}

func (h *Hub) handleEnvelope(c *Client, env *Envelope) {
	switch env.Type {
	case TypeJoinRoom:
		h.handleJoin(c, env)

	case TypeSendMessage:
		h.relayToRoom(c, &Envelope{
			Type:     TypeReceiveMessage,
			Message:  env.Message,
			From:     c.ID,
			Username: c.Username,
		})

	case TypeSendFile:
		h.relayToRoom(c, &Envelope{
			Type:     TypeReceiveFile,
			File:     env.File,
			FileName: env.FileName,
			FileSize: env.FileSize,
			FileType: env.FileType,
			From:     c.ID,
			Username: c.Username,
		})

	case TypeFileChunk, TypeFileChunkComplete:
		// Pure pass-through: chunk fields are relayed unchanged and the
		// server never reassembles anything. Receivers key on fileId.
		relay := *env
		relay.From = c.ID
		h.relayToRoom(c, &relay)

	case TypeCallStart, TypeCallOffer, TypeCallAnswer, TypeICECandidate, TypeCallEnd:
		h.relayNegotiation(c, env)

	case TypeLeaveRoom:
		h.leaveCurrentRoom(c)
	}
}

// handleJoin moves the client into a room: existing members hear
// peer-joined before the newcomer is added, then the newcomer alone gets
// the occupancy snapshot that now includes itself.
func (h *Hub) handleJoin(c *Client, env *Envelope) {
	rejoin := c.RoomCode == env.RoomCode && c.RoomCode != ""
	if c.RoomCode != "" && !rejoin {
		h.leaveCurrentRoom(c)
	}

	h.registry.SetIdentity(c.ID, env.Username, env.RoomCode)

	if !rejoin {
		h.broadcast(env.RoomCode, c, &Envelope{
			Type:     TypePeerJoined,
			ClientID: c.ID,
			Username: c.Username,
		})
		h.rooms.Join(env.RoomCode, c)
	}

	members := h.rooms.Members(env.RoomCode)
	users := make([]PeerInfo, 0, len(members))
	for _, m := range members {
		users = append(users, PeerInfo{ClientID: m.ID, Username: m.Username, Online: true})
	}
	h.send(c, &Envelope{Type: TypeRoomUsers, RoomCode: env.RoomCode, Users: users})

	h.logger.Info("client joined room",
		"client_id", c.ID, "username", c.Username,
		"room", env.RoomCode, "peers", len(members))
}

// relayNegotiation routes call metadata: peer-targeted when the envelope
// names a target, room broadcast otherwise. The payload fields travel
// unchanged; only from is stamped by the server.
func (h *Hub) relayNegotiation(c *Client, env *Envelope) {
	if c.RoomCode == "" {
		h.metrics.Inc(metrics.DropReasonNotInRoom)
		return
	}

	relay := &Envelope{
		Type:      env.Type,
		Offer:     env.Offer,
		Answer:    env.Answer,
		Candidate: env.Candidate,
		CallType:  env.CallType,
		From:      c.ID,
		Username:  c.Username,
	}

	if env.TargetPeer != "" {
		h.sendToPeer(env.TargetPeer, relay)
		return
	}
	h.broadcast(c.RoomCode, c, relay)
	h.metrics.Inc(metrics.EnvelopesRelayed)
}

// relayToRoom broadcasts an already-built outbound envelope to the
// sender's current room. Unjoined senders are dropped silently.
func (h *Hub) relayToRoom(c *Client, relay *Envelope) {
	if c.RoomCode == "" {
		h.metrics.Inc(metrics.DropReasonNotInRoom)
		return
	}
	h.broadcast(c.RoomCode, c, relay)
	h.metrics.Inc(metrics.EnvelopesRelayed)
}

// leaveCurrentRoom removes the client from whatever room it is in and
// tells the remaining members. No-op for unjoined clients, which makes it
// idempotent across explicit leave and disconnect cleanup.
func (h *Hub) leaveCurrentRoom(c *Client) {
	if c.RoomCode == "" {
		return
	}
	code := c.RoomCode

	h.rooms.Leave(code, c)
	h.registry.SetIdentity(c.ID, c.Username, "")

	h.broadcast(code, c, &Envelope{
		Type:     TypePeerLeft,
		ClientID: c.ID,
		Username: c.Username,
	})

	if h.rooms.Count(code) == 0 {
		h.logger.Info("room closed", "room", code)
	} else {
		h.logger.Info("client left room", "client_id", c.ID, "room", code)
	}
}

// broadcast fans an envelope out to every room member except the sender.
// Delivery is fire-and-forget per recipient.
func (h *Hub) broadcast(code string, sender *Client, env *Envelope) {
	for _, m := range h.rooms.Members(code) {
		if m == sender {
			continue
		}
		if !m.TrySend(env) {
			h.metrics.Inc(metrics.DropReasonSlowPeer)
			h.logger.Warn("dropping envelope for slow peer",
				"client_id", m.ID, "type", env.Type)
		}
	}
}

// sendToPeer delivers to exactly the named connection, or to nobody if it
// is already gone. Room membership of the target is deliberately not
// re-checked; the caller's view is trusted.
func (h *Hub) sendToPeer(targetID string, env *Envelope) {
	target, ok := h.registry.Lookup(targetID)
	if !ok {
		h.metrics.Inc(metrics.DropReasonNoTarget)
		return
	}
	h.send(target, env)
	h.metrics.Inc(metrics.EnvelopesRelayed)
}

func (h *Hub) send(c *Client, env *Envelope) {
	if !c.TrySend(env) {
		h.metrics.Inc(metrics.DropReasonSlowPeer)
		h.logger.Warn("dropping envelope for slow peer",
			"client_id", c.ID, "type", env.Type)
	}
}
