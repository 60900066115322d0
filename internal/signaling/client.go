package signaling

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/mah27fuz/p2p-chat-server/internal/metrics"
)

// Client is a wrapper for a single websocket connection (a peer). The ID,
// Username and RoomCode fields form the connection's identity: ID is
// assigned at registration, the other two are set on join and only ever
// mutated from the hub goroutine.
type Client struct {
	// Hub is the hub this client is registered with.
	Hub *Hub

	// Conn is the websocket connection. Nil in hub-level tests, which
	// observe the Send channel directly instead of running the pumps.
	Conn *websocket.Conn

	ID       string
	Username string
	RoomCode string

	// Send is the buffered outbound queue. The hub writes to it through
	// TrySend and WritePump drains it onto the wire.
	Send chan *Envelope
}

// TrySend queues an envelope without blocking. A full queue means the peer
// is not draining its connection; the envelope is dropped so one stalled
// peer cannot delay delivery to anyone else.
func (c *Client) TrySend(env *Envelope) bool {
	select {
	case c.Send <- env:
		return true
	default:
		return false
	}
}

// ReadPump pumps messages from the websocket connection to the hub.
//
// The application runs ReadPump in a per-connection goroutine. The
// application ensures that there is at most one reader on a connection by
// executing all reads from this goroutine.
func (c *Client) ReadPump() {
	// When this function exits (e.g., connection closes), unregister the client
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	cfg := c.Hub.cfg
	c.Conn.SetReadLimit(cfg.MaxMessageBytes)
	c.Conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Debug("websocket read error", "client_id", c.ID, "err", err)
			}
			break
		}

		// A malformed envelope is dropped here without touching the
		// connection; only transport errors end the pump.
		env, err := ParseEnvelope(data)
		if err != nil {
			c.Hub.metrics.Inc(metrics.DropReasonMalformed)
			c.Hub.logger.Debug("dropping malformed envelope", "client_id", c.ID, "err", err)
			continue
		}

		c.Hub.inbound <- &inboundEnvelope{client: c, env: env}
	}
}

// WritePump pumps messages from the hub to the websocket connection.
//
// A goroutine running WritePump is started for each connection. The
// application ensures that there is at most one writer to a connection by
// executing all writes from this goroutine.
func (c *Client) WritePump() {
	cfg := c.Hub.cfg
	ticker := time.NewTicker(cfg.PingPeriod())

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case env, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteJSON(env); err != nil {
				c.Hub.logger.Debug("websocket write error", "client_id", c.ID, "err", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
