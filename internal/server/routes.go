package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mah27fuz/p2p-chat-server/internal/config"
	"github.com/mah27fuz/p2p-chat-server/internal/metrics"
	"github.com/mah27fuz/p2p-chat-server/internal/signaling"
)

// ServeWs returns an http.HandlerFunc that upgrades the request to a
// websocket and hands the connection to the hub.
func ServeWs(hub *signaling.Hub, cfg config.SignalingConfig) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferBytes,
		WriteBufferSize: cfg.WriteBufferBytes,

		// We need to check the origin, but for development, we can allow all.
		// In production, you'd check r.Header.Get("Origin") against your frontend's domain
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("failed to upgrade connection", "err", err)
			return
		}

		client := &signaling.Client{
			Hub:  hub,
			Conn: conn,
			Send: make(chan *signaling.Envelope, cfg.SendQueueLen),
		}

		// Registration is queued before the read pump starts, so the hub
		// assigns the id and sends welcome before any inbound envelope.
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump()
	}
}

// HealthHandler answers liveness probes with a plain status line.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Signaling server is healthy."))
}

// StatsHandler dumps the counter registry as JSON.
func StatsHandler(m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(m.Snapshot()); err != nil {
			slog.Error("failed to encode stats", "err", err)
		}
	}
}
