package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/mah27fuz/p2p-chat-server/internal/config"
	"github.com/mah27fuz/p2p-chat-server/internal/logging"
	"github.com/mah27fuz/p2p-chat-server/internal/metrics"
	"github.com/mah27fuz/p2p-chat-server/internal/server"
	"github.com/mah27fuz/p2p-chat-server/internal/signaling"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (defaults apply when empty)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadAndValidate(*configPath)
		if err != nil {
			logging.Init("error", "text").Error("failed to load config", "path", *configPath, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := logging.Init(cfg.Log.Level, cfg.Log.Format)
	m := metrics.New()

	hub := signaling.NewHub(cfg.Signaling, signaling.UUIDGenerator{}, m, logger)
	go hub.Run()

	http.HandleFunc("/health", server.HealthHandler)
	http.HandleFunc("/stats", server.StatsHandler(m))
	http.HandleFunc("/ws", server.ServeWs(hub, cfg.Signaling))

	logger.Info("starting signaling server", "addr", cfg.Server.ListenAddr)
	if err := http.ListenAndServe(cfg.Server.ListenAddr, nil); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}
