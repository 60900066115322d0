package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for a signaling server instance.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Signaling SignalingConfig `yaml:"signaling"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// SignalingConfig holds websocket and relay tuning knobs.
type SignalingConfig struct {
	ReadBufferBytes  int `yaml:"read_buffer_bytes"`
	WriteBufferBytes int `yaml:"write_buffer_bytes"`

	// MaxMessageBytes bounds a single inbound frame. Needs to fit a full
	// SDP offer or one file chunk.
	MaxMessageBytes int64 `yaml:"max_message_bytes"`

	PongWait  time.Duration `yaml:"pong_wait"`
	WriteWait time.Duration `yaml:"write_wait"`

	// SendQueueLen is the per-client outbound buffer. A client whose
	// queue is full has envelopes dropped rather than stalling the hub.
	SendQueueLen int `yaml:"send_queue_len"`
}

// PingPeriod derives the ping interval from the pong wait. Must be less
// than PongWait so a healthy peer always answers in time.
func (s SignalingConfig) PingPeriod() time.Duration {
	return (s.PongWait * 9) / 10
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Signaling.ReadBufferBytes == 0 {
		c.Signaling.ReadBufferBytes = 64 * 1024
	}
	if c.Signaling.WriteBufferBytes == 0 {
		c.Signaling.WriteBufferBytes = 64 * 1024
	}
	if c.Signaling.MaxMessageBytes == 0 {
		c.Signaling.MaxMessageBytes = 64 * 1024
	}
	if c.Signaling.PongWait == 0 {
		c.Signaling.PongWait = 60 * time.Second
	}
	if c.Signaling.WriteWait == 0 {
		c.Signaling.WriteWait = 10 * time.Second
	}
	if c.Signaling.SendQueueLen == 0 {
		c.Signaling.SendQueueLen = 256
	}
}

// Validate checks invariants that defaults alone cannot guarantee.
func (c *Config) Validate() error {
	if c.Signaling.MaxMessageBytes < 1024 {
		return fmt.Errorf("signaling.max_message_bytes %d is too small", c.Signaling.MaxMessageBytes)
	}
	if c.Signaling.PongWait <= c.Signaling.WriteWait {
		return fmt.Errorf("signaling.pong_wait %s must exceed write_wait %s", c.Signaling.PongWait, c.Signaling.WriteWait)
	}
	if c.Signaling.SendQueueLen < 1 {
		return fmt.Errorf("signaling.send_queue_len %d must be positive", c.Signaling.SendQueueLen)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q is not text or json", c.Log.Format)
	}
	return nil
}

// Default returns a config with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
