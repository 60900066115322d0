package signaling

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Inbound message types.
const (
	TypeJoinRoom          = "join-room"
	TypeSendMessage       = "send-message"
	TypeSendFile          = "send-file"
	TypeFileChunk         = "file-chunk"
	TypeFileChunkComplete = "file-chunk-complete"
	TypeCallStart         = "call-start"
	TypeCallOffer         = "call-offer"
	TypeCallAnswer        = "call-answer"
	TypeICECandidate      = "ice-candidate"
	TypeCallEnd           = "call-end"
	TypeLeaveRoom         = "leave-room"
)

// Outbound (server-synthesized) message types.
const (
	TypeWelcome        = "welcome"
	TypeRoomUsers      = "room-users"
	TypePeerJoined     = "peer-joined"
	TypePeerLeft       = "peer-left"
	TypeReceiveMessage = "receive-message"
	TypeReceiveFile    = "receive-file"
)

var errUnknownType = errors.New("unknown message type")

// PeerInfo describes one room member in room-users and peer-joined messages.
type PeerInfo struct {
	ClientID string `json:"clientId"`
	Username string `json:"username"`
	Online   bool   `json:"online"`
}

// Envelope is one websocket message, inbound or outbound. It carries the
// union of every type-specific field; which fields are meaningful depends
// on Type. Negotiation and file payloads stay opaque RawMessage: the server
// relays them untouched and never inspects their contents.
type Envelope struct {
	Type string `json:"type"`

	RoomCode   string `json:"roomCode,omitempty"`
	Username   string `json:"username,omitempty"`
	ClientID   string `json:"clientId,omitempty"`
	TargetPeer string `json:"targetPeer,omitempty"`
	From       string `json:"from,omitempty"`

	Message string          `json:"message,omitempty"`
	File    json.RawMessage `json:"file,omitempty"`

	// File chunk relay. ChunkIndex is a pointer so that chunk 0 is not
	// erased by omitempty on the way back out.
	FileID      string          `json:"fileId,omitempty"`
	Chunk       json.RawMessage `json:"chunk,omitempty"`
	ChunkIndex  *int            `json:"chunkIndex,omitempty"`
	TotalChunks int             `json:"totalChunks,omitempty"`
	FileName    string          `json:"fileName,omitempty"`
	FileSize    int64           `json:"fileSize,omitempty"`
	FileType    string          `json:"fileType,omitempty"`

	// Call negotiation metadata.
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
	CallType  string          `json:"callType,omitempty"`

	// Outbound only: the room occupancy snapshot sent to a joining client.
	Users []PeerInfo `json:"users,omitempty"`
}

// ParseEnvelope decodes and validates one inbound frame. Unknown types and
// envelopes missing their required fields are rejected here, at the
// transport boundary, so the hub only ever sees well-formed variants.
func ParseEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Type {
	case TypeJoinRoom:
		if env.RoomCode == "" || env.Username == "" {
			return nil, fmt.Errorf("%s: missing roomCode or username", env.Type)
		}
	case TypeSendMessage:
		if env.Message == "" {
			return nil, fmt.Errorf("%s: missing message", env.Type)
		}
	case TypeSendFile:
		if len(env.File) == 0 {
			return nil, fmt.Errorf("%s: missing file payload", env.Type)
		}
	case TypeFileChunk:
		if env.FileID == "" || env.ChunkIndex == nil || len(env.Chunk) == 0 {
			return nil, fmt.Errorf("%s: missing fileId, chunkIndex or chunk", env.Type)
		}
	case TypeFileChunkComplete:
		if env.FileID == "" {
			return nil, fmt.Errorf("%s: missing fileId", env.Type)
		}
	case TypeCallOffer:
		if len(env.Offer) == 0 {
			return nil, fmt.Errorf("%s: missing offer", env.Type)
		}
	case TypeCallAnswer:
		if len(env.Answer) == 0 {
			return nil, fmt.Errorf("%s: missing answer", env.Type)
		}
	case TypeICECandidate:
		if len(env.Candidate) == 0 {
			return nil, fmt.Errorf("%s: missing candidate", env.Type)
		}
	case TypeCallStart, TypeCallEnd, TypeLeaveRoom:
		// No required fields beyond the type tag.
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownType, env.Type)
	}

	return &env, nil
}
