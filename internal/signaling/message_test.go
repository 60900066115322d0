package signaling

import (
	"encoding/json"
	"testing"
)

func TestParseEnvelopeValid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"join", `{"type":"join-room","roomCode":"R1","username":"alice"}`},
		{"message", `{"type":"send-message","message":"hi"}`},
		{"file", `{"type":"send-file","file":{"data":"aGk="}}`},
		{"chunk zero", `{"type":"file-chunk","fileId":"f1","chunkIndex":0,"totalChunks":3,"chunk":"AAAA"}`},
		{"chunk complete", `{"type":"file-chunk-complete","fileId":"f1"}`},
		{"call start", `{"type":"call-start","callType":"video"}`},
		{"offer", `{"type":"call-offer","targetPeer":"user_x","offer":{"sdp":"v=0"}}`},
		{"answer", `{"type":"call-answer","targetPeer":"user_x","answer":{"sdp":"v=0"}}`},
		{"candidate", `{"type":"ice-candidate","targetPeer":"user_x","candidate":{"c":"host"}}`},
		{"call end", `{"type":"call-end"}`},
		{"leave", `{"type":"leave-room"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseEnvelope([]byte(tt.raw)); err != nil {
				t.Errorf("ParseEnvelope(%s) failed: %v", tt.raw, err)
			}
		})
	}
}

func TestParseEnvelopeRejected(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"unknown type", `{"type":"shutdown-server"}`},
		{"empty type", `{"message":"hi"}`},
		{"join without room", `{"type":"join-room","username":"alice"}`},
		{"join without name", `{"type":"join-room","roomCode":"R1"}`},
		{"empty message", `{"type":"send-message"}`},
		{"file without payload", `{"type":"send-file"}`},
		{"chunk without index", `{"type":"file-chunk","fileId":"f1","chunk":"AAAA"}`},
		{"chunk without fileId", `{"type":"file-chunk","chunkIndex":1,"chunk":"AAAA"}`},
		{"offer without sdp", `{"type":"call-offer","targetPeer":"user_x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if env, err := ParseEnvelope([]byte(tt.raw)); err == nil {
				t.Errorf("ParseEnvelope(%s) = %+v, want error", tt.raw, env)
			}
		})
	}
}

// Chunk index zero must survive a decode/encode round trip, otherwise the
// first chunk of every transfer would arrive without its position.
func TestChunkIndexZeroSurvivesRelay(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"type":"file-chunk","fileId":"f1","chunkIndex":0,"totalChunks":2,"chunk":"AAAA"}`))
	if err != nil {
		t.Fatalf("ParseEnvelope failed: %v", err)
	}

	out, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	idx, ok := decoded["chunkIndex"]
	if !ok {
		t.Fatalf("chunkIndex missing from relayed envelope %s", out)
	}
	if idx != float64(0) {
		t.Errorf("chunkIndex = %v, want 0", idx)
	}
	if decoded["totalChunks"] != float64(2) {
		t.Errorf("totalChunks = %v, want 2", decoded["totalChunks"])
	}
}
