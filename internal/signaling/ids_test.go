package signaling

import (
	"strings"
	"testing"
)

func TestUUIDGeneratorShape(t *testing.T) {
	gen := UUIDGenerator{}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.NewID()
		if !strings.HasPrefix(id, "user_") {
			t.Fatalf("id %q missing user_ prefix", id)
		}
		if len(id) != len("user_")+8 {
			t.Fatalf("id %q has wrong length", id)
		}
		if seen[id] {
			t.Fatalf("id %q generated twice", id)
		}
		seen[id] = true
	}
}

func TestGeneratorFunc(t *testing.T) {
	gen := GeneratorFunc(func() string { return "fixed" })
	if got := gen.NewID(); got != "fixed" {
		t.Errorf("NewID() = %q, want %q", got, "fixed")
	}
}
