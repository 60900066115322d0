package signaling

import (
	"fmt"
	"testing"
)

func sequentialIDs() IDGenerator {
	n := 0
	return GeneratorFunc(func() string {
		n++
		return fmt.Sprintf("user_%04d", n)
	})
}

func TestRegisterAssignsUniqueIDs(t *testing.T) {
	r := NewRegistry(sequentialIDs())

	a := &Client{}
	b := &Client{}

	idA := r.Register(a)
	idB := r.Register(b)

	if idA == "" || idB == "" {
		t.Fatal("Register returned an empty id")
	}
	if idA == idB {
		t.Fatalf("Register assigned duplicate id %q", idA)
	}
	if a.ID != idA || b.ID != idB {
		t.Errorf("client ids not set: a=%q b=%q", a.ID, b.ID)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegisterSkipsCollidingIDs(t *testing.T) {
	ids := []string{"dup", "dup", "fresh"}
	i := 0
	r := NewRegistry(GeneratorFunc(func() string {
		id := ids[i]
		i++
		return id
	}))

	r.Register(&Client{})
	id := r.Register(&Client{})
	if id != "fresh" {
		t.Errorf("second Register = %q, want %q", id, "fresh")
	}
}

func TestLookupAndUnregister(t *testing.T) {
	r := NewRegistry(sequentialIDs())
	c := &Client{}
	id := r.Register(c)

	got, ok := r.Lookup(id)
	if !ok || got != c {
		t.Fatalf("Lookup(%q) = %v, %v; want the registered client", id, got, ok)
	}

	if _, ok := r.Lookup("user_gone"); ok {
		t.Error("Lookup of unknown id reported a client")
	}

	r.Unregister(id)
	if _, ok := r.Lookup(id); ok {
		t.Error("Lookup after Unregister reported a client")
	}
	if r.Len() != 0 {
		t.Errorf("Len() after Unregister = %d, want 0", r.Len())
	}

	// Unregistering twice is harmless.
	r.Unregister(id)
}

func TestSetIdentity(t *testing.T) {
	r := NewRegistry(sequentialIDs())
	c := &Client{}
	id := r.Register(c)

	r.SetIdentity(id, "alice", "R1")
	if c.Username != "alice" || c.RoomCode != "R1" {
		t.Errorf("identity = (%q, %q), want (alice, R1)", c.Username, c.RoomCode)
	}

	r.SetIdentity(id, "alice", "")
	if c.RoomCode != "" {
		t.Errorf("RoomCode = %q after clearing, want empty", c.RoomCode)
	}

	// Unknown id is a silent no-op.
	r.SetIdentity("user_gone", "mallory", "R9")
}
