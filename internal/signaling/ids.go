package signaling

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces connection ids. Injected into the registry so tests
// can substitute a deterministic sequence.
type IDGenerator interface {
	NewID() string
}

// GeneratorFunc adapts a plain function to the IDGenerator interface.
type GeneratorFunc func() string

func (f GeneratorFunc) NewID() string { return f() }

// UUIDGenerator is the production id source: a short random identifier in
// the "user_xxxxxxxx" shape clients display to each other.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "user_" + raw[:8]
}
