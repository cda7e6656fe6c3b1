package behavior

import (
	"context"
	"fmt"

	"github.com/najoast/actorkit/core"
)

// Base is the Go realization of spec.md §4.4(b): a "constructable"
// behavior with an optional parent class. A user type embeds Base (or
// another Behavior that itself embeds Base) to inherit its NameValue,
// no-op lifecycle hooks, and default Handle, then defines its own
// Handle method, which Go's method resolution picks over the embedded
// one — the same "most-derived behavior with its inheritance chain
// reconstructed" spec.md §4.4 describes, without any source transport:
// the chain is just ordinary struct embedding.
type Base struct {
	NameValue string
}

var _ core.Behavior = (*Base)(nil)

// Name returns NameValue.
func (b *Base) Name() string { return b.NameValue }

// Handle is the default no-handler behavior; embedders are expected to
// shadow it with their own method.
func (b *Base) Handle(ctx context.Context, self core.Actor, topic string, payload any) (any, error) {
	return nil, fmt.Errorf("%s: no handler for topic %q", b.NameValue, topic)
}

// Initialize is a no-op default lifecycle hook.
func (b *Base) Initialize(ctx context.Context, self core.Actor) error { return nil }

// Destroy is a no-op default lifecycle hook.
func (b *Base) Destroy(ctx context.Context, self core.Actor) error { return nil }
