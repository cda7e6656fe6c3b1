package core

import "context"

// Actor is the capability set shared by every placement variant:
// in-memory, forked-parent, forked-child, stub and the round-robin
// balancer. Variants differ only in how Send and SendAndReceive are
// realized underneath.
type Actor interface {
	// ID returns the actor's globally-unique, stable identifier.
	ID() string

	// Name returns the human-readable name derived from the actor's
	// behavior at creation time.
	Name() string

	// Parent returns the actor's parent, or nil for the root.
	Parent() Actor

	// Children returns a snapshot of the actor's current children.
	Children() []Actor

	// Send delivers a fire-and-forget message. Delivery order is
	// preserved per sender/receiver pair; failures are logged, not
	// returned.
	Send(topic string, payload any)

	// SendAndReceive delivers an ask-style message and blocks for the
	// correlated reply, honoring ctx cancellation/deadline.
	SendAndReceive(ctx context.Context, topic string, payload any) (any, error)

	// CreateChild spawns a new actor beneath this one, resolving
	// placement the same way System.CreateActor does.
	CreateChild(ctx context.Context, behavior Behavior, opts Placement) (Actor, error)

	// Initialize runs the actor's user-supplied startup hook, if any.
	Initialize(ctx context.Context) error

	// Destroy runs the user-supplied teardown hook, then tears down
	// children, and finally marks the actor terminal.
	Destroy(ctx context.Context) error
}

// Behavior is a user-supplied handler table together with optional
// lifecycle hooks, per spec.md §4.4/§9: reimplementations model a
// behavior as a table topic→handler rather than transporting source
// code across the wire.
type Behavior interface {
	// Name identifies the behavior for configuration lookup. Its
	// decapitalized form is the key consulted in the config document.
	Name() string

	// Handle processes a single message addressed to `topic`. A nil
	// return value means "no reply" (fine for Send, an empty reply for
	// SendAndReceive).
	Handle(ctx context.Context, self Actor, topic string, payload any) (any, error)

	// Initialize runs once, before the actor processes any message;
	// messages sent earlier stay queued until it completes.
	Initialize(ctx context.Context, self Actor) error

	// Destroy runs once, before children are torn down.
	Destroy(ctx context.Context, self Actor) error
}

// System is the orchestrator described in spec.md §4.1: it resolves
// placement, serializes/registers behaviors for forks, and wires child
// transports.
type System interface {
	// Root blocks until the system is fully bootstrapped and returns
	// the root actor.
	Root(ctx context.Context) (Actor, error)

	// CreateActor is the single dispatch point for placement: resolves
	// config precedence, cluster fan-out, and in-memory/forked mode.
	CreateActor(ctx context.Context, behavior Behavior, parent Actor, opts Placement) (Actor, error)

	// Destroy tears down the root (and transitively every descendant)
	// and releases system resources.
	Destroy(ctx context.Context) error
}
