package actor

import (
	"context"

	"github.com/najoast/actorkit/core"
)

// Stub is a placeholder referencing an actor by id before it exists
// locally, per spec.md §4.8 — used when a worker needs to address its
// parent before the parent has handed it a full reference. Until
// Resolve binds a concrete Actor, SendAndReceive, CreateChild,
// Initialize and Destroy fail with ErrStubUnresolved, Send drops the
// message silently, Parent and Children return nil, and ID and Name
// return the values the stub was created with.
type Stub struct {
	id   string
	name string

	resolved core.Actor
}

var _ core.Actor = (*Stub)(nil)

// NewStub returns an unresolved stub for the given id/name.
func NewStub(id, name string) *Stub {
	return &Stub{id: id, name: name}
}

// Resolve binds the stub to a concrete actor. Subsequent operations
// delegate to it.
func (s *Stub) Resolve(actor core.Actor) { s.resolved = actor }

// IsResolved reports whether Resolve has been called.
func (s *Stub) IsResolved() bool { return s.resolved != nil }

func (s *Stub) ID() string   { return s.id }
func (s *Stub) Name() string { return s.name }

func (s *Stub) Parent() core.Actor {
	if s.resolved != nil {
		return s.resolved.Parent()
	}
	return nil
}

func (s *Stub) Children() []core.Actor {
	if s.resolved != nil {
		return s.resolved.Children()
	}
	return nil
}

func (s *Stub) Send(topic string, payload any) {
	if s.resolved != nil {
		s.resolved.Send(topic, payload)
	}
}

func (s *Stub) SendAndReceive(ctx context.Context, topic string, payload any) (any, error) {
	if s.resolved == nil {
		return nil, core.ErrStubUnresolved
	}
	return s.resolved.SendAndReceive(ctx, topic, payload)
}

func (s *Stub) CreateChild(ctx context.Context, b core.Behavior, opts core.Placement) (core.Actor, error) {
	if s.resolved == nil {
		return nil, core.ErrStubUnresolved
	}
	return s.resolved.CreateChild(ctx, b, opts)
}

func (s *Stub) Initialize(ctx context.Context) error {
	if s.resolved == nil {
		return core.ErrStubUnresolved
	}
	return s.resolved.Initialize(ctx)
}

func (s *Stub) Destroy(ctx context.Context) error {
	if s.resolved == nil {
		return core.ErrStubUnresolved
	}
	return s.resolved.Destroy(ctx)
}
