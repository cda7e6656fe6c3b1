// Package core defines the actor capability set, behavior contract and
// shared placement/error types that the rest of actorkit builds on.
package core

import "errors"

// Sentinel errors surfaced across actor creation and messaging, named after
// the error kinds in the design's error handling section.
var (
	// ErrUnknownMode is returned synchronously from CreateActor when a
	// placement mode other than "in-memory" or "forked" is requested.
	ErrUnknownMode = errors.New("actorkit: unknown placement mode")

	// ErrSpawnFailed wraps a fork or early worker failure that happens
	// before the worker replies actor-created.
	ErrSpawnFailed = errors.New("actorkit: spawn failed")

	// ErrProtocol is returned when a frame has an unexpected shape or
	// arrives out of order for the pending exchange it claims to answer.
	ErrProtocol = errors.New("actorkit: protocol error")

	// ErrTransportClosed is returned to every pending reply, and to any
	// future call, once a worker's transport has closed.
	ErrTransportClosed = errors.New("actorkit: transport closed")

	// ErrTimeout is returned by SendAndReceive when its deadline elapses
	// before a correlated reply arrives.
	ErrTimeout = errors.New("actorkit: timeout")

	// ErrStubUnresolved is returned by any operation on an ActorStub that
	// has not yet been bound to a concrete actor.
	ErrStubUnresolved = errors.New("actorkit: stub is unresolved")

	// ErrHandlerFailed wraps a user handler's returned error; it is
	// surfaced to SendAndReceive callers and logged+dropped for Send.
	ErrHandlerFailed = errors.New("actorkit: handler failed")

	// ErrBeingDestroyed is returned by SendAndReceive once an actor has
	// begun destruction.
	ErrBeingDestroyed = errors.New("actorkit: actor is being destroyed")

	// ErrBehaviorNotRegistered is returned when a behavior name has no
	// matching factory in the registry consulted for a create-actor
	// request.
	ErrBehaviorNotRegistered = errors.New("actorkit: behavior not registered")
)
