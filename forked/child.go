package forked

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/najoast/actorkit/core"
)

// frameQueueSize bounds how far the forwarding loop may lag behind the
// transport's read loop before a send blocks, mirroring the in-memory
// actor's mailbox (actor/inmemory.go's defaultMailboxSize).
const frameQueueSize = 256

// ChildActor is the worker-side wrapper described in spec.md §4.3: it
// owns the upward Transport to its parent, forwards incoming
// actor-message frames to the in-memory actor it wraps, and replies with
// actor-response frames. Per spec.md §3's invariant, its ID matches the
// ParentActor the parent process holds for it.
type ChildActor struct {
	inner     core.Actor
	transport Transport
	frames    chan Frame
}

var _ core.Actor = (*ChildActor)(nil)

// NewChildActor wraps inner (the worker's local root actor) and starts
// servicing frames arriving on transport.
func NewChildActor(inner core.Actor, transport Transport) *ChildActor {
	c := &ChildActor{inner: inner, transport: transport, frames: make(chan Frame, frameQueueSize)}
	transport.OnMessage(c.handleFrame)
	go c.processLoop()
	return c
}

func (c *ChildActor) ID() string          { return c.inner.ID() }
func (c *ChildActor) Name() string        { return c.inner.Name() }
func (c *ChildActor) Parent() core.Actor  { return c.inner.Parent() }
func (c *ChildActor) Children() []core.Actor { return c.inner.Children() }

func (c *ChildActor) Send(topic string, payload any) { c.inner.Send(topic, payload) }

func (c *ChildActor) SendAndReceive(ctx context.Context, topic string, payload any) (any, error) {
	return c.inner.SendAndReceive(ctx, topic, payload)
}

func (c *ChildActor) CreateChild(ctx context.Context, b core.Behavior, opts core.Placement) (core.Actor, error) {
	return c.inner.CreateChild(ctx, b, opts)
}

func (c *ChildActor) Initialize(ctx context.Context) error { return c.inner.Initialize(ctx) }

// Destroy tears down the inner actor. The destroyed acknowledgement back
// up the transport is sent by the destroy-frame handler, not here, since
// Destroy can also be invoked locally inside the worker.
func (c *ChildActor) Destroy(ctx context.Context) error { return c.inner.Destroy(ctx) }

// SignalCreated replies actor-created{id} on the upward transport, the
// final step of the spawn handshake from spec.md §4.3 ("worker side").
func (c *ChildActor) SignalCreated() error {
	body, _ := encodeBody(ActorCreatedBody{ID: c.inner.ID()})
	return c.transport.Send(Frame{Type: FrameActorCreated, Body: body})
}

// handleFrame runs on the transport's own read loop, which decodes
// frames in FIFO order; it only enqueues onto frames so that order is
// preserved into processLoop instead of being lost to a fresh goroutine
// per frame racing to reach the inner actor's mailbox.
func (c *ChildActor) handleFrame(f Frame) {
	switch f.Type {
	case FrameActorMessage, FrameDestroy:
		c.frames <- f
	default:
	}
}

// processLoop services frames one at a time, in the order the transport
// delivered them, satisfying spec.md §4.3's per-link ordering guarantee
// regardless of how long an individual actor-message takes to handle.
func (c *ChildActor) processLoop() {
	for f := range c.frames {
		switch f.Type {
		case FrameActorMessage:
			c.serviceMessage(f)
		case FrameDestroy:
			c.serviceDestroy()
		}
	}
}

func (c *ChildActor) serviceMessage(f Frame) {
	ctx := context.Background()
	body, err := decodeBody[ActorMessageBody](f.Body)
	if err != nil {
		c.replyError(f.ID, fmt.Errorf("%w: %v", core.ErrProtocol, err))
		return
	}

	var payload any
	if len(body.Payload) > 0 {
		if err := json.Unmarshal(body.Payload, &payload); err != nil {
			c.replyError(f.ID, fmt.Errorf("%w: %v", core.ErrProtocol, err))
			return
		}
	}

	if f.ID == "" {
		c.inner.Send(body.Topic, payload)
		return
	}

	result, err := c.inner.SendAndReceive(ctx, body.Topic, payload)
	if err != nil {
		c.replyError(f.ID, err)
		return
	}
	c.replyOK(f.ID, result)
}

func (c *ChildActor) replyOK(corrID string, result any) {
	raw, err := json.Marshal(result)
	if err != nil {
		c.replyError(corrID, err)
		return
	}
	body, _ := encodeBody(ActorResponseBody{Payload: raw})
	_ = c.transport.Send(Frame{Type: FrameActorResponse, ID: corrID, Body: body})
}

func (c *ChildActor) replyError(corrID string, err error) {
	_ = c.transport.Send(Frame{Type: FrameActorResponse, ID: corrID, Error: err.Error()})
}

func (c *ChildActor) serviceDestroy() {
	_ = c.inner.Destroy(context.Background())
	_ = c.transport.Send(Frame{Type: FrameDestroyed})
}
