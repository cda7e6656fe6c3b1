package forked

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/najoast/actorkit/core"
)

// pendingReply tracks one outstanding SendAndReceive awaiting its
// actor-response frame.
type pendingReply struct {
	result chan frameResult
}

type frameResult struct {
	payload json.RawMessage
	err     error
}

// ParentActor is the parent-process proxy to a root actor hosted in a
// forked worker, per spec.md §4.3. Messages sent to it are framed over
// Transport to the matching ForkedActorChild on the other side.
type ParentActor struct {
	id        string
	name      string
	transport Transport
	parent    core.Actor
	system    core.System

	mu           sync.Mutex
	children     []core.Actor
	pending      map[string]*pendingReply
	dead         error // set once the transport has closed
	unhealthyCbs []func()
}

var _ core.Actor = (*ParentActor)(nil)

// NewParentActor wraps transport as the parent-side proxy for a worker
// whose root actor id is id. system is consulted by CreateChild, the
// same single dispatch point every other Actor variant delegates to.
func NewParentActor(id, name string, transport Transport, parent core.Actor, system core.System) *ParentActor {
	p := &ParentActor{
		id:        id,
		name:      name,
		transport: transport,
		parent:    parent,
		system:    system,
		pending:   make(map[string]*pendingReply),
	}
	transport.OnMessage(p.handleFrame)
	transport.OnExit(p.handleExit)
	return p
}

func (p *ParentActor) ID() string      { return p.id }
func (p *ParentActor) Name() string    { return p.name }
func (p *ParentActor) Parent() core.Actor { return p.parent }

func (p *ParentActor) Children() []core.Actor {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]core.Actor, len(p.children))
	copy(out, p.children)
	return out
}

// Send writes a fire-and-forget actor-message frame.
func (p *ParentActor) Send(topic string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	body, _ := encodeBody(ActorMessageBody{Topic: topic, Payload: raw})
	_ = p.transport.Send(Frame{Type: FrameActorMessage, Body: body})
}

// SendAndReceive writes an actor-message frame carrying a correlation id
// and blocks for the matching actor-response, honoring ctx.
func (p *ParentActor) SendAndReceive(ctx context.Context, topic string, payload any) (any, error) {
	p.mu.Lock()
	if p.dead != nil {
		err := p.dead
		p.mu.Unlock()
		return nil, err
	}
	corrID := core.NewID()
	reply := &pendingReply{result: make(chan frameResult, 1)}
	p.pending[corrID] = reply
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.pending, corrID)
		p.mu.Unlock()
	}()

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	body, _ := encodeBody(ActorMessageBody{Topic: topic, Payload: raw})
	if err := p.transport.Send(Frame{Type: FrameActorMessage, ID: corrID, Body: body}); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrTransportClosed, err)
	}

	select {
	case res := <-reply.result:
		if res.err != nil {
			return nil, res.err
		}
		var v any
		if len(res.payload) > 0 {
			if err := json.Unmarshal(res.payload, &v); err != nil {
				return nil, fmt.Errorf("%w: %v", core.ErrProtocol, err)
			}
		}
		return v, nil
	case <-ctx.Done():
		return nil, core.ErrTimeout
	}
}

// CreateChild delegates to the owning System, the single placement
// dispatch point, with this actor as the new child's logical parent.
func (p *ParentActor) CreateChild(ctx context.Context, b core.Behavior, opts core.Placement) (core.Actor, error) {
	child, err := p.system.CreateActor(ctx, b, p, opts)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.children = append(p.children, child)
	p.mu.Unlock()
	return child, nil
}

// Initialize is a no-op: the worker handshake already ran to completion
// by the time NewParentActor is constructed.
func (p *ParentActor) Initialize(ctx context.Context) error { return nil }

// Destroy asks the worker to tear down, waits for its acknowledgement
// (or transport closure), then kills the process.
func (p *ParentActor) Destroy(ctx context.Context) error {
	done := make(chan struct{})
	var once sync.Once
	p.transport.OnMessage(func(f Frame) {
		if f.Type == FrameDestroyed {
			once.Do(func() { close(done) })
			return
		}
		p.handleFrame(f)
	})
	p.transport.OnExit(func(err error) {
		p.handleExit(err)
		once.Do(func() { close(done) })
	})

	p.mu.Lock()
	closed := p.dead != nil
	p.mu.Unlock()
	if closed {
		once.Do(func() { close(done) })
	} else {
		_ = p.transport.Send(Frame{Type: FrameDestroy})
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
	return p.transport.Kill()
}

// OnUnhealthy subscribes cb to fire once the worker's transport closes.
// RoundRobinBalancerActor uses this to drop a dead child from rotation,
// per spec.md §4.7.
func (p *ParentActor) OnUnhealthy(cb func()) {
	p.mu.Lock()
	p.unhealthyCbs = append(p.unhealthyCbs, cb)
	p.mu.Unlock()
}

func (p *ParentActor) handleFrame(f Frame) {
	switch f.Type {
	case FrameActorResponse:
		p.resolvePending(f)
	default:
	}
}

func (p *ParentActor) resolvePending(f Frame) {
	p.mu.Lock()
	reply, ok := p.pending[f.ID]
	p.mu.Unlock()
	if !ok {
		return
	}
	if f.Error != "" {
		reply.result <- frameResult{err: fmt.Errorf("%w: %s", core.ErrHandlerFailed, f.Error)}
		return
	}
	body, err := decodeBody[ActorResponseBody](f.Body)
	if err != nil {
		reply.result <- frameResult{err: fmt.Errorf("%w: %v", core.ErrProtocol, err)}
		return
	}
	reply.result <- frameResult{payload: body.Payload}
}

// handleExit fails every pending reply with ErrTransportClosed, per
// spec.md §5's cancellation rule for worker exit.
func (p *ParentActor) handleExit(err error) {
	p.mu.Lock()
	p.dead = core.ErrTransportClosed
	pending := p.pending
	p.pending = make(map[string]*pendingReply)
	cbs := p.unhealthyCbs
	p.mu.Unlock()

	for _, reply := range pending {
		reply.result <- frameResult{err: core.ErrTransportClosed}
	}
	for _, cb := range cbs {
		cb()
	}
}
