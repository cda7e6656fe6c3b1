// Package actor implements the orchestrator (System) and the
// placement-dispatched actor variants described in spec.md §4:
// InMemoryActor, ActorStub, the round-robin balancer, and the root
// actor. Forked placement is handled by the sibling forked package;
// System wires the two together behind the single CreateActor dispatch
// point spec.md §4.1 calls for.
package actor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/najoast/actorkit/core"
)

type lifecycleState int32

const (
	stateCreated lifecycleState = iota
	stateActive
	stateDestroying
	stateTerminal
)

// envelope is one mailbox entry: a fire-and-forget message has a nil
// reply channel, an ask-style message's reply channel carries exactly
// one replyResult.
type envelope struct {
	topic   string
	payload any
	reply   chan replyResult
}

type replyResult struct {
	value any
	err   error
}

// inMemoryActor is the purely local actor of spec.md §4.2: an ordered
// mailbox drained by a single goroutine, so no two handlers of the same
// actor ever run concurrently and a single sender's messages are
// processed in send order.
type inMemoryActor struct {
	id       string
	name     string
	parent   core.Actor
	behavior core.Behavior
	system   core.System
	log      core.Logger

	mailbox chan envelope
	stopCh  chan struct{}

	mu       sync.Mutex
	children []core.Actor

	state int32 // lifecycleState, atomic
}

var _ core.Actor = (*inMemoryActor)(nil)

const defaultMailboxSize = 256

// NewInMemoryActor constructs an actor hosting behavior locally. The
// mailbox accepts sends immediately; the behavior's Initialize hook (and
// the goroutine that drains the mailbox) only starts once Initialize is
// called, so messages sent beforehand queue exactly as spec.md §3's
// lifecycle section describes.
func NewInMemoryActor(id, name string, behavior core.Behavior, parent core.Actor, system core.System, log core.Logger) *inMemoryActor {
	return &inMemoryActor{
		id:       id,
		name:     name,
		behavior: behavior,
		parent:   parent,
		system:   system,
		log:      log,
		mailbox:  make(chan envelope, defaultMailboxSize),
		stopCh:   make(chan struct{}),
	}
}

func (a *inMemoryActor) ID() string         { return a.id }
func (a *inMemoryActor) Name() string       { return a.name }
func (a *inMemoryActor) Parent() core.Actor { return a.parent }

func (a *inMemoryActor) Children() []core.Actor {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]core.Actor, len(a.children))
	copy(out, a.children)
	return out
}

func (a *inMemoryActor) isDestroying() bool {
	return lifecycleState(atomic.LoadInt32(&a.state)) >= stateDestroying
}

// Send enqueues a fire-and-forget message, blocking until the mailbox
// accepts it so that FIFO ordering from this sender is never broken by a
// dropped-when-full shortcut. Once destruction has begun the message is
// dropped with a logged warning, per spec.md §3.
func (a *inMemoryActor) Send(topic string, payload any) {
	if a.isDestroying() {
		a.log.Warnf("actor %s: dropping send(%q): actor is being destroyed", a.id, topic)
		return
	}
	select {
	case a.mailbox <- envelope{topic: topic, payload: payload}:
	case <-a.stopCh:
		a.log.Warnf("actor %s: dropping send(%q): actor is being destroyed", a.id, topic)
	}
}

// SendAndReceive enqueues an ask-style message and blocks for its reply,
// honoring ctx. Once destruction has begun it fails immediately with
// ErrBeingDestroyed, per spec.md §3.
func (a *inMemoryActor) SendAndReceive(ctx context.Context, topic string, payload any) (any, error) {
	if a.isDestroying() {
		return nil, core.ErrBeingDestroyed
	}

	reply := make(chan replyResult, 1)
	select {
	case a.mailbox <- envelope{topic: topic, payload: payload, reply: reply}:
	case <-a.stopCh:
		return nil, core.ErrBeingDestroyed
	case <-ctx.Done():
		return nil, core.ErrTimeout
	}

	select {
	case res := <-reply:
		return res.value, res.err
	case <-ctx.Done():
		return nil, core.ErrTimeout
	}
}

// CreateChild delegates to the owning System, the single dispatch point
// for placement.
func (a *inMemoryActor) CreateChild(ctx context.Context, b core.Behavior, opts core.Placement) (core.Actor, error) {
	child, err := a.system.CreateActor(ctx, b, a, opts)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.children = append(a.children, child)
	a.mu.Unlock()
	return child, nil
}

// Initialize runs the behavior's startup hook, then starts the mailbox
// processing loop.
func (a *inMemoryActor) Initialize(ctx context.Context) error {
	if err := a.behavior.Initialize(ctx, a); err != nil {
		return err
	}
	atomic.StoreInt32(&a.state, int32(stateActive))
	go a.loop()
	return nil
}

func (a *inMemoryActor) loop() {
	for {
		select {
		case env := <-a.mailbox:
			a.process(env)
		case <-a.stopCh:
			return
		}
	}
}

func (a *inMemoryActor) process(env envelope) {
	value, err := a.behavior.Handle(context.Background(), a, env.topic, env.payload)
	if env.reply != nil {
		if err != nil {
			env.reply <- replyResult{err: fmt.Errorf("%w: %v", core.ErrHandlerFailed, err)}
		} else {
			env.reply <- replyResult{value: value}
		}
		return
	}
	if err != nil {
		a.log.Warnf("actor %s: handler for %q failed: %v", a.id, env.topic, err)
	}
}

// Destroy runs the behavior's teardown hook, tears down every child, and
// marks the actor terminal. Per spec.md §3's invariant, this always
// completes before a parent's own Destroy resolves.
func (a *inMemoryActor) Destroy(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&a.state, int32(stateActive), int32(stateDestroying)) {
		atomic.CompareAndSwapInt32(&a.state, int32(stateCreated), int32(stateDestroying))
	}

	err := a.behavior.Destroy(ctx, a)

	a.mu.Lock()
	children := make([]core.Actor, len(a.children))
	copy(children, a.children)
	a.mu.Unlock()

	var wg sync.WaitGroup
	for _, c := range children {
		wg.Add(1)
		go func(c core.Actor) {
			defer wg.Done()
			_ = c.Destroy(ctx)
		}(c)
	}
	wg.Wait()

	close(a.stopCh)
	atomic.StoreInt32(&a.state, int32(stateTerminal))
	return err
}
