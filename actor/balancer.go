package actor

import (
	"context"
	"sync"

	"github.com/najoast/actorkit/core"
)

// unhealthySource is implemented by *forked.ParentActor; checked
// structurally so the balancer does not depend on forked's concrete
// types (System in this package imports forked, and forked never
// imports actor, which keeps the dependency graph acyclic).
type unhealthySource interface {
	OnUnhealthy(func())
}

// balancerActor is the Go realization of spec.md §4.7: it holds an
// ordered list of equivalent children and forwards traffic round-robin,
// dropping a child from rotation once its transport reports unhealthy.
// Grounded on the teacher's StrategyRoundRobin load balancer
// (core/service_discovery.go), adapted from "pick one service instance"
// to "forward this actor message and advance a cursor".
type balancerActor struct {
	id     string
	name   string
	parent core.Actor
	system core.System
	log    core.Logger

	mu       sync.Mutex
	children []core.Actor
	cursor   int
}

var _ core.Actor = (*balancerActor)(nil)

// NewBalancerActor returns an empty balancer; children are added with
// CreateChild, the same entry point every other actor variant uses.
func NewBalancerActor(id, name string, parent core.Actor, system core.System, log core.Logger) *balancerActor {
	return &balancerActor{id: id, name: name, parent: parent, system: system, log: log}
}

func (b *balancerActor) ID() string         { return b.id }
func (b *balancerActor) Name() string       { return b.name }
func (b *balancerActor) Parent() core.Actor { return b.parent }

func (b *balancerActor) Children() []core.Actor {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]core.Actor, len(b.children))
	copy(out, b.children)
	return out
}

// next returns the next child in rotation, advancing the cursor modulo
// the current (possibly shrunk) child count.
func (b *balancerActor) next() (core.Actor, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.children) == 0 {
		return nil, false
	}
	child := b.children[b.cursor%len(b.children)]
	b.cursor = (b.cursor + 1) % len(b.children)
	return child, true
}

func (b *balancerActor) Send(topic string, payload any) {
	child, ok := b.next()
	if !ok {
		b.log.Warnf("balancer %s: send(%q) with no healthy children", b.id, topic)
		return
	}
	child.Send(topic, payload)
}

func (b *balancerActor) SendAndReceive(ctx context.Context, topic string, payload any) (any, error) {
	child, ok := b.next()
	if !ok {
		return nil, core.ErrTransportClosed
	}
	return child.SendAndReceive(ctx, topic, payload)
}

// CreateChild appends a new child to the rotation, per spec.md §4.7.
func (b *balancerActor) CreateChild(ctx context.Context, behavior core.Behavior, opts core.Placement) (core.Actor, error) {
	child, err := b.system.CreateActor(ctx, behavior, b, opts)
	if err != nil {
		return nil, err
	}
	b.addChild(child)
	return child, nil
}

func (b *balancerActor) addChild(child core.Actor) {
	b.mu.Lock()
	b.children = append(b.children, child)
	b.mu.Unlock()

	if src, ok := child.(unhealthySource); ok {
		src.OnUnhealthy(func() { b.removeChild(child) })
	}
}

func (b *balancerActor) removeChild(dead core.Actor) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.children {
		if c == dead {
			b.children = append(b.children[:i], b.children[i+1:]...)
			if b.cursor > i {
				b.cursor--
			}
			if len(b.children) > 0 {
				b.cursor %= len(b.children)
			} else {
				b.cursor = 0
			}
			b.log.Warnf("balancer %s: dropped unhealthy child %s", b.id, dead.ID())
			return
		}
	}
}

func (b *balancerActor) Initialize(ctx context.Context) error { return nil }

// Destroy cascades to every child, per spec.md §4.7.
func (b *balancerActor) Destroy(ctx context.Context) error {
	b.mu.Lock()
	children := make([]core.Actor, len(b.children))
	copy(children, b.children)
	b.mu.Unlock()

	var wg sync.WaitGroup
	for _, c := range children {
		wg.Add(1)
		go func(c core.Actor) {
			defer wg.Done()
			_ = c.Destroy(ctx)
		}(c)
	}
	wg.Wait()
	return nil
}
