package actor

import (
	"context"
	"testing"

	"github.com/najoast/actorkit/core"
)

type fakeUnhealthy struct {
	core.Actor
	cb func()
}

func (f *fakeUnhealthy) OnUnhealthy(cb func()) { f.cb = cb }

func TestBalancerRoundRobin(t *testing.T) {
	log := core.SilentLogger()
	b := NewBalancerActor("bal", "pool", nil, nil, log)

	a1 := NewInMemoryActor("a1", "pool", noopBehavior{}, b, nil, log)
	a2 := NewInMemoryActor("a2", "pool", noopBehavior{}, b, nil, log)
	a3 := NewInMemoryActor("a3", "pool", noopBehavior{}, b, nil, log)
	b.addChild(a1)
	b.addChild(a2)
	b.addChild(a3)

	var order []string
	for i := 0; i < 6; i++ {
		c, ok := b.next()
		if !ok {
			t.Fatal("next() reported no children")
		}
		order = append(order, c.ID())
	}
	want := []string{"a1", "a2", "a3", "a1", "a2", "a3"}
	for i, id := range order {
		if id != want[i] {
			t.Errorf("order[%d] = %q, want %q (full: %v)", i, id, want[i], order)
		}
	}
}

func TestBalancerDropsUnhealthyChild(t *testing.T) {
	log := core.SilentLogger()
	b := NewBalancerActor("bal", "pool", nil, nil, log)

	dead := &fakeUnhealthy{Actor: NewInMemoryActor("dead", "pool", noopBehavior{}, b, nil, log)}
	alive := NewInMemoryActor("alive", "pool", noopBehavior{}, b, nil, log)

	b.addChild(dead)
	b.addChild(alive)

	if dead.cb == nil {
		t.Fatal("addChild did not subscribe to OnUnhealthy for an unhealthySource child")
	}
	dead.cb()

	c, ok := b.next()
	if !ok || c.ID() != "alive" {
		t.Errorf("after dropping dead, next() = %v, want alive", c)
	}
}

func TestBalancerNextEmpty(t *testing.T) {
	b := NewBalancerActor("bal", "pool", nil, nil, core.SilentLogger())
	if _, ok := b.next(); ok {
		t.Error("next() on an empty balancer should report not-ok")
	}
}
