package actor

import (
	"context"
	"testing"
	"time"

	"github.com/najoast/actorkit/core"
)

type recordingBehavior struct {
	order chan string
}

func (b *recordingBehavior) Name() string { return "recorder" }

func (b *recordingBehavior) Handle(ctx context.Context, self core.Actor, topic string, payload any) (any, error) {
	b.order <- payload.(string)
	return payload, nil
}

func (b *recordingBehavior) Initialize(ctx context.Context, self core.Actor) error { return nil }
func (b *recordingBehavior) Destroy(ctx context.Context, self core.Actor) error    { return nil }

// TestFIFOPairwise realizes spec.md §8's testable property: messages
// from a single sender to a single InMemoryActor are processed in send
// order.
func TestFIFOPairwise(t *testing.T) {
	rb := &recordingBehavior{order: make(chan string, 10)}
	a := NewInMemoryActor(core.NewID(), "recorder", rb, nil, nil, core.SilentLogger())
	if err := a.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	for i := 0; i < 5; i++ {
		a.Send("tick", string(rune('a'+i)))
	}

	for i := 0; i < 5; i++ {
		select {
		case got := <-rb.order:
			want := string(rune('a' + i))
			if got != want {
				t.Fatalf("message %d out of order: got %q want %q", i, got, want)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for message")
		}
	}
}

// TestSendBeforeInitializeQueues covers spec.md §3's lifecycle note: a
// message sent before Initialize starts the drain loop still queues and
// is delivered once the actor becomes active.
func TestSendBeforeInitializeQueues(t *testing.T) {
	rb := &recordingBehavior{order: make(chan string, 1)}
	a := NewInMemoryActor(core.NewID(), "recorder", rb, nil, nil, core.SilentLogger())

	a.Send("tick", "queued")

	if err := a.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	select {
	case got := <-rb.order:
		if got != "queued" {
			t.Errorf("got %q, want queued", got)
		}
	case <-time.After(time.Second):
		t.Fatal("queued pre-initialize message was never delivered")
	}
}

func TestSendAndReceiveHandlerError(t *testing.T) {
	rb := &behaviorErroring{}
	a := NewInMemoryActor(core.NewID(), "erroring", rb, nil, nil, core.SilentLogger())
	if err := a.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	_, err := a.SendAndReceive(context.Background(), "boom", nil)
	if err == nil {
		t.Fatal("expected an error from a failing handler")
	}
}

type behaviorErroring struct{}

func (behaviorErroring) Name() string { return "erroring" }
func (behaviorErroring) Handle(ctx context.Context, self core.Actor, topic string, payload any) (any, error) {
	return nil, context.DeadlineExceeded
}
func (behaviorErroring) Initialize(ctx context.Context, self core.Actor) error { return nil }
func (behaviorErroring) Destroy(ctx context.Context, self core.Actor) error    { return nil }

func TestSendAndReceiveAfterDestroyFails(t *testing.T) {
	a := NewInMemoryActor(core.NewID(), "parent", noopBehavior{}, nil, nil, core.SilentLogger())
	if err := a.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if err := a.Destroy(context.Background()); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	if _, err := a.SendAndReceive(context.Background(), "ping", nil); err != core.ErrBeingDestroyed {
		t.Errorf("post-destroy SendAndReceive err = %v, want ErrBeingDestroyed", err)
	}
}
