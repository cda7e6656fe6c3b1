package forked_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/najoast/actorkit/actor"
	"github.com/najoast/actorkit/behavior"
	"github.com/najoast/actorkit/core"
	"github.com/najoast/actorkit/forked"
)

// pipeEnds wires two io.Pipe pairs into a symmetric byte-stream link, so
// a ParentActor-side Transport and a ChildActor-side Transport can speak
// the frame protocol in-process without actually forking anything.
func pipeEnds() (parentR io.Reader, parentW io.WriteCloser, childR io.Reader, childW io.WriteCloser) {
	r1, w1 := io.Pipe() // parent -> child
	r2, w2 := io.Pipe() // child -> parent
	return r2, w1, r1, w2
}

func TestParentChildRoundTrip(t *testing.T) {
	pr, pw, cr, cw := pipeEnds()
	parentTransport := forked.NewStdioTransport(pr, pw)
	childTransport := forked.NewStdioTransport(cr, cw)

	echo := &behavior.Record{
		NameValue: "echo",
		Handlers: map[string]behavior.HandlerFunc{
			"ping": func(ctx context.Context, self core.Actor, payload any) (any, error) {
				return "pong", nil
			},
		},
	}

	ctx := context.Background()
	childInner := mustInMemoryActor(t, ctx, echo)
	child := forked.NewChildActor(childInner, childTransport)
	if err := child.SignalCreated(); err != nil {
		t.Fatalf("SignalCreated: %v", err)
	}

	parent := forked.NewParentActor(childInner.ID(), "echo", parentTransport, nil, nil)

	reqCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	reply, err := parent.SendAndReceive(reqCtx, "ping", nil)
	if err != nil {
		t.Fatalf("SendAndReceive: %v", err)
	}
	if reply != "pong" {
		t.Errorf("reply = %v, want pong", reply)
	}
}

func TestParentDestroyTransport(t *testing.T) {
	pr, pw, cr, cw := pipeEnds()
	parentTransport := forked.NewStdioTransport(pr, pw)
	childTransport := forked.NewStdioTransport(cr, cw)

	ctx := context.Background()
	echo := &behavior.Record{NameValue: "echo", Handlers: map[string]behavior.HandlerFunc{}}
	childInner := mustInMemoryActor(t, ctx, echo)
	child := forked.NewChildActor(childInner, childTransport)
	parent := forked.NewParentActor(childInner.ID(), "echo", parentTransport, nil, nil)

	destroyCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := parent.Destroy(destroyCtx); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	_ = child
}

func mustInMemoryActor(t *testing.T, ctx context.Context, b core.Behavior) core.Actor {
	t.Helper()
	sys, err := actor.New(ctx, actor.SystemOptions{Test: true})
	if err != nil {
		t.Fatalf("actor.New: %v", err)
	}
	root, err := sys.Root(ctx)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	child, err := root.CreateChild(ctx, b, core.Placement{Mode: core.ModeInMemory})
	if err != nil {
		t.Fatalf("CreateChild: %v", err)
	}
	return child
}
