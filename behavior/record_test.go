package behavior

import (
	"context"
	"testing"

	"github.com/najoast/actorkit/core"
)

func TestRecordDispatchesRegisteredHandler(t *testing.T) {
	r := &Record{
		NameValue: "echo",
		Handlers: map[string]HandlerFunc{
			"ping": func(ctx context.Context, self core.Actor, payload any) (any, error) {
				return payload, nil
			},
		},
	}

	got, err := r.Handle(context.Background(), nil, "ping", "hello")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if got != "hello" {
		t.Errorf("Handle returned %v, want hello", got)
	}
}

func TestRecordUnknownTopicErrors(t *testing.T) {
	r := &Record{NameValue: "echo", Handlers: map[string]HandlerFunc{}}
	if _, err := r.Handle(context.Background(), nil, "missing", nil); err == nil {
		t.Error("Handle for an unregistered topic should error")
	}
}

func TestRecordLifecycleHooksOptional(t *testing.T) {
	r := &Record{NameValue: "echo"}
	if err := r.Initialize(context.Background(), nil); err != nil {
		t.Errorf("Initialize with no hook set: %v", err)
	}
	if err := r.Destroy(context.Background(), nil); err != nil {
		t.Errorf("Destroy with no hook set: %v", err)
	}
}

func TestRecordLifecycleHooksRun(t *testing.T) {
	var initRan, destroyRan bool
	r := &Record{
		NameValue:    "echo",
		OnInitialize: func(ctx context.Context, self core.Actor) error { initRan = true; return nil },
		OnDestroy:    func(ctx context.Context, self core.Actor) error { destroyRan = true; return nil },
	}
	_ = r.Initialize(context.Background(), nil)
	_ = r.Destroy(context.Background(), nil)
	if !initRan || !destroyRan {
		t.Error("expected both lifecycle hooks to run")
	}
}
