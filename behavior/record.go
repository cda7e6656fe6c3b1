package behavior

import (
	"context"
	"fmt"

	"github.com/najoast/actorkit/core"
)

// HandlerFunc processes the payload of a single topic.
type HandlerFunc func(ctx context.Context, self core.Actor, payload any) (any, error)

// Record is the Go realization of spec.md §4.4(a): "a plain data record
// of named handler functions". It needs no struct embedding or method
// overriding — just a topic→handler table and optional lifecycle hooks.
type Record struct {
	NameValue    string
	Handlers     map[string]HandlerFunc
	OnInitialize func(ctx context.Context, self core.Actor) error
	OnDestroy    func(ctx context.Context, self core.Actor) error
}

var _ core.Behavior = (*Record)(nil)

// Name returns the record's configured name.
func (r *Record) Name() string { return r.NameValue }

// Handle dispatches to the handler registered for topic.
func (r *Record) Handle(ctx context.Context, self core.Actor, topic string, payload any) (any, error) {
	h, ok := r.Handlers[topic]
	if !ok {
		return nil, fmt.Errorf("%s: no handler for topic %q", r.NameValue, topic)
	}
	return h(ctx, self, payload)
}

// Initialize runs OnInitialize if set.
func (r *Record) Initialize(ctx context.Context, self core.Actor) error {
	if r.OnInitialize == nil {
		return nil
	}
	return r.OnInitialize(ctx, self)
}

// Destroy runs OnDestroy if set.
func (r *Record) Destroy(ctx context.Context, self core.Actor) error {
	if r.OnDestroy == nil {
		return nil
	}
	return r.OnDestroy(ctx, self)
}
