package actor

import (
	"context"

	"github.com/najoast/actorkit/core"
)

// rootActor is the neutral root spec.md §4.1 builds when the caller
// supplies neither options.root nor options.forked: a do-nothing
// behavior that exists only to anchor the actor tree.
type rootActor struct{}

var _ core.Behavior = rootActor{}

func (rootActor) Name() string { return "root" }

func (rootActor) Handle(ctx context.Context, self core.Actor, topic string, payload any) (any, error) {
	return nil, nil
}

func (rootActor) Initialize(ctx context.Context, self core.Actor) error { return nil }
func (rootActor) Destroy(ctx context.Context, self core.Actor) error    { return nil }
