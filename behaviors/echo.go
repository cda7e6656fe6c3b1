// Package behaviors holds the demo behaviors shared between cmd/actordemo
// (which creates them) and cmd/actorworker (which, for a forked or
// cluster placement, must resolve the same name out of its own
// registry). Spec.md §9's redesign note requires the registry be
// "populated at both ends"; a blank import of this package is what
// populates the worker side, since actorworker never constructs a demo
// actor itself.
package behaviors

import (
	"context"
	"fmt"

	"github.com/najoast/actorkit/behavior"
	"github.com/najoast/actorkit/core"
)

func init() {
	behavior.Register("echo", func() core.Behavior {
		return &behavior.Record{
			NameValue: "echo",
			Handlers: map[string]behavior.HandlerFunc{
				"ping": func(ctx context.Context, self core.Actor, payload any) (any, error) {
					return fmt.Sprintf("pong: %v", payload), nil
				},
			},
		}
	})
}
