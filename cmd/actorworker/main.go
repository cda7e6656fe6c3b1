// Command actorworker is the worker-side external collaborator spec.md
// §4.3 describes for forked placement: it is forked by a parent System,
// reads its create-actor frame off stdin, resolves the named behavior
// out of the shared behavior registry, and replies actor-created once
// its own ActorSystem is ready.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/najoast/actorkit/actor"
	"github.com/najoast/actorkit/behavior"
	_ "github.com/najoast/actorkit/behaviors"
	"github.com/najoast/actorkit/core"
	"github.com/najoast/actorkit/forked"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if err := run(*debug); err != nil {
		fmt.Fprintln(os.Stderr, "actorworker:", err)
		os.Exit(1)
	}
}

func run(debugFlag bool) error {
	transport := forked.NewStdioTransport(os.Stdin, os.Stdout)

	frames := make(chan forked.Frame, 1)
	transport.OnMessage(func(f forked.Frame) { frames <- f })

	first := <-frames
	if first.Type != forked.FrameCreateActor {
		return fmt.Errorf("expected create-actor as first frame, got %q", first.Type)
	}

	var body forked.CreateActorBody
	if len(first.Body) > 0 {
		if err := json.Unmarshal(first.Body, &body); err != nil {
			return fmt.Errorf("decoding create-actor body: %w", err)
		}
	}

	root, err := behavior.Default().New(body.Behavior)
	if err != nil {
		return fmt.Errorf("resolving behavior %q: %w", body.Behavior, err)
	}

	var ctxBehavior core.Behavior
	if body.Context != "" {
		ctxBehavior, err = behavior.Default().New(body.Context)
		if err != nil {
			return fmt.Errorf("resolving context behavior %q: %w", body.Context, err)
		}
	}

	var cfg any
	if len(body.Config) > 0 {
		var doc map[string]core.Placement
		if err := json.Unmarshal(body.Config, &doc); err != nil {
			return fmt.Errorf("decoding config snapshot: %w", err)
		}
		cfg = doc
	}

	sys, err := actor.New(context.Background(), actor.SystemOptions{
		Context: ctxBehavior,
		Root:    root,
		Forked: &actor.ForkedOptions{
			ID:        core.NewID(),
			Transport: transport,
			ParentID:  body.Parent.ID,
		},
		Config: cfg,
		Test:   body.Test,
		Debug:  body.Debug || debugFlag,
	})
	if err != nil {
		return fmt.Errorf("starting forked system: %w", err)
	}

	rootActor, err := sys.Root(context.Background())
	if err != nil {
		return err
	}

	child, ok := rootActor.(*forked.ChildActor)
	if !ok {
		return fmt.Errorf("forked system root is %T, not *forked.ChildActor", rootActor)
	}
	if err := child.SignalCreated(); err != nil {
		return fmt.Errorf("signaling actor-created: %w", err)
	}

	select {}
}
