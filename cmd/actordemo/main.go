// Command actordemo wires up the scenarios spec.md §8 names: an
// in-memory echo actor, a forked echo actor, and a three-way
// round-robin cluster. Grounded on the teacher's
// examples/cluster_example/main.go wiring style.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/najoast/actorkit/actor"
	"github.com/najoast/actorkit/behavior"
	_ "github.com/najoast/actorkit/behaviors"
	"github.com/najoast/actorkit/core"
)

func main() {
	mode := flag.String("mode", "in-memory", "placement mode for the echo actor: in-memory, forked, or cluster")
	workerPath := flag.String("worker", "", "path to the actorworker binary for forked/cluster (default: actorworker on PATH)")
	flag.Parse()

	ctx := context.Background()

	sys, err := actor.New(ctx, actor.SystemOptions{
		WorkerExecPath: *workerPath,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "actordemo: starting system:", err)
		os.Exit(1)
	}

	root, err := sys.Root(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "actordemo: root:", err)
		os.Exit(1)
	}

	echoBehavior, err := behavior.Default().New("echo")
	if err != nil {
		fmt.Fprintln(os.Stderr, "actordemo: resolving behavior:", err)
		os.Exit(1)
	}

	placement := core.Placement{}
	switch *mode {
	case "in-memory":
		placement.Mode = core.ModeInMemory
	case "forked":
		placement.Mode = core.ModeForked
	case "cluster":
		placement.Mode = core.ModeForked
		placement.ClusterSize = 3
	default:
		fmt.Fprintln(os.Stderr, "actordemo: unknown mode", *mode)
		os.Exit(1)
	}

	child, err := root.CreateChild(ctx, echoBehavior, placement)
	if err != nil {
		fmt.Fprintln(os.Stderr, "actordemo: create child:", err)
		os.Exit(1)
	}

	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	reply, err := child.SendAndReceive(reqCtx, "ping", "hello")
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "actordemo: ping:", err)
		os.Exit(1)
	}
	fmt.Println(reply)

	destroyCtx, cancelDestroy := context.WithTimeout(ctx, 10*time.Second)
	defer cancelDestroy()
	if err := sys.Destroy(destroyCtx); err != nil {
		fmt.Fprintln(os.Stderr, "actordemo: shutdown:", err)
		os.Exit(1)
	}
}
