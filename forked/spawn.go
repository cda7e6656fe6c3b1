package forked

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/najoast/actorkit/core"
)

// SpawnWorker forks execPath with args (debug-port-rewritten per
// spec.md §4.3 step 1), performs the create-actor handshake described in
// spec.md §4.3 ("Spawn (parent side)"), and returns the resulting
// ParentActor once the worker replies actor-created.
func SpawnWorker(
	ctx context.Context,
	execPath string,
	args []string,
	req CreateActorBody,
	system core.System,
	parent core.Actor,
	ports *DebugPortCounter,
) (*ParentActor, error) {
	offset := ports.Next()
	rewritten := RewriteDebugArgs(args, offset)

	cmd := exec.CommandContext(context.Background(), execPath, rewritten...)
	cmd.Stderr = os.Stderr

	transport, err := NewProcessTransport(cmd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSpawnFailed, err)
	}

	var once sync.Once
	result := make(chan struct {
		parent *ParentActor
		err    error
	}, 1)
	finish := func(p *ParentActor, err error) {
		once.Do(func() {
			result <- struct {
				parent *ParentActor
				err    error
			}{p, err}
		})
	}

	transport.OnExit(func(exitErr error) {
		finish(nil, fmt.Errorf("%w: worker exited before actor-created: %v", core.ErrSpawnFailed, exitErr))
	})

	transport.OnMessage(func(f Frame) {
		switch {
		case f.Error != "":
			finish(nil, fmt.Errorf("%w: %s", core.ErrSpawnFailed, f.Error))
		case f.Type == FrameActorCreated:
			body, err := decodeBody[ActorCreatedBody](f.Body)
			if err != nil {
				finish(nil, fmt.Errorf("%w: %v", core.ErrProtocol, err))
				return
			}
			name := req.Behavior
			finish(NewParentActor(body.ID, name, transport, parent, system), nil)
		default:
			finish(nil, fmt.Errorf("%w: unexpected response for create-actor", core.ErrProtocol))
		}
	})

	body, err := encodeBody(req)
	if err != nil {
		_ = transport.Kill()
		return nil, err
	}
	if err := transport.Send(Frame{Type: FrameCreateActor, Body: body}); err != nil {
		_ = transport.Kill()
		return nil, fmt.Errorf("%w: %v", core.ErrSpawnFailed, err)
	}

	select {
	case r := <-result:
		if r.err != nil {
			_ = transport.Kill()
			return nil, r.err
		}
		return r.parent, nil
	case <-ctx.Done():
		_ = transport.Kill()
		return nil, ctx.Err()
	}
}
