package actor

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sync"

	"github.com/najoast/actorkit/config"
	"github.com/najoast/actorkit/core"
	"github.com/najoast/actorkit/forked"
)

// ForkedOptions marks this process as a worker attached to a parent over
// transport, per spec.md §4.1: "if options.forked is set, the process is
// a worker".
type ForkedOptions struct {
	ID        string
	Transport forked.Transport

	// ParentID identifies the actor this worker's root is attached
	// beneath, per the create-actor frame's ParentRef (spec.md §4.3
	// step 2). The worker has no local object for that actor, only its
	// id, so it's wired in as an ActorStub (spec.md §4.8) rather than
	// left nil.
	ParentID string
}

// SystemOptions mirrors the options bag of spec.md §4.1's System.new.
type SystemOptions struct {
	// Context is an optional system-wide behavior instantiated alongside
	// the root and carried to forked workers (spec.md §4.3 step 2's
	// "serialized system context behavior").
	Context core.Behavior

	// Root becomes the in-memory root behavior, unless Forked is set.
	Root core.Behavior

	// Forked, when non-nil, makes this System a worker's view of its
	// own root rather than a fresh orchestrator.
	Forked *ForkedOptions

	// Config is one of the three sources spec.md §4.6 names: a
	// config.Document, a path string, or nil.
	Config any

	Test  bool
	Debug bool
	Log   *core.Logger

	// WorkerExecPath launches a child actor placed in forked mode.
	// Empty resolves to "actorworker" on PATH, the cmd/actorworker
	// binary this module ships.
	WorkerExecPath string
	WorkerArgs     []string
}

// System is the orchestrator of spec.md §4.1: it owns the root, the
// resolved configuration, and the per-System debug port counter that
// keeps concurrent forked children from colliding on inspector ports.
type System struct {
	opts SystemOptions
	log  core.Logger

	config config.Document
	loader *config.Loader

	root        core.Actor
	contextRoot core.Actor

	debugPorts *forked.DebugPortCounter

	destroyOnce sync.Once
}

var _ core.System = (*System)(nil)

// New bootstraps a System to completion, per spec.md §4.1's ordered
// sequence: resolve context, select log level, resolve root, load
// config, initialize root. Unlike the promise-based original, New does
// not return until the root is ready, so Root never blocks afterward.
func New(ctx context.Context, opts SystemOptions) (*System, error) {
	s := &System{
		opts:       opts,
		loader:     config.NewLoader(),
		debugPorts: forked.NewDebugPortCounter(),
	}

	if opts.Log != nil {
		s.log = *opts.Log
	} else {
		s.log = core.NewLogger(core.LevelFor(opts.Test, opts.Debug))
	}

	s.config = s.loader.Resolve(opts.Config, s.log)

	if opts.Context != nil {
		ctxActor := NewInMemoryActor(core.NewID(), core.ResolveName(opts.Context), opts.Context, nil, s, s.log.With("context"))
		if err := ctxActor.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("system: context initialize: %w", err)
		}
		s.contextRoot = ctxActor
	}

	root, err := s.buildRoot(ctx)
	if err != nil {
		return nil, err
	}
	s.root = root

	s.config = s.loader.Resolve(opts.Config, s.log)

	if err := s.root.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("system: root initialize: %w", err)
	}

	return s, nil
}

// buildRoot realizes spec.md §4.1's root-resolution branch: a forked
// child wrapping an inner in-memory root when options.Forked is set, an
// in-memory root when options.Root is set, or a neutral RootActor.
func (s *System) buildRoot(ctx context.Context) (core.Actor, error) {
	rootBehavior := s.opts.Root
	if rootBehavior == nil {
		rootBehavior = rootActor{}
	}

	if s.opts.Forked != nil {
		var parent core.Actor
		if s.opts.Forked.ParentID != "" {
			parent = NewStub(s.opts.Forked.ParentID, "")
		}
		inner := NewInMemoryActor(s.opts.Forked.ID, core.ResolveName(rootBehavior), rootBehavior, parent, s, s.log)
		return forked.NewChildActor(inner, s.opts.Forked.Transport), nil
	}

	return NewInMemoryActor(core.NewID(), core.ResolveName(rootBehavior), rootBehavior, nil, s, s.log), nil
}

// Root returns the already-bootstrapped root; New does not return until
// it is ready, so this never blocks.
func (s *System) Root(ctx context.Context) (core.Actor, error) {
	return s.root, nil
}

// CreateActor is the single placement dispatch point of spec.md §4.1.
func (s *System) CreateActor(ctx context.Context, b core.Behavior, parent core.Actor, opts core.Placement) (core.Actor, error) {
	name := core.ResolveName(b)
	entry := s.config.Lookup(core.ConfigKey(name))
	placement := core.Merge(entry, opts).Normalized()

	if placement.ClusterSize > 1 {
		return s.createCluster(ctx, b, parent, placement)
	}

	switch placement.Mode {
	case core.ModeInMemory:
		inst := NewInMemoryActor(core.NewID(), name, b, parent, s, s.log.With(name))
		if err := inst.Initialize(ctx); err != nil {
			return nil, err
		}
		return inst, nil

	case core.ModeForked:
		return s.spawnForked(ctx, b, name, parent, placement)

	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownMode, placement.Mode)
	}
}

// createCluster realizes spec.md §4.1 step 3: a RoundRobinBalancerActor
// fronting clusterSize children, each placed with clusterSize reset to 1
// so they don't themselves fan out.
func (s *System) createCluster(ctx context.Context, b core.Behavior, parent core.Actor, placement core.Placement) (core.Actor, error) {
	balancer := NewBalancerActor(core.NewID(), core.ResolveName(b), parent, s, s.log)
	childOpts := placement
	childOpts.ClusterSize = 1
	for i := 0; i < placement.ClusterSize; i++ {
		if _, err := balancer.CreateChild(ctx, b, childOpts); err != nil {
			return nil, err
		}
	}
	return balancer, nil
}

func (s *System) spawnForked(ctx context.Context, b core.Behavior, name string, parent core.Actor, placement core.Placement) (core.Actor, error) {
	execPath, err := s.workerExecPath()
	if err != nil {
		return nil, fmt.Errorf("%w: resolving worker executable: %v", core.ErrSpawnFailed, err)
	}

	// Ship the whole resolved configuration document, not just this
	// actor's own placement: spec.md §4.3 step 2 and §6 require a
	// worker's own descendants to honor config overrides, which they can
	// only do with the full document in hand.
	cfgSnapshot, err := json.Marshal(s.config)
	if err != nil {
		return nil, err
	}

	var ctxName string
	if s.opts.Context != nil {
		ctxName = core.ResolveName(s.opts.Context)
	}

	body := forked.CreateActorBody{
		Behavior:    name,
		Context:     ctxName,
		Config:      cfgSnapshot,
		Test:        s.opts.Test,
		Debug:       s.opts.Debug,
		Parent:      forked.ParentRef{ID: parent.ID()},
		ClusterSize: placement.ClusterSize,
	}

	return forked.SpawnWorker(ctx, execPath, s.opts.WorkerArgs, body, s, parent, s.debugPorts)
}

func (s *System) workerExecPath() (string, error) {
	if s.opts.WorkerExecPath != "" {
		return s.opts.WorkerExecPath, nil
	}
	return exec.LookPath("actorworker")
}

// ReloadConfig swaps in doc as the live configuration document. Wired to
// an optional config.Watcher by the caller; not on the core startup
// path, since spec.md §4.6 describes a one-shot load.
func (s *System) ReloadConfig(doc config.Document) {
	s.config = doc
}

// Destroy tears down the root (cascading to every descendant) and
// releases system resources. Safe to call more than once.
func (s *System) Destroy(ctx context.Context) error {
	var err error
	s.destroyOnce.Do(func() {
		if s.contextRoot != nil {
			_ = s.contextRoot.Destroy(ctx)
		}
		err = s.root.Destroy(ctx)
	})
	return err
}

var (
	defaultSystem *System
	defaultOnce   sync.Once
	defaultErr    error
)

// Default returns the process-wide default System, built once on first
// use with zero-value options. Resolves spec.md §9's first Open
// Question in favor of a lazily-initialized singleton over an ambient
// system constructed implicitly at import time.
func Default(ctx context.Context) (*System, error) {
	defaultOnce.Do(func() {
		defaultSystem, defaultErr = New(ctx, SystemOptions{})
	})
	return defaultSystem, defaultErr
}
