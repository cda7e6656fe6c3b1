// Package bootstrap runs an ActorSystem to completion: it installs the
// SIGINT/SIGTERM handling spec.md §4.3 step 4 asks of a forking parent
// ("on system SIGINT/SIGTERM, log and exit"), and makes sure a shutdown
// tears down the root (and, transitively, every forked worker process)
// before the process exits. Grounded on the teacher's
// bootstrap.DefaultApplication.Run/Shutdown (bootstrap/application.go).
package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/najoast/actorkit/core"
)

// Supervisor owns an ActorSystem's process-level lifetime.
type Supervisor struct {
	system          core.System
	log             core.Logger
	shutdownTimeout time.Duration
}

// NewSupervisor wraps system for signal-driven shutdown.
func NewSupervisor(system core.System, log core.Logger) *Supervisor {
	return &Supervisor{system: system, log: log, shutdownTimeout: 30 * time.Second}
}

// WithShutdownTimeout overrides the default 30s grace period given to
// Destroy once a shutdown has been requested.
func (s *Supervisor) WithShutdownTimeout(d time.Duration) *Supervisor {
	s.shutdownTimeout = d
	return s
}

// Run blocks until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then destroys the system and returns.
func (s *Supervisor) Run(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		s.log.Infof("bootstrap: received %s, shutting down", sig)
	case <-ctx.Done():
		s.log.Infof("bootstrap: context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.system.Destroy(shutdownCtx); err != nil {
		s.log.Errorf("bootstrap: shutdown error: %v", err)
		return err
	}
	return nil
}
