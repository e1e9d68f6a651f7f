// Package supervisor manages the lifecycle of an optional companion
// server process (e.g. a native decoder bridge) alongside the wire
// client: start it, watch it, and stop it on shutdown.
package supervisor

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrNoCompanionConfigured = errors.New("supervisor: no companion server path configured")

// Companion owns one companion-server subprocess.
type Companion struct {
	path string
	args []string

	mu     sync.Mutex
	cmd    *exec.Cmd
	cancel context.CancelFunc
	done   chan error
	exited atomic.Bool
}

// New returns a Companion for the executable at path. An empty path is
// valid and simply makes Start a no-op: not every deployment runs a
// companion server.
func New(path string, args ...string) *Companion {
	return &Companion{path: path, args: args}
}

// Start launches the companion process if a path was configured. It
// returns immediately; the process is supervised in the background
// until Stop is called or the process exits on its own.
func (c *Companion) Start(ctx context.Context) error {
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cmd != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(runCtx, c.path, c.args...)

	if err := cmd.Start(); err != nil {
		cancel()
		return err
	}

	done := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		c.exited.Store(true)
		done <- err
	}()

	c.cmd = cmd
	c.cancel = cancel
	c.done = done

	log.Info().Str("path", c.path).Int("pid", cmd.Process.Pid).Msg("supervisor: companion started")
	return nil
}

// Stop signals the companion process to exit and waits briefly for it
// to do so. Calling Stop on a Companion that was never started, or
// whose process already exited, is a no-op.
func (c *Companion) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		log.Warn().Str("path", c.path).Msg("supervisor: companion did not exit within grace period")
	}
}

// Running reports whether a companion process was started and has not
// yet been observed to exit.
func (c *Companion) Running() bool {
	c.mu.Lock()
	started := c.cmd != nil
	c.mu.Unlock()
	return started && !c.exited.Load()
}
