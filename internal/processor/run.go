package processor

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned by a run that a newer run of the same slot replaced
var ErrSuperseded = errors.New("superseded by a newer run")

// runGuard serializes commits to one state slot. Each run takes a
// generation; only the latest generation may commit.
type runGuard struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// begin cancels the in-flight run and starts a new generation
func (g *runGuard) begin(parent context.Context) (context.Context, uint64, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	g.mu.Lock()
	if g.cancel != nil {
		g.cancel()
	}
	g.gen++
	gen := g.gen
	g.cancel = cancel
	g.mu.Unlock()

	return ctx, gen, cancel
}

// snapshot returns the current generation without starting a run
func (g *runGuard) snapshot() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen
}

// commit runs fn if gen is still the latest generation
func (g *runGuard) commit(gen uint64, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.gen {
		return false
	}
	fn()
	return true
}

// supersede cancels the in-flight run and commits fn as a new generation
func (g *runGuard) supersede(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.gen++
	fn()
}
