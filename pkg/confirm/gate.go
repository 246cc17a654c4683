// Package confirm implements a press-three-times confirmation gesture for
// destructive actions. The first press arms the gate, the second escalates
// to a final confirmation, the third confirms. The whole gesture must fit in
// one window counted from the first press; after that the gate is idle again.
package confirm

import (
	"context"
	"sync"
	"time"
)

// Stage is the state of a gate for one key.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageArmed      Stage = "armed"
	StageConfirming Stage = "confirming"
	// StageConfirmed is returned by the press that completes the gesture.
	// The key is back to idle afterwards.
	StageConfirmed Stage = "confirmed"
)

// DefaultWindow is how long a gesture may take from its first press.
const DefaultWindow = 3 * time.Second

type entry struct {
	stage   Stage
	expires time.Time
}

// Gate tracks the confirmation stage per key (for example user + record).
type Gate struct {
	mu      sync.Mutex
	window  time.Duration
	now     func() time.Time
	entries map[string]entry
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// NewGate creates a gate whose gestures expire window after they were armed.
func NewGate(window time.Duration, opts ...Option) *Gate {
	if window <= 0 {
		window = DefaultWindow
	}
	g := &Gate{
		window:  window,
		now:     time.Now,
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Press advances the gate for key and returns the resulting stage.
func (g *Gate) Press(key string) Stage {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	current := g.stageLocked(key, now)

	switch current {
	case StageArmed:
		// escalating keeps the deadline set when the gate was armed
		g.entries[key] = entry{stage: StageConfirming, expires: g.entries[key].expires}
		return StageConfirming
	case StageConfirming:
		delete(g.entries, key)
		return StageConfirmed
	default:
		g.entries[key] = entry{stage: StageArmed, expires: now.Add(g.window)}
		return StageArmed
	}
}

// Stage reports the current stage for key without changing it.
func (g *Gate) Stage(key string) Stage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stageLocked(key, g.now())
}

// Reset returns key to idle.
func (g *Gate) Reset(key string) {
	g.mu.Lock()
	delete(g.entries, key)
	g.mu.Unlock()
}

func (g *Gate) stageLocked(key string, now time.Time) Stage {
	e, ok := g.entries[key]
	if !ok {
		return StageIdle
	}
	if !now.Before(e.expires) {
		delete(g.entries, key)
		return StageIdle
	}
	return e.stage
}

// Sweep drops expired entries and returns how many were removed.
func (g *Gate) Sweep() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	removed := 0
	for key, e := range g.entries {
		if !now.Before(e.expires) {
			delete(g.entries, key)
			removed++
		}
	}
	return removed
}

// Run sweeps expired entries every interval until ctx is done.
func (g *Gate) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Sweep()
		}
	}
}
