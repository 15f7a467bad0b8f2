package fade

import (
	"log/slog"
	"maps"
	"sync"
	"time"

	"globelabels/pkg/anim"
)

// Opacity targets.
const (
	Hidden = 0.0
	Shown  = 1.0
)

// Command asks the renderer to fade one label towards Target.
type Command struct {
	Key    string  `json:"key"`
	Target float64 `json:"target"`
}

// Coordinator owns the per-label visibility map and starts opacity tweens
// when it changes. It never feeds back into the collision pass.
type Coordinator struct {
	mu       sync.Mutex
	state    map[string]bool
	opacity  *anim.Scheduler[float64]
	duration time.Duration
	logger   *slog.Logger
}

// NewCoordinator creates a Coordinator animating through opacity.
func NewCoordinator(opacity *anim.Scheduler[float64], duration time.Duration, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		state:    make(map[string]bool),
		opacity:  opacity,
		duration: duration,
		logger:   logger.With("component", "fade"),
	}
}

// Update diffs visible against the stored state, applies the change and
// starts one tween per flipped key. A key already fading is redirected.
func (c *Coordinator) Update(candidates []string, visible map[string]bool, now time.Time) (Delta, []Command) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := Diff(c.state, Universe(candidates, c.state), visible)
	if d.Empty() {
		return d, nil
	}
	Apply(c.state, d)

	cmds := make([]Command, 0, len(d.Shown)+len(d.Hidden))
	for _, k := range d.Shown {
		c.opacity.Start(k, Hidden, Shown, c.duration, now)
		cmds = append(cmds, Command{Key: k, Target: Shown})
	}
	for _, k := range d.Hidden {
		c.opacity.Start(k, Shown, Hidden, c.duration, now)
		cmds = append(cmds, Command{Key: k, Target: Hidden})
	}

	c.logger.Debug("Fade commands issued", "shown", len(d.Shown), "hidden", len(d.Hidden))
	return d, cmds
}

// IsShown reports the stored visibility of key.
func (c *Coordinator) IsShown(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state[key]
}

// State returns a copy of the visibility map.
func (c *Coordinator) State() map[string]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.state)
}

// Reset forgets all stored visibility and running tweens.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = make(map[string]bool)
	c.opacity.Reset()
}
