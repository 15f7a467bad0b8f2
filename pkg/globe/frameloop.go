package globe

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Advancer is stepped once per frame.
type Advancer interface {
	Advance(now time.Time) *Frame
}

// FrameLoop drives animation on a fixed tick. A tick that arrives while the
// previous one is still running is dropped.
type FrameLoop struct {
	target   Advancer
	interval time.Duration
	running  int32
	frames   atomic.Uint64
}

// NewFrameLoop creates a FrameLoop. Non-positive intervals default to 16ms.
func NewFrameLoop(target Advancer, interval time.Duration) *FrameLoop {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &FrameLoop{target: target, interval: interval}
}

// Start runs the loop. It blocks until ctx is cancelled.
func (l *FrameLoop) Start(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	slog.Info("Frame loop started", "interval", l.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Frame loop stopped", "frames", l.frames.Load())
			return
		case now := <-ticker.C:
			l.Tick(now)
		}
	}
}

// Tick advances the target once unless a tick is already in progress.
func (l *FrameLoop) Tick(now time.Time) bool {
	if !atomic.CompareAndSwapInt32(&l.running, 0, 1) {
		return false
	}
	defer atomic.StoreInt32(&l.running, 0)

	if f := l.target.Advance(now); f != nil && !f.Empty() {
		l.frames.Add(1)
	}
	return true
}

// Frames returns the number of non-empty frames produced.
func (l *FrameLoop) Frames() uint64 {
	return l.frames.Load()
}
