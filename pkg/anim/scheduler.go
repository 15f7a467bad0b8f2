// Package anim drives keyed tweens. Starting a tween for a key that is
// already animating replaces the running tween, continuing from the value the
// key currently holds.
package anim

import (
	"sort"
	"sync"
	"time"
)

// Easing maps linear progress in [0,1] onto eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseOutCubic decelerates towards the target.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// Lerp interpolates between a and b at eased progress t.
type Lerp[T any] func(a, b T, t float64) T

// Frame is the value of one key after a Step.
type Frame[T any] struct {
	Key   string `json:"key"`
	Value T      `json:"value"`
	Done  bool   `json:"done"`
}

type tween[T any] struct {
	from, to T
	start    time.Time
	duration time.Duration
}

// Scheduler holds in-flight tweens and the last value of every key it has animated.
type Scheduler[T any] struct {
	mu     sync.Mutex
	lerp   Lerp[T]
	ease   Easing
	tweens map[string]*tween[T]
	values map[string]T
}

// NewScheduler creates a Scheduler. A nil easing uses EaseOutCubic.
func NewScheduler[T any](lerp Lerp[T], ease Easing) *Scheduler[T] {
	if ease == nil {
		ease = EaseOutCubic
	}
	return &Scheduler[T]{
		lerp:   lerp,
		ease:   ease,
		tweens: make(map[string]*tween[T]),
		values: make(map[string]T),
	}
}

// Start animates key towards to. When key already holds a value, the tween
// starts from it and from is ignored.
func (s *Scheduler[T]) Start(key string, from, to T, d time.Duration, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.values[key]; ok {
		from = cur
	}
	s.values[key] = from
	s.tweens[key] = &tween[T]{from: from, to: to, start: now, duration: d}
}

// Forget drops everything known about key.
func (s *Scheduler[T]) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tweens, key)
	delete(s.values, key)
}

// Value returns the current value of key.
func (s *Scheduler[T]) Value(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Active returns the number of running tweens.
func (s *Scheduler[T]) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tweens)
}

// Reset drops all tweens and values.
func (s *Scheduler[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tweens = make(map[string]*tween[T])
	s.values = make(map[string]T)
}

// Step advances every running tween to now and returns the new values,
// sorted by key. Finished tweens are removed and reported with Done set.
func (s *Scheduler[T]) Step(now time.Time) []Frame[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tweens) == 0 {
		return nil
	}

	frames := make([]Frame[T], 0, len(s.tweens))
	for key, tw := range s.tweens {
		progress := 1.0
		if tw.duration > 0 {
			progress = float64(now.Sub(tw.start)) / float64(tw.duration)
		}
		if progress < 0 {
			progress = 0
		}

		var v T
		done := progress >= 1
		if done {
			v = s.lerp(tw.from, tw.to, 1)
			delete(s.tweens, key)
		} else {
			v = s.lerp(tw.from, tw.to, s.ease(progress))
		}
		s.values[key] = v
		frames = append(frames, Frame[T]{Key: key, Value: v, Done: done})
	}

	sort.Slice(frames, func(i, j int) bool { return frames[i].Key < frames[j].Key })
	return frames
}
