package anim

import (
	"github.com/golang/geo/r3"

	"globelabels/pkg/geo"
)

// LerpFloat interpolates linearly between two scalars.
func LerpFloat(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpOnSphere interpolates between two positions and re-projects the result
// onto the sphere of the target's radius, so a label never leaves the surface.
func LerpOnSphere(a, b r3.Vector, t float64) r3.Vector {
	v := a.Add(b.Sub(a).Mul(t))
	return geo.Renormalize(v, b.Norm())
}

// NewFloatScheduler returns a scheduler for opacity-style scalar tweens.
func NewFloatScheduler() *Scheduler[float64] {
	return NewScheduler[float64](LerpFloat, EaseOutCubic)
}

// NewPositionScheduler returns a scheduler for label positions on the globe.
func NewPositionScheduler() *Scheduler[r3.Vector] {
	return NewScheduler[r3.Vector](LerpOnSphere, EaseOutCubic)
}
