package globe

import "math"

// ZoomThrottle lets a zoom change through only when the integer zoom
// percentage moved by at least Step since the last accepted change.
type ZoomThrottle struct {
	Step     float64
	last     int
	firstRun bool
}

// NewZoomThrottle creates a throttle. Steps below 1 are raised to 1.
func NewZoomThrottle(step float64) *ZoomThrottle {
	if step < 1 {
		step = 1
	}
	return &ZoomThrottle{Step: step, firstRun: true}
}

// ShouldFire reports whether percent is far enough from the last accepted zoom.
func (z *ZoomThrottle) ShouldFire(percent float64) bool {
	if z.firstRun {
		return true
	}
	return math.Abs(float64(zoomLevel(percent)-z.last)) >= z.Step
}

// Mark records percent as the last accepted zoom.
func (z *ZoomThrottle) Mark(percent float64) {
	z.last = zoomLevel(percent)
	z.firstRun = false
}

// Reset makes the next zoom fire unconditionally.
func (z *ZoomThrottle) Reset() {
	z.firstRun = true
}

func zoomLevel(percent float64) int {
	if math.IsNaN(percent) {
		return 0
	}
	return int(math.Round(percent))
}
