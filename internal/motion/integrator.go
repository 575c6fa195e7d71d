package motion

import (
	"time"

	"github.com/Faultbox/floating-geometry/pkg/math"
)

// Integrator advances the damped rotation once per frame and adds the
// time-driven auto-rotation on top.
//
// The damping is a first-order lag: each step moves the rotation a fixed
// fraction of the way to target*Sensitivity, so it never overshoots. A late
// frame just takes one larger step.
type Integrator struct {
	params  Params
	damped  Rotation
	start   time.Time
	started bool
}

// NewIntegrator creates an integrator at rest.
func NewIntegrator(p Params) *Integrator {
	return &Integrator{params: p}
}

// Params returns the current tuning.
func (in *Integrator) Params() Params {
	return in.params
}

// SetParams replaces the tuning. The damped rotation and the auto-rotation
// origin are kept.
func (in *Integrator) SetParams(p Params) {
	in.params = p
}

// Step applies one damping step toward target and returns the rotation to
// render at now. The first call fixes the auto-rotation origin.
func (in *Integrator) Step(target math.Vec2, now time.Time) Rotation {
	// pointer y tilts about X, pointer x turns about Y
	in.damped.X += (target.Y*in.params.Sensitivity - in.damped.X) * in.params.Damping
	in.damped.Y += (target.X*in.params.Sensitivity - in.damped.Y) * in.params.Damping

	if !in.started {
		in.start = now
		in.started = true
	}
	return in.At(now)
}

// At returns the damped rotation plus the auto-rotation offset for now,
// without advancing the damping.
func (in *Integrator) At(now time.Time) Rotation {
	ms := in.Elapsed(now)
	return Rotation{
		X: in.damped.X + ms*in.params.AutoX,
		Y: in.damped.Y + ms*in.params.AutoY,
	}
}

// Elapsed returns milliseconds since the first step, or 0 before it.
func (in *Integrator) Elapsed(now time.Time) float64 {
	if !in.started {
		return 0
	}
	return float64(now.Sub(in.start)) / float64(time.Millisecond)
}

// Damped returns the smoothed pointer-driven rotation alone.
func (in *Integrator) Damped() Rotation {
	return in.damped
}

// Reset returns the integrator to rest.
func (in *Integrator) Reset() {
	in.damped = Rotation{}
	in.started = false
	in.start = time.Time{}
}
