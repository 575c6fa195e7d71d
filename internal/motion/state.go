package motion

import (
	"time"

	"github.com/Faultbox/floating-geometry/pkg/math"
)

// State is the single owner of the pointer target and the rotation.
// Pointer notifications write the target; the render loop reads it and
// advances the rotation. Both run on the host's loop goroutine.
type State struct {
	pointer math.Vec2
	integ   *Integrator
	last    Rotation
}

// NewState creates a state at rest with the pointer centred.
func NewState(p Params) *State {
	return &State{integ: NewIntegrator(p)}
}

// SetPointer records the latest pointer sample relative to b.
func (s *State) SetPointer(clientX, clientY float64, b Bounds) {
	s.pointer = Normalize(clientX, clientY, b)
}

// SetTarget records an already-normalized pointer offset.
func (s *State) SetTarget(v math.Vec2) {
	s.pointer = v
}

// Pointer returns the latest normalized pointer offset.
func (s *State) Pointer() math.Vec2 {
	return s.pointer
}

// Advance steps the integrator for a frame at now and returns the angles
// to render with.
func (s *State) Advance(now time.Time) Rotation {
	s.last = s.integ.Step(s.pointer, now)
	return s.last
}

// Rotation returns the angles of the last frame.
func (s *State) Rotation() Rotation {
	return s.last
}

// Damped returns the pointer-driven part of the rotation.
func (s *State) Damped() Rotation {
	return s.integ.Damped()
}

// Tune replaces the integrator parameters.
func (s *State) Tune(p Params) {
	s.integ.SetParams(p)
}

// Params returns the integrator parameters.
func (s *State) Params() Params {
	return s.integ.Params()
}

// Reset clears pointer and rotation.
func (s *State) Reset() {
	s.pointer = math.Vec2{}
	s.last = Rotation{}
	s.integ.Reset()
}
