// Package motion animates orientations with harmonica springs.
package motion

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/quat"
)

// Spinner integrates an angular velocity into an orientation. Impulses add
// to the velocity, and a critically damped spring pulls the velocity back to
// zero so the spin coasts to a stop.
type Spinner struct {
	Orientation quat.Quat
	// Velocity is a rotation vector in radians per second, in world axes.
	Velocity math3d.Vec3

	fps       int
	dt        float32
	velSpring harmonica.Spring
	velAccel  [3]float64 // internal spring velocity per component
}

// NewSpinner creates a spinner at the identity orientation that updates at
// fps frames per second.
func NewSpinner(fps int) *Spinner {
	s := &Spinner{fps: fps}
	s.Reset()
	return s
}

// Reset returns to the identity orientation at rest.
func (s *Spinner) Reset() {
	s.Orientation = quat.Identity()
	s.Velocity = math3d.Vec3{}
	s.velAccel = [3]float64{}
	s.dt = 1 / float32(s.fps)
	// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
	s.velSpring = harmonica.NewSpring(harmonica.FPS(s.fps), 4.0, 1.0)
}

// ApplyImpulse adds w (radians per second, world axes) to the velocity.
func (s *Spinner) ApplyImpulse(w math3d.Vec3) {
	s.Velocity = s.Velocity.Add(w)
}

// Update advances one frame.
func (s *Spinner) Update() {
	step := quat.FromRotationVector(s.Velocity.Scale(s.dt))
	s.Orientation = step.Mul(s.Orientation).Unit()

	s.Velocity.X = s.decay(0, s.Velocity.X)
	s.Velocity.Y = s.decay(1, s.Velocity.Y)
	s.Velocity.Z = s.decay(2, s.Velocity.Z)
}

func (s *Spinner) decay(i int, v float32) float32 {
	pos, vel := s.velSpring.Update(float64(v), s.velAccel[i], 0)
	s.velAccel[i] = vel
	return float32(pos)
}

// Resting reports whether the angular speed is below eps.
func (s *Spinner) Resting(eps float32) bool {
	return s.Velocity.Len() < eps
}
