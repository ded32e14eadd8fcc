package motion

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/orient/pkg/quat"
)

// Follower eases from one orientation to a target along the shorter arc. A
// spring drives the slerp parameter from 0 to 1, so an underdamped spring
// overshoots the target and settles back.
type Follower struct {
	from, to quat.Quat

	progress float64
	velocity float64
	spring   harmonica.Spring
}

// NewFollower creates a follower resting at the identity. frequency and
// damping are the harmonica spring parameters.
func NewFollower(fps int, frequency, damping float64) *Follower {
	return &Follower{
		from:     quat.Identity(),
		to:       quat.Identity(),
		progress: 1,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// Current returns the orientation at the current progress.
func (f *Follower) Current() quat.Quat {
	return quat.SlerpNearest(f.from, f.to, float32(f.progress))
}

// Target returns the orientation being followed.
func (f *Follower) Target() quat.Quat {
	return f.to
}

// SetTarget starts a new ease from the current orientation to target.
func (f *Follower) SetTarget(target quat.Quat) {
	f.from = f.Current()
	f.to = target.Unit()
	f.progress = 0
	f.velocity = 0
}

// Jump moves to q immediately.
func (f *Follower) Jump(q quat.Quat) {
	q = q.Unit()
	f.from, f.to = q, q
	f.progress, f.velocity = 1, 0
}

// Update advances one frame and returns the new orientation.
func (f *Follower) Update() quat.Quat {
	f.progress, f.velocity = f.spring.Update(f.progress, f.velocity, 1)
	return f.Current()
}

// Remaining returns the angle on the unit sphere still to travel.
func (f *Follower) Remaining() float32 {
	return quat.AngleBetween(f.Current(), f.to)
}
