package quat

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/orient/pkg/math3d"
)

// Project keeps the real part of q and replaces its imaginary part with that
// part's projection onto axis. The result is not normalized. axis must not be
// zero.
func (q Quat) Project(axis math3d.Vec3) Quat {
	t := (q.X*axis.X + q.Y*axis.Y + q.Z*axis.Z) /
		(axis.X*axis.X + axis.Y*axis.Y + axis.Z*axis.Z)
	return Quat{q.W, t * axis.X, t * axis.Y, t * axis.Z}
}

// ProjectUnit returns the twist of q about axis: the rotation about axis
// closest to q.
func (q Quat) ProjectUnit(axis math3d.Vec3) Quat {
	return q.Project(axis).Unit()
}

// ProjectedAngle returns the signed rotation angle of the twist of q about
// axis, positive for counter-clockwise rotation when looking down axis. This
// is the full rotation angle, the one FromAngleAxis takes, so it is twice the
// quaternion half-angle that AngleBetween reports.
func (q Quat) ProjectedAngle(axis math3d.Vec3) float32 {
	aMag := math32.Sqrt(axis.X*axis.X + axis.Y*axis.Y + axis.Z*axis.Z)
	aDotQ := q.X*axis.X + q.Y*axis.Y + q.Z*axis.Z
	return 2 * math32.Atan2(aDotQ/aMag, q.W)
}

// Align applies to q the minimal rotation R for which R*q carries a onto the
// direction of b, and returns R*q un-normalized.
//
// a must not be zero. If q rotates a onto exactly -b there is no minimal
// rotation and the result is undefined.
func (q Quat) Align(a, b math3d.Vec3) Quat {
	aNormInv := 1 / (a.X*a.X + a.Y*a.Y + a.Z*a.Z)
	bNorm := b.X*b.X + b.Y*b.Y + b.Z*b.Z

	// r = q * a⁻¹, a pure imaginary
	rw := aNormInv * (q.X*a.X + q.Y*a.Y + q.Z*a.Z)
	rx := aNormInv * (q.Z*a.Y - q.W*a.X - q.Y*a.Z)
	ry := aNormInv * (q.X*a.Z - q.W*a.Y - q.Z*a.X)
	rz := aNormInv * (q.Y*a.X - q.W*a.Z - q.X*a.Y)

	// s = b * r
	sw := -b.X*rx - b.Y*ry - b.Z*rz
	sx := b.X*rw - b.Z*ry + b.Y*rz
	sy := b.Y*rw + b.Z*rx - b.X*rz
	sz := b.Z*rw - b.Y*rx + b.X*ry

	k := math32.Sqrt(aNormInv * bNorm)
	return Quat{sw + k*q.W, sx + k*q.X, sy + k*q.Y, sz + k*q.Z}
}

// AlignUnit is Align followed by Unit.
func (q Quat) AlignUnit(a, b math3d.Vec3) Quat {
	return q.Align(a, b).Unit()
}
