package quat

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/orient/pkg/math3d"
)

// FromRotationVector returns the rotation by |r| radians about r. The zero
// vector gives the identity.
func FromRotationVector(r math3d.Vec3) Quat {
	l := math32.Sqrt(r.X*r.X + r.Y*r.Y + r.Z*r.Z)
	if l == 0 {
		return Identity()
	}

	sin, cos := math32.Sincos(0.5 * l)
	k := sin / l
	return Quat{cos, k * r.X, k * r.Y, k * r.Z}
}

// FromAngleAxis returns the rotation by angle radians about axis. The axis
// need not be unit length. A zero axis has no defined rotation; the identity
// is returned.
func FromAngleAxis(angle float32, axis math3d.Vec3) Quat {
	l := math32.Sqrt(axis.X*axis.X + axis.Y*axis.Y + axis.Z*axis.Z)
	if l == 0 {
		return Identity()
	}

	sin, cos := math32.Sincos(0.5 * angle)
	k := sin / l
	return Quat{cos, k * axis.X, k * axis.Y, k * axis.Z}
}

// ToRotationVector returns the axis of q scaled by its rotation angle.
func (q Quat) ToRotationVector() math3d.Vec3 {
	im := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if im == 0 {
		return math3d.Vec3{}
	}

	k := 2 * math32.Atan2(im, q.W) / im
	return math3d.Vec3{X: k * q.X, Y: k * q.Y, Z: k * q.Z}
}

// ToAxis returns the unit rotation axis of q, or (1, 0, 0) when q has no
// imaginary part.
func (q Quat) ToAxis() math3d.Vec3 {
	im := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if im == 0 {
		return math3d.UnitX()
	}

	k := 1 / im
	return math3d.Vec3{X: k * q.X, Y: k * q.Y, Z: k * q.Z}
}

// ToAngle returns the rotation angle of q in [0, 2π).
func (q Quat) ToAngle() float32 {
	im := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	return 2 * math32.Atan2(im, q.W)
}

// ToAngleAxis returns ToAngle and ToAxis in one pass.
func (q Quat) ToAngleAxis() (float32, math3d.Vec3) {
	im := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if im == 0 {
		return 0, math3d.UnitX()
	}

	k := 1 / im
	return 2 * math32.Atan2(im, q.W), math3d.Vec3{X: k * q.X, Y: k * q.Y, Z: k * q.Z}
}

// Sandwich rotates v by q, computing q v q⁻¹ with v as a pure imaginary
// quaternion. q does not need to be a unit quaternion.
func (q Quat) Sandwich(v math3d.Vec3) math3d.Vec3 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	inv := 1 / (w*w + x*x + y*y + z*z)

	// b = v * q⁻¹
	bw := inv * (v.X*x + v.Y*y + v.Z*z)
	bx := inv * (v.X*w + v.Z*y - v.Y*z)
	by := inv * (v.Y*w - v.Z*x + v.X*z)
	bz := inv * (v.Z*w + v.Y*x - v.X*y)

	// q * b; the real part vanishes.
	return math3d.Vec3{
		X: w*bx + x*bw + y*bz - z*by,
		Y: w*by - x*bz + y*bw + z*bx,
		Z: w*bz + x*by - y*bx + z*bw,
	}
}
