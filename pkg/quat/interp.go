package quat

import "github.com/chewxy/math32"

// relative returns a⁻¹b without the 1/norm scale, which cancels in every
// caller.
func relative(a, b Quat) Quat {
	return Quat{
		a.W*b.W + a.X*b.X + a.Y*b.Y + a.Z*b.Z,
		a.W*b.X - a.X*b.W - a.Y*b.Z + a.Z*b.Y,
		a.W*b.Y + a.X*b.Z - a.Y*b.W - a.Z*b.X,
		a.W*b.Z - a.X*b.Y + a.Y*b.X - a.Z*b.W,
	}
}

// AngleBetween returns the angle between orientations a and b on the unit
// quaternion sphere, in [0, π/2]. This is the quaternion half-angle: the
// rotation taking a to b turns by twice this. q and -q are the same orientation, so AngleBetween(q,
// q.Neg()) is 0.
func AngleBetween(a, b Quat) float32 {
	r := relative(a, b)
	im := math32.Sqrt(r.X*r.X + r.Y*r.Y + r.Z*r.Z)
	return math32.Atan2(im, math32.Abs(r.W))
}

// Slerp interpolates from a (t = 0) to b (t = 1) at constant angular
// velocity along the great arc through a and b. It does not pick the shorter
// of the two arcs; see SlerpNearest.
//
// When a and b are exact antipodes and t is 0.5 the blend vanishes. Slerp
// then returns b for t >= 0.5 and a otherwise.
func Slerp(a, b Quat, t float32) Quat {
	r := relative(a, b)
	theta := math32.Atan2(math32.Sqrt(r.X*r.X+r.Y*r.Y+r.Z*r.Z), r.W)

	s0 := math32.Sin((1 - t) * theta)
	s1 := math32.Sin(t * theta)

	s := Quat{
		s0*a.W + s1*b.W,
		s0*a.X + s1*b.X,
		s0*a.Y + s1*b.Y,
		s0*a.Z + s1*b.Z,
	}

	mag := s.Mag()
	switch {
	case mag > 0:
		return s.Scale(1 / mag)
	case t >= 0.5:
		return b
	default:
		return a
	}
}

// SlerpNearest is Slerp along the shorter arc: a is negated first when it
// lies in the opposite hemisphere from b.
func SlerpNearest(a, b Quat, t float32) Quat {
	if a.Dot(b) < 0 {
		a = a.Neg()
	}
	return Slerp(a, b, t)
}
