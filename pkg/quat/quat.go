// Package quat implements rotations as float32 quaternions.
//
// A Quat (w, x, y, z) is a plain value. Constructors (From*) and the
// interpolation functions return unit quaternions; the algebra operators work
// on arbitrary quaternions and return un-normalized results. Operations never
// write through their receiver, so values can be shared freely between
// goroutines.
//
// Degenerate inputs (a zero quaternion passed to Unit or Inv, a zero axis
// passed to Project or Align) are preconditions, not errors: results are IEEE
// NaN/Inf. The only documented fallbacks are the identity for a zero rotation
// vector or axis, the (1, 0, 0) axis for a zero imaginary part, and the
// antipodal tie-break in Slerp.
package quat

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/taigrr/orient/pkg/math3d"
)

// Quat is a quaternion w + xi + yj + zk.
//
// The zero value is NOT the identity rotation; use Identity.
type Quat struct {
	W, X, Y, Z float32
}

// Identity returns the identity rotation (1, 0, 0, 0).
func Identity() Quat {
	return Quat{W: 1}
}

// New creates a quaternion from its components.
func New(w, x, y, z float32) Quat {
	return Quat{w, x, y, z}
}

// FromParts builds a quaternion from a real part and an imaginary vector.
func FromParts(w float32, im math3d.Vec3) Quat {
	return Quat{w, im.X, im.Y, im.Z}
}

// Im returns the imaginary part as a vector.
func (q Quat) Im() math3d.Vec3 {
	return math3d.Vec3{X: q.X, Y: q.Y, Z: q.Z}
}

// String formats q as "w + xi + yj + zk".
func (q Quat) String() string {
	return fmt.Sprintf("%g + %gi + %gj + %gk", q.W, q.X, q.Y, q.Z)
}

// Norm returns the squared length w² + x² + y² + z².
func (q Quat) Norm() float32 {
	return q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
}

// Mag returns the length of q.
func (q Quat) Mag() float32 {
	return math32.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Dot returns the four-dimensional dot product of a and b.
//
//nolint:st1016 // a·b naming convention is clearer for quaternion operations
func (a Quat) Dot(b Quat) float32 {
	return a.W*b.W + a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Unit returns q scaled to unit length. q must not be zero.
func (q Quat) Unit() Quat {
	inv := 1 / math32.Sqrt(q.W*q.W+q.X*q.X+q.Y*q.Y+q.Z*q.Z)
	return Quat{inv * q.W, inv * q.X, inv * q.Y, inv * q.Z}
}

// Neg returns -q, which represents the same rotation as q.
func (q Quat) Neg() Quat {
	return Quat{-q.W, -q.X, -q.Y, -q.Z}
}

// Conj returns the conjugate (w, -x, -y, -z).
func (q Quat) Conj() Quat {
	return Quat{q.W, -q.X, -q.Y, -q.Z}
}

// Add returns a + b.
//
//nolint:st1016 // a+b naming convention is clearer for quaternion operations
func (a Quat) Add(b Quat) Quat {
	return Quat{a.W + b.W, a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
//
//nolint:st1016 // a-b naming convention is clearer for quaternion operations
func (a Quat) Sub(b Quat) Quat {
	return Quat{a.W - b.W, a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Mul returns the Hamilton product a * b (i*j = k). Applying the result to a
// vector rotates by b first, then by a.
//
//nolint:st1016 // a*b naming convention is clearer for quaternion operations
func (a Quat) Mul(b Quat) Quat {
	return Quat{
		a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
		a.X*b.W + a.W*b.X - a.Z*b.Y + a.Y*b.Z,
		a.Y*b.W + a.Z*b.X + a.W*b.Y - a.X*b.Z,
		a.Z*b.W - a.Y*b.X + a.X*b.Y + a.W*b.Z,
	}
}

// Scale returns q * s.
func (q Quat) Scale(s float32) Quat {
	return Quat{q.W * s, q.X * s, q.Y * s, q.Z * s}
}

// Div returns q / s.
func (q Quat) Div(s float32) Quat {
	return Quat{q.W / s, q.X / s, q.Y / s, q.Z / s}
}

// Inv returns the multiplicative inverse conj(q)/norm(q). q must not be zero.
func (q Quat) Inv() Quat {
	inv := 1 / (q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	return Quat{inv * q.W, inv * -q.X, inv * -q.Y, inv * -q.Z}
}

// InvMul returns a⁻¹ * b without forming the inverse separately.
//
//nolint:st1016 // a,b naming convention is clearer for quaternion operations
func (a Quat) InvMul(b Quat) Quat {
	inv := 1 / (a.W*a.W + a.X*a.X + a.Y*a.Y + a.Z*a.Z)
	return Quat{
		inv * (a.W*b.W + a.X*b.X + a.Y*b.Y + a.Z*b.Z),
		inv * (a.W*b.X - a.X*b.W - a.Y*b.Z + a.Z*b.Y),
		inv * (a.W*b.Y + a.X*b.Z - a.Y*b.W - a.Z*b.X),
		inv * (a.W*b.Z - a.X*b.Y + a.Y*b.X - a.Z*b.W),
	}
}

// MulInv returns a * b⁻¹ without forming the inverse separately.
//
//nolint:st1016 // a,b naming convention is clearer for quaternion operations
func (a Quat) MulInv(b Quat) Quat {
	inv := 1 / (b.W*b.W + b.X*b.X + b.Y*b.Y + b.Z*b.Z)
	return Quat{
		inv * (a.W*b.W + a.X*b.X + a.Y*b.Y + a.Z*b.Z),
		inv * (a.X*b.W - a.W*b.X + a.Z*b.Y - a.Y*b.Z),
		inv * (a.Y*b.W - a.Z*b.X - a.W*b.Y + a.X*b.Z),
		inv * (a.Z*b.W + a.Y*b.X - a.X*b.Y - a.W*b.Z),
	}
}

// ApproxEqual reports whether every component of a and b differs by at most
// tol.
//
//nolint:st1016 // a,b naming convention is clearer for quaternion operations
func (a Quat) ApproxEqual(b Quat, tol float32) bool {
	return math32.Abs(a.W-b.W) <= tol &&
		math32.Abs(a.X-b.X) <= tol &&
		math32.Abs(a.Y-b.Y) <= tol &&
		math32.Abs(a.Z-b.Z) <= tol
}

// SameRotation reports whether a and b are within tol of each other up to
// sign, i.e. whether they describe the same rotation.
//
//nolint:st1016 // a,b naming convention is clearer for quaternion operations
func (a Quat) SameRotation(b Quat, tol float32) bool {
	return a.ApproxEqual(b, tol) || a.ApproxEqual(b.Neg(), tol)
}
