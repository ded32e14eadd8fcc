package quat

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// EulerOrder names the axis sequence of an Euler angle triple. Angles are
// always listed in application order: XYZ means Rx(a)·Ry(b)·Rz(c).
type EulerOrder int

const (
	XYZ EulerOrder = iota
	XZY
	YXZ
	YZX
	ZXY
	ZYX
)

// EulerOrders lists every supported order.
var EulerOrders = []EulerOrder{XYZ, XZY, YXZ, YZX, ZXY, ZYX}

var eulerOrderNames = [...]string{"XYZ", "XZY", "YXZ", "YZX", "ZXY", "ZYX"}

func (o EulerOrder) String() string {
	if o < 0 || int(o) >= len(eulerOrderNames) {
		return fmt.Sprintf("EulerOrder(%d)", int(o))
	}
	return eulerOrderNames[o]
}

// ParseEulerOrder parses an order name such as "zyx" or "ZYX".
func ParseEulerOrder(s string) (EulerOrder, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range eulerOrderNames {
		if n == name {
			return EulerOrder(i), nil
		}
	}
	return 0, fmt.Errorf("unknown euler order %q", s)
}

// gimbalTolerance is tan(0.4995π). A middle angle whose tangent exceeds it
// (within 0.09° of ±90°) is treated as gimbal lock.
var gimbalTolerance = math32.Tan(0.4995 * math32.Pi)

// FromEuler dispatches to the constructor for order. Angles are in
// application order.
func FromEuler(order EulerOrder, angles [3]float32) Quat {
	switch order {
	case XZY:
		return FromEulerXZY(angles[0], angles[1], angles[2])
	case YXZ:
		return FromEulerYXZ(angles[0], angles[1], angles[2])
	case YZX:
		return FromEulerYZX(angles[0], angles[1], angles[2])
	case ZXY:
		return FromEulerZXY(angles[0], angles[1], angles[2])
	case ZYX:
		return FromEulerZYX(angles[0], angles[1], angles[2])
	default:
		return FromEulerXYZ(angles[0], angles[1], angles[2])
	}
}

// ToEuler dispatches to the extractor for order.
func (q Quat) ToEuler(order EulerOrder) [3]float32 {
	switch order {
	case XZY:
		return q.ToEulerXZY()
	case YXZ:
		return q.ToEulerYXZ()
	case YZX:
		return q.ToEulerYZX()
	case ZXY:
		return q.ToEulerZXY()
	case ZYX:
		return q.ToEulerZYX()
	default:
		return q.ToEulerXYZ()
	}
}

func halfAngles(a, b, c float32) (sa, ca, sb, cb, sc, cc float32) {
	sa, ca = math32.Sincos(0.5 * a)
	sb, cb = math32.Sincos(0.5 * b)
	sc, cc = math32.Sincos(0.5 * c)
	return
}

// FromEulerXYZ returns Rx(x)·Ry(y)·Rz(z).
func FromEulerXYZ(x, y, z float32) Quat {
	sinX, cosX, sinY, cosY, sinZ, cosZ := halfAngles(x, y, z)
	return Quat{
		W: cosX*cosY*cosZ - sinX*sinY*sinZ,
		X: cosY*cosZ*sinX + cosX*sinY*sinZ,
		Y: cosX*cosZ*sinY - cosY*sinX*sinZ,
		Z: cosZ*sinX*sinY + cosX*cosY*sinZ,
	}
}

// FromEulerXZY returns Rx(x)·Rz(z)·Ry(y).
func FromEulerXZY(x, z, y float32) Quat {
	sinX, cosX, sinZ, cosZ, sinY, cosY := halfAngles(x, z, y)
	return Quat{
		W: cosX*cosY*cosZ + sinX*sinY*sinZ,
		X: cosY*cosZ*sinX - cosX*sinY*sinZ,
		Y: cosX*cosZ*sinY - cosY*sinX*sinZ,
		Z: cosZ*sinX*sinY + cosX*cosY*sinZ,
	}
}

// FromEulerYXZ returns Ry(y)·Rx(x)·Rz(z).
func FromEulerYXZ(y, x, z float32) Quat {
	sinY, cosY, sinX, cosX, sinZ, cosZ := halfAngles(y, x, z)
	return Quat{
		W: cosX*cosY*cosZ + sinX*sinY*sinZ,
		X: cosY*cosZ*sinX + cosX*sinY*sinZ,
		Y: cosX*cosZ*sinY - cosY*sinX*sinZ,
		Z: cosX*cosY*sinZ - cosZ*sinX*sinY,
	}
}

// FromEulerYZX returns Ry(y)·Rz(z)·Rx(x).
func FromEulerYZX(y, z, x float32) Quat {
	sinY, cosY, sinZ, cosZ, sinX, cosX := halfAngles(y, z, x)
	return Quat{
		W: cosX*cosY*cosZ - sinX*sinY*sinZ,
		X: cosY*cosZ*sinX + cosX*sinY*sinZ,
		Y: cosX*cosZ*sinY + cosY*sinX*sinZ,
		Z: cosX*cosY*sinZ - cosZ*sinX*sinY,
	}
}

// FromEulerZXY returns Rz(z)·Rx(x)·Ry(y).
func FromEulerZXY(z, x, y float32) Quat {
	sinZ, cosZ, sinX, cosX, sinY, cosY := halfAngles(z, x, y)
	return Quat{
		W: cosX*cosY*cosZ - sinX*sinY*sinZ,
		X: cosY*cosZ*sinX - cosX*sinY*sinZ,
		Y: cosX*cosZ*sinY + cosY*sinX*sinZ,
		Z: cosZ*sinX*sinY + cosX*cosY*sinZ,
	}
}

// FromEulerZYX returns Rz(z)·Ry(y)·Rx(x).
func FromEulerZYX(z, y, x float32) Quat {
	sinZ, cosZ, sinY, cosY, sinX, cosX := halfAngles(z, y, x)
	return Quat{
		W: cosX*cosY*cosZ + sinX*sinY*sinZ,
		X: cosY*cosZ*sinX - cosX*sinY*sinZ,
		Y: cosX*cosZ*sinY + cosY*sinX*sinZ,
		Z: cosX*cosY*sinZ - cosZ*sinX*sinY,
	}
}

// eulerAngles finishes an extraction. The k-scaled pairs are k times the
// rotation matrix entries that hold sin and cos of the outer angles, each
// multiplied by cos of the middle angle; kSinB is k times sin of the middle
// angle. first is the quaternion component along the first axis, used when
// the outer angles can no longer be separated.
func eulerAngles(kSinA, kCosA, kSinB, kSinC, kCosC, first, w float32) [3]float32 {
	cosMag := min(math32.Hypot(kSinA, kCosA), math32.Hypot(kSinC, kCosC))
	b := math32.Atan2(kSinB, cosMag)

	if math32.Abs(kSinB) > gimbalTolerance*cosMag {
		// Gimbal lock: only the sum (or difference) of the outer angles is
		// determined. All of it goes to the first angle.
		return [3]float32{2 * math32.Atan2(first, w), b, 0}
	}

	return [3]float32{
		math32.Atan2(kSinA, kCosA),
		b,
		math32.Atan2(kSinC, kCosC),
	}
}

// ToEulerXYZ returns the angles (x, y, z) with FromEulerXYZ(x, y, z) == q.
// y lies in [-π/2, π/2]; at gimbal lock z is 0.
func (q Quat) ToEulerXYZ() [3]float32 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return eulerAngles(
		2*(w*x-y*z), w*w-x*x-y*y+z*z,
		2*(w*y+x*z),
		2*(w*z-x*y), w*w+x*x-y*y-z*z,
		x, w,
	)
}

// ToEulerXZY returns the angles (x, z, y) with FromEulerXZY(x, z, y) == q.
func (q Quat) ToEulerXZY() [3]float32 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return eulerAngles(
		2*(w*x+y*z), w*w-x*x+y*y-z*z,
		2*(w*z-x*y),
		2*(w*y+x*z), w*w+x*x-y*y-z*z,
		x, w,
	)
}

// ToEulerYXZ returns the angles (y, x, z) with FromEulerYXZ(y, x, z) == q.
func (q Quat) ToEulerYXZ() [3]float32 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return eulerAngles(
		2*(w*y+x*z), w*w-x*x-y*y+z*z,
		2*(w*x-y*z),
		2*(x*y+w*z), w*w-x*x+y*y-z*z,
		y, w,
	)
}

// ToEulerYZX returns the angles (y, z, x) with FromEulerYZX(y, z, x) == q.
func (q Quat) ToEulerYZX() [3]float32 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return eulerAngles(
		2*(w*y-x*z), w*w+x*x-y*y-z*z,
		2*(x*y+w*z),
		2*(w*x-y*z), w*w-x*x+y*y-z*z,
		y, w,
	)
}

// ToEulerZXY returns the angles (z, x, y) with FromEulerZXY(z, x, y) == q.
func (q Quat) ToEulerZXY() [3]float32 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return eulerAngles(
		2*(w*z-x*y), w*w-x*x+y*y-z*z,
		2*(w*x+y*z),
		2*(w*y-x*z), w*w-x*x-y*y+z*z,
		z, w,
	)
}

// ToEulerZYX returns the angles (z, y, x) with FromEulerZYX(z, y, x) == q.
// This is the yaw, pitch, roll convention.
func (q Quat) ToEulerZYX() [3]float32 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return eulerAngles(
		2*(x*y+w*z), w*w+x*x-y*y-z*z,
		2*(w*y-x*z),
		2*(w*x+y*z), w*w-x*x-y*y+z*z,
		z, w,
	)
}
