package quat

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/orient/pkg/math3d"
)

// FromRotationMatrix returns the unit quaternion for an orthonormal rotation
// matrix. Non-orthonormal input is not detected or corrected.
func FromRotationMatrix(m math3d.Mat3) Quat {
	return fromBasis(
		m.M00, m.M01, m.M02,
		m.M10, m.M11, m.M12,
		m.M20, m.M21, m.M22,
	)
}

// FromBasis returns the rotation that carries the world X, Y and Z axes onto
// x, y and z. The three vectors must form a right-handed orthonormal basis.
func FromBasis(x, y, z math3d.Vec3) Quat {
	return fromBasis(
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	)
}

// fromBasis takes the matrix in row order. Entry names read as basis vector
// then component: xy is the y component of the image of the x axis.
//
// Each branch derives the other three components from a diagonal sum that
// the branch condition keeps well away from zero. Normalization is deferred
// to the end so the result takes a single sqrt.
func fromBasis(
	xx, yx, zx,
	xy, yy, zy,
	xz, yz, zz float32,
) Quat {
	var w, x, y, z float32
	switch {
	case yy > -zz && zz > -xx && xx > -yy:
		w = 1 + xx + yy + zz
		x = yz - zy
		y = zx - xz
		z = xy - yx
	case xx > yy && xx > zz:
		w = yz - zy
		x = 1 + xx - yy - zz
		y = xy + yx
		z = xz + zx
	case yy > zz:
		w = zx - xz
		x = xy + yx
		y = 1 - xx + yy - zz
		z = yz + zy
	default:
		w = xy - yx
		x = xz + zx
		y = yz + zy
		z = 1 - xx - yy + zz
	}

	inv := 1 / math32.Sqrt(w*w+x*x+y*y+z*z)
	return Quat{inv * w, inv * x, inv * y, inv * z}
}

// ToRotationMatrix3 returns the rotation matrix of q. The entries are divided
// by Norm, so q does not need to be a unit quaternion.
func (q Quat) ToRotationMatrix3() math3d.Mat3 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	inv := 1 / (w*w + x*x + y*y + z*z)

	return math3d.Mat3{
		M00: inv * (w*w + x*x - y*y - z*z),
		M01: inv * 2 * (x*y - w*z),
		M02: inv * 2 * (w*y + x*z),
		M10: inv * 2 * (x*y + w*z),
		M11: inv * (w*w - x*x + y*y - z*z),
		M12: inv * 2 * (y*z - w*x),
		M20: inv * 2 * (x*z - w*y),
		M21: inv * 2 * (w*x + y*z),
		M22: inv * (w*w - x*x - y*y + z*z),
	}
}

// ToMat4 returns the rotation of q as a 4x4 transform without translation.
func (q Quat) ToMat4() math3d.Mat4 {
	return math3d.FromMat3(q.ToRotationMatrix3())
}
