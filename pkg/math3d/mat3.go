package math3d

// Mat3 is a 3x3 matrix with named entries. Mrc is row r, column c, so column
// c holds the image of basis vector c:
//
// | M00 M01 M02 |
// | M10 M11 M12 |
// | M20 M21 M22 |
//
// When used as a rotation matrix it must be orthonormal with determinant +1.
// Nothing in this package enforces that; orthogonalize with R·(RᵀR)^(-1/2)
// before handing an accumulated matrix to the rotation code.
type Mat3 struct {
	M00, M01, M02 float32
	M10, M11, M12 float32
	M20, M21, M22 float32
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		M00: 1,
		M11: 1,
		M22: 1,
	}
}

// Mat3FromRows builds a matrix from three row vectors.
func Mat3FromRows(r0, r1, r2 Vec3) Mat3 {
	return Mat3{
		r0.X, r0.Y, r0.Z,
		r1.X, r1.Y, r1.Z,
		r2.X, r2.Y, r2.Z,
	}
}

// Mat3FromCols builds a matrix from three column vectors.
func Mat3FromCols(c0, c1, c2 Vec3) Mat3 {
	return Mat3{
		c0.X, c1.X, c2.X,
		c0.Y, c1.Y, c2.Y,
		c0.Z, c1.Z, c2.Z,
	}
}

// Col returns column i (0, 1 or 2).
func (m Mat3) Col(i int) Vec3 {
	switch i {
	case 0:
		return Vec3{m.M00, m.M10, m.M20}
	case 1:
		return Vec3{m.M01, m.M11, m.M21}
	default:
		return Vec3{m.M02, m.M12, m.M22}
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	return Mat3{
		a.M00*b.M00 + a.M01*b.M10 + a.M02*b.M20,
		a.M00*b.M01 + a.M01*b.M11 + a.M02*b.M21,
		a.M00*b.M02 + a.M01*b.M12 + a.M02*b.M22,

		a.M10*b.M00 + a.M11*b.M10 + a.M12*b.M20,
		a.M10*b.M01 + a.M11*b.M11 + a.M12*b.M21,
		a.M10*b.M02 + a.M11*b.M12 + a.M12*b.M22,

		a.M20*b.M00 + a.M21*b.M10 + a.M22*b.M20,
		a.M20*b.M01 + a.M21*b.M11 + a.M22*b.M21,
		a.M20*b.M02 + a.M21*b.M12 + a.M22*b.M22,
	}
}

// MulVec3 returns the matrix-vector product m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m.M00*v.X + m.M01*v.Y + m.M02*v.Z,
		m.M10*v.X + m.M11*v.Y + m.M12*v.Z,
		m.M20*v.X + m.M21*v.Y + m.M22*v.Z,
	}
}

// Transpose returns the transposed matrix. For a rotation this is the inverse.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m.M00, m.M10, m.M20,
		m.M01, m.M11, m.M21,
		m.M02, m.M12, m.M22,
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float32 {
	return m.M00*(m.M11*m.M22-m.M12*m.M21) -
		m.M01*(m.M10*m.M22-m.M12*m.M20) +
		m.M02*(m.M10*m.M21-m.M11*m.M20)
}
