package vecmath

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrSingularMatrix is returned when a matrix has no inverse.
	ErrSingularMatrix = errors.New("vecmath: singular matrix")

	// ErrInvalidAxis is returned for a zero-length or non-finite rotation axis.
	ErrInvalidAxis = errors.New("vecmath: invalid rotation axis")
)

// Mat4 is a 4x4 homogeneous transform stored in row-major order:
// element (row, col) lives at index row*4+col. Points are column vectors,
// so a.Mul(b) applied to v equals a applied to (b applied to v).
//
// The zero value is the zero matrix, not the identity; use Identity.
type Mat4 [16]float64

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at (row, col).
func (m Mat4) At(row, col int) float64 {
	return m[row*4+col]
}

// Mul returns the product m·o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var p Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[r*4+k] * o[k*4+c]
			}
			p[r*4+c] = sum
		}
	}
	return p
}

// Transpose swaps rows and columns.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			t[c*4+r] = m[r*4+c]
		}
	}
	return t
}

// minor returns the determinant of the 3x3 matrix left after deleting row
// and col from m.
func (m Mat4) minor(row, col int) float64 {
	var s [9]float64
	i := 0
	for r := 0; r < 4; r++ {
		if r == row {
			continue
		}
		for c := 0; c < 4; c++ {
			if c == col {
				continue
			}
			s[i] = m[r*4+c]
			i++
		}
	}
	return s[0]*(s[4]*s[8]-s[5]*s[7]) -
		s[1]*(s[3]*s[8]-s[5]*s[6]) +
		s[2]*(s[3]*s[7]-s[4]*s[6])
}

func (m Mat4) cofactor(row, col int) float64 {
	if (row+col)%2 == 1 {
		return -m.minor(row, col)
	}
	return m.minor(row, col)
}

// Det returns the determinant, expanded along the first row.
func (m Mat4) Det() float64 {
	var det float64
	for c := 0; c < 4; c++ {
		det += m[c] * m.cofactor(0, c)
	}
	return det
}

// Inverse returns the inverse of m computed from the adjugate divided by the
// determinant. It returns ErrSingularMatrix when the determinant is zero or
// the result is not finite.
func (m Mat4) Inverse() (Mat4, error) {
	var adj Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			// adjugate is the transposed cofactor matrix
			adj[c*4+r] = m.cofactor(r, c)
		}
	}

	var det float64
	for c := 0; c < 4; c++ {
		det += m[c] * adj[c*4]
	}
	if det == 0 || !isFinite(det) {
		return Mat4{}, ErrSingularMatrix
	}

	inv := 1 / det
	for i := range adj {
		adj[i] *= inv
	}
	if !adj.IsFinite() {
		return Mat4{}, ErrSingularMatrix
	}
	return adj, nil
}

// MulVec4 applies m to the homogeneous vector v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for r := 0; r < 4; r++ {
		out[r] = m[r*4]*v[0] + m[r*4+1]*v[1] + m[r*4+2]*v[2] + m[r*4+3]*v[3]
	}
	return out
}

// TransformPoint applies m to p with w=1. A resulting w other than 0 or 1 is
// divided out.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	h := m.MulVec4(p.Vec4(1))
	if h[3] != 0 && h[3] != 1 {
		q, _ := h.Divide()
		return q
	}
	return h.XYZ()
}

// TransformDirection applies m to d with w=0, ignoring translation.
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return m.MulVec4(d.Vec4(0)).XYZ()
}

// Equals reports whether all entries are within eps of o.
func (m Mat4) Equals(o Mat4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// IsFinite reports whether no entry is NaN or infinite.
func (m Mat4) IsFinite() bool {
	for _, f := range m {
		if !isFinite(f) {
			return false
		}
	}
	return true
}

func (m Mat4) String() string {
	var b strings.Builder
	for r := 0; r < 4; r++ {
		fmt.Fprintf(&b, "[% .4f % .4f % .4f % .4f]", m[r*4], m[r*4+1], m[r*4+2], m[r*4+3])
		if r < 3 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Affine constructors
// ---------------------------------------------------------------------------

// Scale returns a matrix with (x, y, z, 1) on the diagonal.
func Scale(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Translate returns the identity with (x, y, z) in the last column.
func Translate(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Rotate returns the rotation of angle degrees about the axis (ax, ay, az)
// using Rodrigues' formula. The axis is normalized first; a zero-length or
// non-finite axis yields ErrInvalidAxis.
func Rotate(angle, ax, ay, az float64) (Mat4, error) {
	l := math.Sqrt(ax*ax + ay*ay + az*az)
	if l == 0 || !isFinite(l) {
		return Mat4{}, fmt.Errorf("%w: (%g, %g, %g)", ErrInvalidAxis, ax, ay, az)
	}
	x, y, z := ax/l, ay/l, az/l

	s, c := math.Sincos(angle * math.Pi / 180)
	k := 1 - c

	return Mat4{
		c + x*x*k, x*y*k - z*s, x*z*k + y*s, 0,
		y*x*k + z*s, c + y*y*k, y*z*k - x*s, 0,
		z*x*k - y*s, z*y*k + x*s, c + z*z*k, 0,
		0, 0, 0, 1,
	}, nil
}

// MustRotate is like Rotate but panics on an invalid axis. It is meant for
// literal axes known to be non-zero.
func MustRotate(angle, ax, ay, az float64) Mat4 {
	m, err := Rotate(angle, ax, ay, az)
	if err != nil {
		panic(err)
	}
	return m
}
