package model

import "math"

// Identity is the neutral transformation matrix.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

func (r Rectangle) PDFstring() string {
	return "[" + writeFloatArray([]Fl{r.Llx, r.Lly, r.Urx, r.Ury}) + "]"
}

// Mult returns m × other, so that applying the result to a point is
// equivalent to applying `m` then `other` (the PDF `cm` right-multiply
// convention: CTM' = m_cm × CTM).
func (m Matrix) Mult(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Apply transforms the point (x, y) by `m`.
func (m Matrix) Apply(x, y Fl) (Fl, Fl) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ApplyVector transforms the vector (x, y), ignoring translation.
func (m Matrix) ApplyVector(x, y Fl) (Fl, Fl) {
	return m[0]*x + m[2]*y, m[1]*x + m[3]*y
}

// Inverse returns the inverse transformation, and whether `m` was invertible.
func (m Matrix) Inverse() (Matrix, bool) {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return Identity, false
	}
	invDet := 1 / det
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	out := Matrix{
		d * invDet,
		-b * invDet,
		-c * invDet,
		a * invDet,
	}
	out[4] = -(e*out[0] + f*out[2])
	out[5] = -(e*out[1] + f*out[3])
	return out, true
}

// Scaling returns the maximal expansion factor of `m`, used to scale a
// flatness tolerance expressed in device space back into user space.
func (m Matrix) Scaling() Fl {
	sx := m[0]*m[0] + m[1]*m[1]
	sy := m[2]*m[2] + m[3]*m[3]
	if sx < sy {
		sx = sy
	}
	return Fl(math.Sqrt(float64(sx)))
}
