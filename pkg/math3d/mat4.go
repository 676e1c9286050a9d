package math3d

import "math"

// Mat4 is row-major, element (r, c) at index r*4+c, and multiplies column
// vectors on its right. Translation therefore sits in the last column.
type Mat4 [16]float64

func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate moves points by v.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Scale stretches each axis independently.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

func ScaleUniform(s float64) Mat4 { return Scale(V3(s, s, s)) }

// RotateX, RotateY and RotateZ turn counterclockwise when looking down
// the positive axis toward the origin.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Rotate is Rodrigues' rotation about axis, which need not be unit length.
func Rotate(axis Vec3, angle float64) Mat4 {
	n := axis.Normalize()
	x, y, z := n.X, n.Y, n.Z
	s, c := math.Sincos(angle)
	t := 1 - c

	return Mat4{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// LookAt builds a right-handed view matrix: eye goes to the origin and the
// direction toward center becomes -Z. up must not be parallel to that
// direction.
func LookAt(eye, center, up Vec3) Mat4 {
	fwd := center.Sub(eye).Normalize()
	right := fwd.Cross(up).Normalize()
	camUp := right.Cross(fwd)

	return Mat4{
		right.X, right.Y, right.Z, -right.Dot(eye),
		camUp.X, camUp.Y, camUp.Z, -camUp.Dot(eye),
		-fwd.X, -fwd.Y, -fwd.Z, fwd.Dot(eye),
		0, 0, 0, 1,
	}
}

// Perspective is the OpenGL-style projection for a vertical field of view
// fovy (radians) and aspect width/height. View-space z from -near to -far
// lands on NDC z from -1 to 1 after the divide by w = -z.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	focal := 1 / math.Tan(fovy/2)
	depth := 1 / (near - far)

	return Mat4{
		focal / aspect, 0, 0, 0,
		0, focal, 0, 0,
		0, 0, (far + near) * depth, 2 * far * near * depth,
		0, 0, -1, 0,
	}
}

// Mul returns a·b, the transform that applies b and then a.
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for i := range out {
		r, c := i/4*4, i%4
		out[i] = a[r]*b[c] + a[r+1]*b[4+c] + a[r+2]*b[8+c] + a[r+3]*b[12+c]
	}
	return out
}

// MulVec3 transforms v as a point (w=1). A resulting w that is not near
// zero is divided out, so projective matrices work too.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	h := m.MulVec4(V4FromV3(v, 1))
	if math.Abs(h.W) > 1e-9 {
		return h.Vec3().Scale(1 / h.W)
	}
	return h.Vec3()
}

// MulVec3Dir transforms v as a direction: translation is ignored.
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 0)).Vec3()
}

func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// ApproxEqual compares element-wise with absolute tolerance eps.
func (a Mat4) ApproxEqual(b Mat4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func (m Mat4) Get(row, col int) float64 { return m[row*4+col] }

// Translation is where the matrix sends the origin, ignoring any
// projective row.
func (m Mat4) Translation() Vec3 { return Vec3{m[3], m[7], m[11]} }
