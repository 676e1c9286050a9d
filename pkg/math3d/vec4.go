package math3d

import "math"

// Vec4 is a homogeneous coordinate, in practice a clip-space position.
type Vec4 struct {
	X, Y, Z, W float64
}

func V4(x, y, z, w float64) Vec4 { return Vec4{x, y, z, w} }

// V4FromV3 lifts v with the given w: 1 for points, 0 for directions.
func V4FromV3(v Vec3, w float64) Vec4 { return Vec4{v.X, v.Y, v.Z, w} }

// Vec3 drops W without dividing.
func (v Vec4) Vec3() Vec3 { return Vec3{v.X, v.Y, v.Z} }

// PerspectiveDivide returns XYZ/W. When |W| < eps it reports false and
// returns XYZ unchanged.
func (v Vec4) PerspectiveDivide(eps float64) (Vec3, bool) {
	if math.Abs(v.W) < eps {
		return v.Vec3(), false
	}
	return Vec3{v.X / v.W, v.Y / v.W, v.Z / v.W}, true
}
