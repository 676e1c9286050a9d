// Package math3d provides the vector and matrix algebra used by the
// rasterizer: value-typed vectors and row-major 4x4 matrices.
package math3d

import "math"

// Vec3 is a point or direction in 3D. Methods never mutate the receiver.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Up is +Y, the world's vertical axis.
func Up() Vec3 { return Vec3{Y: 1} }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Mul multiplies component by component.
func (a Vec3) Mul(b Vec3) Vec3 { return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z} }

func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Negate() Vec3         { return Vec3{-a.X, -a.Y, -a.Z} }

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross is right-handed: X cross Y is Z.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) LenSq() float64 { return a.Dot(a) }
func (a Vec3) Len() float64   { return math.Sqrt(a.LenSq()) }

func (a Vec3) Distance(b Vec3) float64 { return b.Sub(a).Len() }

// Normalize scales a to unit length. The zero vector stays zero rather
// than turning into NaNs.
func (a Vec3) Normalize() Vec3 {
	if l := a.Len(); l > 0 {
		return a.Scale(1 / l)
	}
	return Vec3{}
}

// Lerp moves from a toward b; t=0 gives a and t=1 gives b.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 { return a.Add(b.Sub(a).Scale(t)) }

// Min and Max work per component and are used for bounding boxes.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)}
}

func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)}
}

// IsFinite is false if any component is NaN or ±Inf.
func (a Vec3) IsFinite() bool {
	return finite(a.X) && finite(a.Y) && finite(a.Z)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// XY projects onto the screen plane.
func (a Vec3) XY() Vec2 { return Vec2{a.X, a.Y} }
