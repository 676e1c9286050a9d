package render

import (
	"math"

	"github.com/taigrr/teapot/pkg/math3d"
)

// SphereInFrustum conservatively tests a world-space bounding sphere against
// the view frustum. Only the depth range and the four side planes are
// considered, in view space. A false result means the sphere is certainly
// outside.
func SphereInFrustum(view math3d.Mat4, center math3d.Vec3, radius float64, width, height int, fov, near, far float64) bool {
	c := view.MulVec3(center)
	depth := -c.Z

	if depth-radius > far {
		return false
	}
	if depth+radius < near {
		return false
	}

	if depth > 0 {
		tanHalf := math.Tan(fov / 2)
		aspect := float64(width) / float64(height)
		if math.Abs(c.X)-radius > depth*tanHalf*aspect {
			return false
		}
		if math.Abs(c.Y)-radius > depth*tanHalf {
			return false
		}
	}
	return true
}

// SignedArea returns the 2D cross product of (b-a) and (c-a). Its sign uses
// the same convention as the rasterizer's edge function.
func SignedArea(a, b, c math3d.Vec3) float64 {
	return b.XY().Sub(a.XY()).Cross(c.XY().Sub(a.XY()))
}

// BackfaceCullAndFixWinding reports whether a screen-space triangle is
// degenerate and should be culled. A triangle with negative signed area is
// reordered in place by swapping its second and third vertex, so that it is
// positive afterwards.
func BackfaceCullAndFixWinding(tri *[3]math3d.Vec3) bool {
	area := SignedArea(tri[0], tri[1], tri[2])
	if math.Abs(area) < degenerateArea {
		return true
	}
	if area < 0 {
		tri[1], tri[2] = tri[2], tri[1]
	}
	return false
}
