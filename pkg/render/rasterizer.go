package render

import (
	"math"

	"github.com/taigrr/teapot/pkg/math3d"
)

// degenerateArea is the signed-area magnitude below which a screen-space
// triangle is treated as having no area.
const degenerateArea = 1e-6

// edge is the 2D edge function of point (x, y) against the directed edge
// a→b. edge(a, b, c.X, c.Y) is the signed parallelogram area of a, b, c.
func edge(a, b math3d.Vec3, x, y float64) float64 {
	return (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
}

// DrawTriangle fills a screen-space triangle with a flat color. Vertex X/Y
// are pixel coordinates and Z is depth; smaller depth is nearer.
func (r *Renderer) DrawTriangle(v0, v1, v2 math3d.Vec3, c Color) {
	if r.winding == Clockwise {
		v1, v2 = v2, v1
	}
	r.rasterize(v0, v1, v2, [3]Color{c, c, c}, false)
}

// DrawTriangleShaded fills a triangle interpolating per-vertex colors with
// the same weights used for depth.
func (r *Renderer) DrawTriangleShaded(v0, v1, v2 math3d.Vec3, c0, c1, c2 Color) {
	if r.winding == Clockwise {
		v1, v2 = v2, v1
		c1, c2 = c2, c1
	}
	r.rasterize(v0, v1, v2, [3]Color{c0, c1, c2}, true)
}

// rasterize runs the half-space test over the clamped bounding box. A pixel
// is covered when all three normalized edge weights are non-negative,
// sampled at the pixel center.
func (r *Renderer) rasterize(v0, v1, v2 math3d.Vec3, cols [3]Color, smooth bool) {
	if !v0.IsFinite() || !v1.IsFinite() || !v2.IsFinite() {
		return
	}

	area := edge(v0, v1, v2.X, v2.Y)
	if math.Abs(area) < degenerateArea {
		return
	}
	invArea := 1 / area

	width, height := r.fb.Width, r.fb.Height
	minX, maxX, okX := pixelSpan(min(v0.X, v1.X, v2.X), max(v0.X, v1.X, v2.X), width)
	minY, maxY, okY := pixelSpan(min(v0.Y, v1.Y, v2.Y), max(v0.Y, v1.Y, v2.Y), height)
	if !okX || !okY {
		return
	}

	var cr, cg, cb [3]float64
	for i, c := range cols {
		cr[i], cg[i], cb[i] = float64(c.R()), float64(c.G()), float64(c.B())
	}

	pixels := r.fb.Pixels
	depth := r.depth

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		rowOffset := y * width
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			w0 := edge(v1, v2, px, py) * invArea
			w1 := edge(v2, v0, px, py) * invArea
			w2 := edge(v0, v1, px, py) * invArea
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*v0.Z + w1*v1.Z + w2*v2.Z
			idx := rowOffset + x
			if z >= depth[idx] {
				continue
			}
			depth[idx] = z

			if !smooth {
				pixels[idx] = cols[0]
				continue
			}
			pixels[idx] = RGB(
				channel(w0*cr[0]+w1*cr[1]+w2*cr[2]),
				channel(w0*cg[0]+w1*cg[1]+w2*cg[2]),
				channel(w0*cb[0]+w1*cb[1]+w2*cb[2]),
			)
		}
	}
}

// DrawLine draws a depth-tested line between two screen-space points.
// Endpoints are clamped to the buffer and truncated to integer pixels;
// depth is interpolated linearly along the walk.
func (r *Renderer) DrawLine(p0, p1 math3d.Vec3, c Color) {
	if !p0.IsFinite() || !p1.IsFinite() {
		return
	}

	width, height := r.fb.Width, r.fb.Height
	x0, y0 := clampPixel(p0.X, width), clampPixel(p0.Y, height)
	x1, y1 := clampPixel(p1.X, width), clampPixel(p1.Y, height)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	steps := max(dx, -dy)
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		z := p0.Z + (p1.Z-p0.Z)*t
		idx := y0*width + x0
		if z < r.depth[idx] {
			r.depth[idx] = z
			r.fb.Pixels[idx] = c
		}

		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// pixelSpan clips the float range [lo, hi] to pixel indices [0, size-1].
// Clipping happens before the int conversion, which is undefined for
// values outside the int range.
func pixelSpan(lo, hi float64, size int) (first, last int, ok bool) {
	lo, hi = math.Floor(lo), math.Floor(hi)
	if hi < 0 || lo > float64(size-1) {
		return 0, 0, false
	}
	return int(max(lo, 0)), int(min(hi, float64(size-1))), true
}

func clampPixel(v float64, size int) int {
	return int(math.Max(0, math.Min(float64(size-1), v)))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
