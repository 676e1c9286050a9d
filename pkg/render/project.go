package render

import (
	"math"

	"github.com/taigrr/teapot/pkg/math3d"
)

// minClipW is the smallest |w| accepted by the perspective divide.
const minClipW = 1e-6

// ProjectPoint transforms a world-space point through view and projection
// and maps it to screen space. Screen Z is the NDC depth remapped to [0,1].
// It fails when the clip-space w is too close to zero to divide by.
func ProjectPoint(view, proj math3d.Mat4, world math3d.Vec3, width, height int) (screen, viewPos math3d.Vec3, ok bool) {
	viewPos = view.MulVec3(world)
	clip := proj.MulVec4(math3d.V4FromV3(viewPos, 1))
	ndc, ok := clip.PerspectiveDivide(minClipW)
	if !ok {
		return math3d.Vec3{}, viewPos, false
	}
	ndc.Z = (ndc.Z + 1) * 0.5
	return NDCToScreen(ndc, width, height), viewPos, true
}

// NDCToScreen maps normalized device coordinates to pixel coordinates.
// NDC y=+1 is the top row.
func NDCToScreen(ndc math3d.Vec3, width, height int) math3d.Vec3 {
	return math3d.Vec3{
		X: (ndc.X + 1) * 0.5 * float64(width),
		Y: (1 - (ndc.Y+1)*0.5) * float64(height),
		Z: ndc.Z,
	}
}

// offscreen marks a vertex whose projection failed.
var offscreen = math3d.V3(math.Inf(1), math.Inf(1), math.Inf(1))
