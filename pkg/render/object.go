package render

import (
	"errors"
	"math"

	"github.com/taigrr/teapot/pkg/math3d"
)

// ErrNilMesh is returned when an object renderer is built without a mesh.
var ErrNilMesh = errors.New("render: nil mesh")

// MeshSource supplies raw triangle geometry.
type MeshSource interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) math3d.Vec3
	GetFace(i int) [3]int
}

// Tuning holds the constants that steer an ObjectRenderer.
type Tuning struct {
	// Minimum |signed area| (in px², parallelogram) a projected triangle
	// needs to be drawn, outside and inside the bounding sphere.
	MinAreaOutside float64
	MinAreaInside  float64

	// Upper bound on primitives issued per Draw. Wireframe triangles count 3.
	MaxPrimitives int

	NearPlane float64
	FarPlane  float64
	FOV       float64 // vertical, radians

	Ambient     float64
	LightOffset math3d.Vec3 // light position relative to the object center
	BaseColor   Color
	WireColor   Color
}

// DefaultTuning returns the stock tuning values.
func DefaultTuning() Tuning {
	return Tuning{
		MinAreaOutside: 8,
		MinAreaInside:  4,
		MaxPrimitives:  20000,
		NearPlane:      0.1,
		FarPlane:       100,
		FOV:            math.Pi / 3,
		Ambient:        0.15,
		LightOffset:    math3d.V3(2, 4, 2),
		BaseColor:      ColorWhite,
		WireColor:      ColorWhite,
	}
}

// DrawStats counts what happened to each face during the last Draw.
type DrawStats struct {
	Faces           int // faces examined
	Invalid         int // bad index or unprojectable vertex
	Culled          int // degenerate after winding fix
	TooSmall        int // below the area threshold
	NearClipped     int // a vertex in front of the near plane
	Primitives      int // triangles or lines issued
	BudgetExhausted bool
}

// ObjectRenderer is the render state for one mesh. Update projects and
// lights the mesh for the current camera; Draw rasterizes the cached result.
// Draw without a successful Update since construction, or after an Update
// that rejected the object, does nothing.
type ObjectRenderer struct {
	vertices []math3d.Vec3
	faces    [][3]int
	normals  []math3d.Vec3
	center   math3d.Vec3
	radius   float64
	tuning   Tuning

	viewPos []math3d.Vec3
	screen  []math3d.Vec3
	valid   []bool
	colors  []Color

	inside  bool
	visible bool
	stats   DrawStats
}

// NewObjectRenderer copies the mesh and precomputes its bounding sphere and
// smooth vertex normals.
func NewObjectRenderer(mesh MeshSource, tuning Tuning) (*ObjectRenderer, error) {
	if mesh == nil {
		return nil, ErrNilMesh
	}

	n := mesh.VertexCount()
	o := &ObjectRenderer{
		vertices: make([]math3d.Vec3, n),
		faces:    make([][3]int, mesh.TriangleCount()),
		normals:  make([]math3d.Vec3, n),
		tuning:   tuning,
		viewPos:  make([]math3d.Vec3, n),
		screen:   make([]math3d.Vec3, n),
		valid:    make([]bool, n),
		colors:   make([]Color, n),
	}
	for i := range o.vertices {
		o.vertices[i] = mesh.GetVertex(i)
	}
	for i := range o.faces {
		o.faces[i] = mesh.GetFace(i)
	}

	o.computeBounds()
	o.computeNormals()

	Logger().Debug("object renderer created",
		"vertices", n, "faces", len(o.faces), "radius", o.radius)
	return o, nil
}

func (o *ObjectRenderer) computeBounds() {
	if len(o.vertices) == 0 {
		o.center = math3d.Vec3{}
		o.radius = 1
		return
	}

	var sum math3d.Vec3
	for _, v := range o.vertices {
		sum = sum.Add(v)
	}
	o.center = sum.Scale(1 / float64(len(o.vertices)))

	for _, v := range o.vertices {
		o.radius = math.Max(o.radius, v.Distance(o.center))
	}
}

// computeNormals accumulates unnormalized face normals, so larger faces
// weigh more, then normalizes per vertex.
func (o *ObjectRenderer) computeNormals() {
	for _, f := range o.faces {
		if !o.faceInRange(f) {
			continue
		}
		v0, v1, v2 := o.vertices[f[0]], o.vertices[f[1]], o.vertices[f[2]]
		fn := v1.Sub(v0).Cross(v2.Sub(v0))
		for _, idx := range f {
			o.normals[idx] = o.normals[idx].Add(fn)
		}
	}
	for i := range o.normals {
		o.normals[i] = o.normals[i].Normalize()
	}
}

func (o *ObjectRenderer) faceInRange(f [3]int) bool {
	n := len(o.vertices)
	return f[0] >= 0 && f[0] < n && f[1] >= 0 && f[1] < n && f[2] >= 0 && f[2] < n
}

// Update transforms, projects and lights every vertex. It returns false,
// without touching the per-vertex caches, when the bounding sphere lies
// outside the view frustum.
func (o *ObjectRenderer) Update(model, view, proj math3d.Mat4, cameraPos math3d.Vec3, width, height int) bool {
	t := o.tuning
	worldCenter := model.MulVec3(o.center)

	if !SphereInFrustum(view, worldCenter, o.radius, width, height, t.FOV, t.NearPlane, t.FarPlane) {
		o.visible = false
		return false
	}

	lightPos := worldCenter.Add(t.LightOffset)
	light := view.MulVec3Dir(lightPos.Sub(worldCenter).Normalize()).Normalize()
	normalMat := view.Mul(model)

	for i, v := range o.vertices {
		world := model.MulVec3(v)
		screen, viewPos, ok := ProjectPoint(view, proj, world, width, height)
		if !ok {
			o.valid[i] = false
			o.screen[i] = offscreen
			continue
		}
		o.valid[i] = true
		o.screen[i] = screen
		o.viewPos[i] = viewPos

		n := normalMat.MulVec3Dir(o.normals[i]).Normalize()
		diffuse := math.Max(n.Dot(light), 0)
		intensity := math.Min(t.Ambient+(1-t.Ambient)*diffuse, 1)
		o.colors[i] = t.BaseColor.Scale(intensity)
	}

	o.inside = cameraPos.Distance(worldCenter) < o.radius
	o.visible = true
	return true
}

// Draw issues the cached triangles to r, solid and shaded or as white
// wireframe. Faces are skipped when any vertex is invalid, when they are
// degenerate or too small on screen, or when a vertex is in front of the
// near plane. Drawing stops once the primitive budget is used up.
func (o *ObjectRenderer) Draw(r *Renderer, wireframe bool) {
	o.stats = DrawStats{}
	if !o.visible {
		return
	}

	t := o.tuning
	minArea := t.MinAreaOutside
	if o.inside {
		minArea = t.MinAreaInside
	}

	for _, f := range o.faces {
		o.stats.Faces++

		if !o.faceInRange(f) || !o.valid[f[0]] || !o.valid[f[1]] || !o.valid[f[2]] {
			o.stats.Invalid++
			continue
		}

		tri := [3]math3d.Vec3{o.screen[f[0]], o.screen[f[1]], o.screen[f[2]]}
		cols := [3]Color{o.colors[f[0]], o.colors[f[1]], o.colors[f[2]]}
		area := math.Abs(SignedArea(tri[0], tri[1], tri[2]))

		if !o.inside {
			before := tri[1]
			if BackfaceCullAndFixWinding(&tri) {
				o.stats.Culled++
				continue
			}
			if tri[1] != before {
				cols[1], cols[2] = cols[2], cols[1]
			}
		}

		if area < minArea {
			o.stats.TooSmall++
			continue
		}

		if o.viewPos[f[0]].Z > -t.NearPlane || o.viewPos[f[1]].Z > -t.NearPlane || o.viewPos[f[2]].Z > -t.NearPlane {
			o.stats.NearClipped++
			continue
		}

		if o.stats.Primitives >= t.MaxPrimitives {
			o.stats.BudgetExhausted = true
			break
		}

		if wireframe {
			r.DrawLine(tri[0], tri[1], t.WireColor)
			r.DrawLine(tri[1], tri[2], t.WireColor)
			r.DrawLine(tri[2], tri[0], t.WireColor)
			o.stats.Primitives += 3
			continue
		}
		r.DrawTriangleShaded(tri[0], tri[1], tri[2], cols[0], cols[1], cols[2])
		o.stats.Primitives++
	}
}

// Stats returns the counters from the last Draw.
func (o *ObjectRenderer) Stats() DrawStats { return o.stats }

// Visible reports whether the last Update accepted the object.
func (o *ObjectRenderer) Visible() bool { return o.visible }

// Inside reports whether the camera was inside the bounding sphere at the
// last successful Update.
func (o *ObjectRenderer) Inside() bool { return o.inside }

// Center returns the object-space bounding sphere center.
func (o *ObjectRenderer) Center() math3d.Vec3 { return o.center }

// Radius returns the bounding sphere radius.
func (o *ObjectRenderer) Radius() float64 { return o.radius }

// Normal returns the smooth normal of vertex i.
func (o *ObjectRenderer) Normal(i int) math3d.Vec3 { return o.normals[i] }

// VertexValid reports whether vertex i projected successfully.
func (o *ObjectRenderer) VertexValid(i int) bool { return o.valid[i] }

// ScreenPosition returns the cached screen-space position of vertex i.
func (o *ObjectRenderer) ScreenPosition(i int) math3d.Vec3 { return o.screen[i] }

// ViewPosition returns the cached view-space position of vertex i.
func (o *ObjectRenderer) ViewPosition(i int) math3d.Vec3 { return o.viewPos[i] }

// VertexColor returns the cached lit color of vertex i.
func (o *ObjectRenderer) VertexColor(i int) Color { return o.colors[i] }
