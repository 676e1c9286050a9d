// Package models provides triangle meshes and the loaders that produce them:
// Wavefront OBJ, glTF/GLB and pak archives.
package models

import (
	"math"
	"slices"

	"github.com/taigrr/teapot/pkg/math3d"
)

// Mesh is raw triangle geometry: vertex positions and index triples.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Faces     []Face
	Materials []Material

	// Axis-aligned bounds, kept current by the loaders and Transform.
	BoundsMin, BoundsMax math3d.Vec3
}

// Face is one triangle. Material is -1 when the face has none.
type Face struct {
	V        [3]int
	Material int
}

// Material carries the flat base color of a surface. Textures are not
// loaded.
type Material struct {
	Name      string
	BaseColor [4]float64 // linear RGBA, 0..1
}

func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddVertex returns the index of the new vertex.
func (m *Mesh) AddVertex(v math3d.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a triangle without a material.
func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, Face{V: [3]int{a, b, c}, Material: -1})
}

// CalculateBounds recomputes BoundsMin and BoundsMax. An empty mesh has
// zero bounds.
func (m *Mesh) CalculateBounds() {
	var lo, hi math3d.Vec3
	for i, v := range m.Vertices {
		if i == 0 {
			lo, hi = v, v
			continue
		}
		lo, hi = lo.Min(v), hi.Max(v)
	}
	m.BoundsMin, m.BoundsMax = lo, hi
}

func (m *Mesh) Center() math3d.Vec3 { return m.BoundsMin.Lerp(m.BoundsMax, 0.5) }
func (m *Mesh) Size() math3d.Vec3   { return m.BoundsMax.Sub(m.BoundsMin) }

func (m *Mesh) TriangleCount() int { return len(m.Faces) }
func (m *Mesh) VertexCount() int   { return len(m.Vertices) }

func (m *Mesh) GetVertex(i int) math3d.Vec3 { return m.Vertices[i] }
func (m *Mesh) GetFace(i int) [3]int        { return m.Faces[i].V }

// Transform moves every vertex by mat in place and refreshes the bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Normalize recenters the mesh on its bounding-box center and scales it
// uniformly so that its largest dimension equals targetSize. Meshes with
// no extent are only recentered.
func (m *Mesh) Normalize(targetSize float64) {
	m.CalculateBounds()
	size := m.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))

	transform := math3d.Translate(m.Center().Negate())
	if maxDim > 0 {
		transform = math3d.ScaleUniform(targetSize / maxDim).Mul(transform)
	}
	m.Transform(transform)
}

// Clone returns a copy that shares no slices with m.
func (m *Mesh) Clone() *Mesh {
	c := *m
	c.Vertices = slices.Clone(m.Vertices)
	c.Faces = slices.Clone(m.Faces)
	c.Materials = slices.Clone(m.Materials)
	return &c
}

// BaseColor returns the color of the first material, or opaque white.
func (m *Mesh) BaseColor() [4]float64 {
	if len(m.Materials) == 0 {
		return [4]float64{1, 1, 1, 1}
	}
	return m.Materials[0].BaseColor
}

// NewPlane builds a flat square of the given size in the XZ plane, centered
// on the origin and split into divisions×divisions quads, facing +Y.
func NewPlane(name string, size float64, divisions int) *Mesh {
	divisions = max(divisions, 1)
	m := NewMesh(name)
	step := size / float64(divisions)
	half := size / 2

	for z := 0; z <= divisions; z++ {
		for x := 0; x <= divisions; x++ {
			m.AddVertex(math3d.V3(-half+float64(x)*step, 0, -half+float64(z)*step))
		}
	}

	row := divisions + 1
	for z := range divisions {
		for x := range divisions {
			i := z*row + x
			m.AddFace(i, i+row, i+row+1)
			m.AddFace(i, i+row+1, i+1)
		}
	}
	m.CalculateBounds()
	return m
}

// NewCube builds an axis-aligned cube with outward-facing triangles.
func NewCube(name string, size float64) *Mesh {
	h := size / 2
	m := NewMesh(name)
	for _, v := range [8]math3d.Vec3{
		{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h},
	} {
		m.AddVertex(v)
	}

	for _, f := range [6][4]int{
		{1, 0, 3, 2}, // Back
		{4, 5, 6, 7}, // Front
		{0, 4, 7, 3}, // Left
		{5, 1, 2, 6}, // Right
		{7, 6, 2, 3}, // Top
		{0, 1, 5, 4}, // Bottom
	} {
		m.AddFace(f[0], f[1], f[2])
		m.AddFace(f[0], f[2], f[3])
	}
	m.CalculateBounds()
	return m
}
