package render

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/teapot/pkg/math3d"
)

// testMesh implements MeshSource for testing.
type testMesh struct {
	vertices []math3d.Vec3
	faces    [][3]int
}

func (m *testMesh) VertexCount() int            { return len(m.vertices) }
func (m *testMesh) TriangleCount() int          { return len(m.faces) }
func (m *testMesh) GetVertex(i int) math3d.Vec3 { return m.vertices[i] }
func (m *testMesh) GetFace(i int) [3]int        { return m.faces[i] }

func unitCube() *testMesh {
	h := 0.5
	return &testMesh{
		vertices: []math3d.Vec3{
			{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h},
			{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h},
		},
		faces: [][3]int{
			{0, 2, 1}, {0, 3, 2}, // back
			{4, 5, 6}, {4, 6, 7}, // front
			{0, 4, 7}, {0, 7, 3}, // left
			{1, 2, 6}, {1, 6, 5}, // right
			{3, 7, 6}, {3, 6, 2}, // top
			{0, 1, 5}, {0, 5, 4}, // bottom
		},
	}
}

// frontQuad is a 2x2 quad in the z=0 plane facing +Z.
func frontQuad() *testMesh {
	return &testMesh{
		vertices: []math3d.Vec3{
			{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
		},
		faces: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
}

type testView struct {
	model, view, proj math3d.Mat4
	eye               math3d.Vec3
	width, height     int
}

func cameraAt(eye math3d.Vec3) testView {
	const w, h = 100, 100
	return testView{
		model:  math3d.Identity(),
		view:   math3d.LookAt(eye, math3d.V3(0, 0, 0), math3d.Up()),
		proj:   math3d.Perspective(math.Pi/3, 1, 0.1, 100),
		eye:    eye,
		width:  w,
		height: h,
	}
}

func (v testView) update(o *ObjectRenderer) bool {
	return o.Update(v.model, v.view, v.proj, v.eye, v.width, v.height)
}

func newObject(t *testing.T, m MeshSource, tuning Tuning) *ObjectRenderer {
	t.Helper()
	o, err := NewObjectRenderer(m, tuning)
	if err != nil {
		t.Fatalf("NewObjectRenderer: %v", err)
	}
	return o
}

func TestNewObjectRendererNilMesh(t *testing.T) {
	if _, err := NewObjectRenderer(nil, DefaultTuning()); !errors.Is(err, ErrNilMesh) {
		t.Errorf("got %v, want ErrNilMesh", err)
	}
}

func TestObjectBounds(t *testing.T) {
	o := newObject(t, unitCube(), DefaultTuning())
	if o.Center() != (math3d.Vec3{}) {
		t.Errorf("center = %v, want origin", o.Center())
	}
	if want := math.Sqrt(0.75); math.Abs(o.Radius()-want) > 1e-12 {
		t.Errorf("radius = %v, want %v", o.Radius(), want)
	}

	empty := newObject(t, &testMesh{}, DefaultTuning())
	if empty.Radius() != 1 || empty.Center() != (math3d.Vec3{}) {
		t.Errorf("empty mesh bounds = %v, %v", empty.Center(), empty.Radius())
	}
}

func TestObjectNormals(t *testing.T) {
	o := newObject(t, frontQuad(), DefaultTuning())
	for i := range 4 {
		if n := o.Normal(i); math.Abs(n.Z-1) > 1e-12 {
			t.Errorf("normal %d = %v, want +Z", i, n)
		}
	}

	cube := newObject(t, unitCube(), DefaultTuning())
	for i, v := range unitCube().vertices {
		if cube.Normal(i).Dot(v) <= 0 {
			t.Errorf("cube normal %d = %v does not point outward", i, cube.Normal(i))
		}
	}
}

func TestObjectUpdateCube(t *testing.T) {
	o := newObject(t, unitCube(), DefaultTuning())
	cam := cameraAt(math3d.V3(0, 0, 3))

	if !cam.update(o) {
		t.Fatal("cube in front of camera rejected")
	}
	for i := range 8 {
		if !o.VertexValid(i) {
			t.Errorf("vertex %d invalid", i)
		}
		s := o.ScreenPosition(i)
		if s.X < 0 || s.X > 100 || s.Y < 0 || s.Y > 100 {
			t.Errorf("vertex %d projected off screen: %v", i, s)
		}
		if c := o.VertexColor(i); c.R() < 38 {
			t.Errorf("vertex %d color %#x below ambient", i, uint32(c))
		}
	}
	if o.Inside() {
		t.Error("camera reported inside the cube's sphere")
	}

	r := newTestRenderer(t, 100, 100)
	o.Draw(r, false)
	if st := o.Stats(); st.Primitives == 0 || st.Faces != 12 {
		t.Errorf("stats = %+v", st)
	}
	if countPixels(r, background) == 100*100 {
		t.Error("nothing drawn")
	}
}

func TestObjectLighting(t *testing.T) {
	tests := []struct {
		name   string
		offset math3d.Vec3
		want   Color
	}{
		{"facing light", math3d.V3(0, 0, 1), ColorWhite},
		{"facing away", math3d.V3(0, 0, -1), RGB(38, 38, 38)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tuning.LightOffset = tt.offset
			o := newObject(t, frontQuad(), tuning)
			if !cameraAt(math3d.V3(0, 0, 3)).update(o) {
				t.Fatal("quad rejected")
			}
			for i := range 4 {
				if got := o.VertexColor(i); got != tt.want {
					t.Errorf("vertex %d color = %#x, want %#x", i, uint32(got), uint32(tt.want))
				}
			}
		})
	}
}

func TestObjectDrawWithoutUpdate(t *testing.T) {
	o := newObject(t, unitCube(), DefaultTuning())
	r := newTestRenderer(t, 64, 64)
	o.Draw(r, false)

	if got := countPixels(r, background); got != 64*64 {
		t.Errorf("draw before update touched %d pixels", 64*64-got)
	}
	if o.Stats().Faces != 0 {
		t.Errorf("stats = %+v", o.Stats())
	}
}

func TestObjectRejectedByFrustum(t *testing.T) {
	o := newObject(t, unitCube(), DefaultTuning())
	cam := cameraAt(math3d.V3(0, 0, 3))
	if !cam.update(o) {
		t.Fatal("first update rejected")
	}

	// Move the object behind the camera.
	cam.model = math3d.Translate(math3d.V3(0, 0, 10))
	if cam.update(o) {
		t.Fatal("object behind camera accepted")
	}
	r := newTestRenderer(t, 100, 100)
	o.Draw(r, false)
	if got := countPixels(r, background); got != 100*100 {
		t.Error("rejected object was drawn")
	}
}

func TestObjectPrimitiveBudget(t *testing.T) {
	tests := []struct {
		name      string
		wireframe bool
		want      int
	}{
		{"solid", false, 1},
		{"wireframe", true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tuning.MaxPrimitives = 1
			o := newObject(t, frontQuad(), tuning)
			if !cameraAt(math3d.V3(0, 0, 3)).update(o) {
				t.Fatal("quad rejected")
			}

			r := newTestRenderer(t, 100, 100)
			o.Draw(r, tt.wireframe)
			st := o.Stats()
			if st.Primitives != tt.want || !st.BudgetExhausted {
				t.Errorf("stats = %+v, want %d primitives and exhausted budget", st, tt.want)
			}
		})
	}
}

func TestObjectSkipsInvalidIndices(t *testing.T) {
	m := frontQuad()
	m.faces = append(m.faces, [3]int{0, 1, 99}, [3]int{-1, 0, 1})
	o := newObject(t, m, DefaultTuning())
	if !cameraAt(math3d.V3(0, 0, 3)).update(o) {
		t.Fatal("quad rejected")
	}

	r := newTestRenderer(t, 100, 100)
	o.Draw(r, false)
	st := o.Stats()
	if st.Invalid != 2 || st.Primitives != 2 {
		t.Errorf("stats = %+v, want 2 invalid and 2 primitives", st)
	}
}

func TestObjectSmallTrianglesSkipped(t *testing.T) {
	m := &testMesh{
		vertices: []math3d.Vec3{{X: 0, Y: 0}, {X: 0.01, Y: 0}, {X: 0, Y: 0.01}},
		faces:    [][3]int{{0, 1, 2}},
	}
	o := newObject(t, m, DefaultTuning())
	if !cameraAt(math3d.V3(0, 0, 3)).update(o) {
		t.Fatal("triangle rejected")
	}

	r := newTestRenderer(t, 100, 100)
	o.Draw(r, false)
	if st := o.Stats(); st.TooSmall != 1 || st.Primitives != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestObjectNearPlaneRejection(t *testing.T) {
	// One vertex sits between the eye and the near plane; the camera is
	// inside the bounding sphere.
	m := &testMesh{
		vertices: []math3d.Vec3{{X: -1, Y: -1, Z: -0.05}, {X: 1, Y: -1, Z: -2}, {X: 0, Y: 1, Z: -2}},
		faces:    [][3]int{{0, 1, 2}},
	}
	o := newObject(t, m, DefaultTuning())

	cam := testView{
		model:  math3d.Identity(),
		view:   math3d.Identity(),
		proj:   math3d.Perspective(math.Pi/3, 1, 0.1, 100),
		width:  100,
		height: 100,
	}
	if !cam.update(o) {
		t.Fatal("triangle rejected by frustum")
	}
	if !o.Inside() {
		t.Fatal("camera should be inside the bounding sphere")
	}

	r := newTestRenderer(t, 100, 100)
	o.Draw(r, false)
	if st := o.Stats(); st.NearClipped != 1 || st.Primitives != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestObjectUnprojectableVertex(t *testing.T) {
	// Vertex 0 lies in the camera plane (clip w = 0).
	m := &testMesh{
		vertices: []math3d.Vec3{{X: 1, Y: 0, Z: 0}, {X: 1, Y: -1, Z: -4}, {X: 0, Y: 1, Z: -4}},
		faces:    [][3]int{{0, 1, 2}},
	}
	o := newObject(t, m, DefaultTuning())
	cam := testView{
		model:  math3d.Identity(),
		view:   math3d.Identity(),
		proj:   math3d.Perspective(math.Pi/3, 1, 0.1, 100),
		width:  100,
		height: 100,
	}
	if !cam.update(o) {
		t.Fatal("triangle rejected by frustum")
	}
	if o.VertexValid(0) {
		t.Error("vertex with w=0 marked valid")
	}
	if s := o.ScreenPosition(0); !math.IsInf(s.X, 1) {
		t.Errorf("invalid vertex screen = %v, want +Inf sentinel", s)
	}

	r := newTestRenderer(t, 100, 100)
	o.Draw(r, false)
	if st := o.Stats(); st.Invalid != 1 {
		t.Errorf("stats = %+v", st)
	}
	for _, d := range r.depth {
		if math.IsNaN(d) {
			t.Fatal("NaN reached the depth buffer")
		}
	}
}

func TestObjectCameraInside(t *testing.T) {
	o := newObject(t, unitCube(), DefaultTuning())
	cam := cameraAt(math3d.V3(0, 0, 0.2))
	cam.view = math3d.LookAt(cam.eye, math3d.V3(0, 0, -1), math3d.Up())
	if !cam.update(o) {
		t.Fatal("cube rejected")
	}
	if !o.Inside() {
		t.Error("camera at the center should be inside")
	}
}

func BenchmarkObjectUpdateDraw(b *testing.B) {
	m := unitCube()
	o, err := NewObjectRenderer(m, DefaultTuning())
	if err != nil {
		b.Fatal(err)
	}
	r := newTestRenderer(b, 320, 240)
	view := math3d.LookAt(math3d.V3(0, 0, 3), math3d.V3(0, 0, 0), math3d.Up())
	proj := math3d.Perspective(math.Pi/3, 320.0/240.0, 0.1, 100)
	angle := 0.0

	for b.Loop() {
		angle += 0.01
		r.Clear(background)
		if o.Update(math3d.RotateY(angle), view, proj, math3d.V3(0, 0, 3), 320, 240) {
			o.Draw(r, false)
		}
	}
}
