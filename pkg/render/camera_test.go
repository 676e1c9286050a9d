package render

import (
	"math"
	"testing"

	"github.com/taigrr/teapot/pkg/math3d"
)

func vecNear(a, b math3d.Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}

func TestCameraForward(t *testing.T) {
	tests := []struct {
		name       string
		pitch, yaw float64
		want       math3d.Vec3
	}{
		{"default", 0, 0, math3d.V3(0, 0, -1)},
		{"turned left", 0, math.Pi / 2, math3d.V3(-1, 0, 0)},
		{"turned around", 0, math.Pi, math3d.V3(0, 0, 1)},
		{"clamped up", math.Pi, 0, math3d.V3(0, math.Sin(maxPitch), -math.Cos(maxPitch))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(1)
			c.SetRotation(tt.pitch, tt.yaw)
			if got := c.Forward(); !vecNear(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if d := c.Forward().Dot(c.Right()); math.Abs(d) > 1e-9 {
				t.Errorf("forward·right = %v, want 0", d)
			}
		})
	}
}

func TestCameraLookAt(t *testing.T) {
	c := NewCamera(1)
	c.SetPosition(math3d.V3(1, 2, 3))
	target := math3d.V3(-2, 0, 7)
	c.LookAt(target)

	want := target.Sub(c.Position).Normalize()
	if got := c.Forward(); !vecNear(got, want) {
		t.Errorf("forward = %v, want %v", got, want)
	}

	pitch, yaw := c.Pitch, c.Yaw
	c.LookAt(c.Position)
	if c.Pitch != pitch || c.Yaw != yaw {
		t.Errorf("looking at own position changed rotation")
	}
}

func TestCameraViewMatrixTracksMoves(t *testing.T) {
	c := NewCamera(1)
	c.SetPosition(math3d.Vec3{})
	before := c.ViewMatrix()

	c.MoveForward(2)
	if !vecNear(c.Position, math3d.V3(0, 0, -2)) {
		t.Fatalf("position = %v, want (0,0,-2)", c.Position)
	}
	after := c.ViewMatrix()
	if before == after {
		t.Fatal("view matrix not rebuilt after move")
	}
	// The camera's own position maps to the view-space origin.
	if got := after.MulVec3(c.Position); !vecNear(got, math3d.Vec3{}) {
		t.Errorf("eye in view space = %v", got)
	}

	c.MoveRight(1)
	if !vecNear(c.Position, math3d.V3(1, 0, -2)) {
		t.Errorf("position after strafe = %v", c.Position)
	}
}

func TestCameraProjection(t *testing.T) {
	c := NewCamera(2)
	p := c.ProjectionMatrix()
	c.SetAspectRatio(1)
	if c.ProjectionMatrix() == p {
		t.Error("projection not rebuilt after aspect change")
	}
	c.SetClipPlanes(1, 10)
	c.SetFOV(math.Pi / 2)

	c.SetPosition(math3d.Vec3{})
	s, _, ok := c.Project(math3d.V3(0, 0, -5), 100, 100)
	if !ok || s.XY().Sub(math3d.V2(50, 50)).Len() > 1e-9 {
		t.Errorf("center projects to %v (ok=%v)", s, ok)
	}
}
