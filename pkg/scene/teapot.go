package scene

import (
	"github.com/taigrr/teapot/pkg/math3d"
	"github.com/taigrr/teapot/pkg/models"
	"github.com/taigrr/teapot/pkg/platform"
	"github.com/taigrr/teapot/pkg/render"
)

const (
	teapotSpinRate = 0.5 // radians per second around Y
	teapotImpulse  = 3.0 // extra radians per second per Space press
)

// teapotPosition is where the model sits in front of the camera.
var teapotPosition = math3d.V3(0, 0, -5)

// TeapotScene spins a single model in front of a fly camera. Tab toggles
// wireframe, Space kicks the spin, R resets the view.
type TeapotScene struct {
	object    *render.ObjectRenderer
	wireframe bool
	angle     float64
	spin      SpinAxis
	fly       FlyController
	fps       int
}

// NewTeapotScene builds the scene and puts cam at the origin looking down
// -Z at the model.
func NewTeapotScene(mesh *models.Mesh, cam *render.Camera, opts Options) (*TeapotScene, error) {
	obj, err := render.NewObjectRenderer(mesh, opts.Tuning)
	if err != nil {
		return nil, err
	}
	s := &TeapotScene{
		object:    obj,
		wireframe: opts.Wireframe,
		spin:      NewSpinAxis(opts.FPS),
		fly:       NewFlyController(),
		fps:       opts.FPS,
	}
	resetCamera(cam)
	return s, nil
}

func resetCamera(cam *render.Camera) {
	cam.SetPosition(math3d.Vec3{})
	cam.SetRotation(0, 0)
}

// Model returns the current model matrix.
func (s *TeapotScene) Model() math3d.Mat4 {
	return math3d.Translate(teapotPosition).Mul(math3d.RotateY(wrapAngle(s.angle + s.spin.Angle)))
}

// Wireframe reports whether the model is drawn as lines.
func (s *TeapotScene) Wireframe() bool { return s.wireframe }

// Object returns the model's render state.
func (s *TeapotScene) Object() *render.ObjectRenderer { return s.object }

// Update implements Scene.
func (s *TeapotScene) Update(f Frame) {
	in := f.Input
	if in.Pressed(platform.KeyTab) {
		s.wireframe = !s.wireframe
	}
	if in.Pressed(platform.KeySpace) {
		s.spin.Impulse(teapotImpulse)
	}
	if in.Pressed(platform.KeyR) {
		s.angle = 0
		s.spin = NewSpinAxis(s.fps)
		resetCamera(f.Camera)
	}

	s.fly.Apply(f.Camera, in, f.DT)

	s.angle = wrapAngle(s.angle + f.DT*teapotSpinRate)
	s.spin.Update(f.DT)

	s.object.Update(s.Model(), f.Camera.ViewMatrix(), f.Camera.ProjectionMatrix(), f.Camera.Position, f.Width, f.Height)
}

// Render implements Scene.
func (s *TeapotScene) Render(r *render.Renderer) {
	s.object.Draw(r, s.wireframe)
}

// Stats implements Scene.
func (s *TeapotScene) Stats() render.DrawStats {
	return s.object.Stats()
}
