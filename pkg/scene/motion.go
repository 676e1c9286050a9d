package scene

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/teapot/pkg/math3d"
	"github.com/taigrr/teapot/pkg/platform"
	"github.com/taigrr/teapot/pkg/render"
)

// SpinAxis tracks an angle and an angular velocity that a spring pulls back
// to zero, so impulses coast to a smooth stop.
type SpinAxis struct {
	Angle    float64 // radians
	Velocity float64 // radians per second

	spring harmonica.Spring
	accel  float64 // spring velocity of Velocity itself
}

// NewSpinAxis creates an axis whose spring steps at fps.
func NewSpinAxis(fps int) SpinAxis {
	// Critically damped: the spin slows to a stop without swinging back.
	return SpinAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// Impulse adds angular velocity.
func (a *SpinAxis) Impulse(v float64) {
	a.Velocity += v
}

// Update advances the angle by dt and decays the velocity one spring step.
func (a *SpinAxis) Update(dt float64) {
	a.Angle = wrapAngle(a.Angle + a.Velocity*dt)
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
}

// wrapAngle maps a into [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// FlyController maps WASD and mouse motion onto a camera.
type FlyController struct {
	Speed       float64 // units per second
	Sensitivity float64 // radians per mouse pixel
}

// NewFlyController returns a controller with the stock speed and
// sensitivity.
func NewFlyController() FlyController {
	return FlyController{Speed: 4, Sensitivity: 0.003}
}

// Apply moves and turns cam for one frame. Arrow keys mirror WASD.
func (fc FlyController) Apply(cam *render.Camera, in *platform.Input, dt float64) {
	step := fc.Speed * dt
	if in.Down(platform.KeyW) || in.Down(platform.KeyUp) {
		cam.MoveForward(step)
	}
	if in.Down(platform.KeyS) || in.Down(platform.KeyDown) {
		cam.MoveForward(-step)
	}
	if in.Down(platform.KeyA) || in.Down(platform.KeyLeft) {
		cam.MoveRight(-step)
	}
	if in.Down(platform.KeyD) || in.Down(platform.KeyRight) {
		cam.MoveRight(step)
	}
	if dx, dy := in.MouseDelta(); dx != 0 || dy != 0 {
		cam.Rotate(-dy*fc.Sensitivity, -dx*fc.Sensitivity)
	}
}

// ChaseCamera keeps a camera behind and above a moving target. It owns its
// orbit angles; the camera position follows the ideal spot on critically
// damped springs and then looks at the target.
type ChaseCamera struct {
	Distance    float64
	Height      float64 // aim offset above the followed point
	Sensitivity float64 // radians per mouse pixel
	Yaw         float64 // radians, 0 looks down -Z
	Pitch       float64 // radians, negative looks down

	springs [3]harmonica.Spring
	pos     [3]float64
	vel     [3]float64
	placed  bool
}

// NewChaseCamera follows at distance 6, aiming one unit above the target
// and looking slightly down.
func NewChaseCamera(fps int) *ChaseCamera {
	c := &ChaseCamera{Distance: 6, Height: 1, Sensitivity: 0.003, Pitch: -0.35}
	for i := range c.springs {
		c.springs[i] = harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)
	}
	return c
}

// Aim returns the point the camera looks at for a followed point.
func (c *ChaseCamera) Aim(followed math3d.Vec3) math3d.Vec3 {
	return followed.Add(math3d.V3(0, c.Height, 0))
}

// Ideal returns the camera position Distance behind the aim point along
// the orbit direction.
func (c *ChaseCamera) Ideal(followed math3d.Vec3) math3d.Vec3 {
	forward := math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
	return c.Aim(followed).Sub(forward.Scale(c.Distance))
}

// Update orbits with mouse motion and moves cam one spring step toward the
// ideal position. The first call snaps into place.
func (c *ChaseCamera) Update(cam *render.Camera, in *platform.Input, followed math3d.Vec3) {
	if in != nil {
		dx, dy := in.MouseDelta()
		c.Yaw -= dx * c.Sensitivity
		c.Pitch = math.Max(-1.4, math.Min(0.2, c.Pitch-dy*c.Sensitivity))
	}

	want := c.Ideal(followed)
	target := [3]float64{want.X, want.Y, want.Z}

	if !c.placed {
		c.pos = target
		c.placed = true
	} else {
		for i := range c.pos {
			c.pos[i], c.vel[i] = c.springs[i].Update(c.pos[i], c.vel[i], target[i])
		}
	}

	cam.SetPosition(math3d.V3(c.pos[0], c.pos[1], c.pos[2]))
	cam.LookAt(c.Aim(followed))
}
