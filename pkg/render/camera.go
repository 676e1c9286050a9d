package render

import (
	"math"

	"github.com/taigrr/teapot/pkg/math3d"
)

// maxPitch keeps the forward vector away from the world up axis.
const maxPitch = math.Pi/2 - 0.01

// Camera is a yaw/pitch fly camera with a perspective projection. Angles
// are radians; yaw 0 looks down -Z and positive yaw turns left.
//
// Position, Pitch and Yaw may be read freely. Write them through the
// setters so the cached view matrix is rebuilt.
type Camera struct {
	Position   math3d.Vec3
	Pitch, Yaw float64

	FOV         float64 // vertical, radians
	AspectRatio float64
	Near, Far   float64

	view, proj           math3d.Mat4
	viewStale, projStale bool
}

// NewCamera places a camera at (0, 0, 3) facing the origin.
func NewCamera(aspect float64) *Camera {
	return &Camera{
		Position:    math3d.V3(0, 0, 3),
		FOV:         math.Pi / 3,
		AspectRatio: aspect,
		Near:        0.1,
		Far:         100,
		viewStale:   true,
		projStale:   true,
	}
}

func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewStale = true
}

// SetRotation replaces both angles; pitch is clamped short of straight
// up or down.
func (c *Camera) SetRotation(pitch, yaw float64) {
	c.Pitch, c.Yaw = clampPitch(pitch), yaw
	c.viewStale = true
}

func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projStale = true
}

func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projStale = true
}

func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near, c.Far = near, far
	c.projStale = true
}

// Forward is the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	sy, cy := math.Sincos(c.Yaw)
	sp, cp := math.Sincos(c.Pitch)
	return math3d.V3(-sy*cp, sp, -cy*cp)
}

// Right is horizontal regardless of pitch.
func (c *Camera) Right() math3d.Vec3 {
	sy, cy := math.Sincos(c.Yaw)
	return math3d.V3(cy, 0, -sy)
}

func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewStale {
		c.view = math3d.LookAt(c.Position, c.Position.Add(c.Forward()), math3d.Up())
		c.viewStale = false
	}
	return c.view
}

func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projStale {
		c.proj = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projStale = false
	}
	return c.proj
}

// MoveForward follows the full view direction, pitch included.
func (c *Camera) MoveForward(distance float64) {
	c.SetPosition(c.Position.Add(c.Forward().Scale(distance)))
}

// MoveRight strafes; negative distances go left.
func (c *Camera) MoveRight(distance float64) {
	c.SetPosition(c.Position.Add(c.Right().Scale(distance)))
}

func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.SetRotation(c.Pitch+deltaPitch, c.Yaw+deltaYaw)
}

// LookAt turns the camera toward target. A target at the camera position
// leaves the orientation unchanged.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	if dir == (math3d.Vec3{}) {
		return
	}
	c.SetRotation(math.Asin(dir.Y), math.Atan2(-dir.X, -dir.Z))
}

// Project maps a world point to screen space with this camera's matrices.
func (c *Camera) Project(world math3d.Vec3, width, height int) (screen, viewPos math3d.Vec3, ok bool) {
	return ProjectPoint(c.ViewMatrix(), c.ProjectionMatrix(), world, width, height)
}

func clampPitch(p float64) float64 {
	return max(-maxPitch, min(maxPitch, p))
}
