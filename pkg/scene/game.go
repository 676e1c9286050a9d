package scene

import (
	"math"

	"github.com/taigrr/teapot/pkg/math3d"
	"github.com/taigrr/teapot/pkg/models"
	"github.com/taigrr/teapot/pkg/platform"
	"github.com/taigrr/teapot/pkg/render"
)

// Checkerboard floor layout.
const (
	tilesX   = 20
	tilesZ   = 20
	tileSize = 1.0
)

// Floor tile colors.
const (
	tileLight = render.ColorDarkGray
	tileDark  = render.ColorCharcoal
)

const (
	playerSpeed     = 3.0 // units per second
	playerTurnSpeed = 8.0 // radians per second
	groundSize      = 10.0
	groundLift      = 0.01 // keeps the ground wireframe above the floor tiles
)

var playerStart = math3d.V3(0, 0.5, -4)

// GameObject is a mesh placed in the world.
type GameObject struct {
	Model    math3d.Mat4
	Renderer *render.ObjectRenderer
	Visible  bool
}

// GameScene is a third-person scene: the player mesh walks on a
// checkerboard floor, moving relative to a chase camera.
type GameScene struct {
	ground *GameObject
	player *GameObject

	playerPos math3d.Vec3
	playerYaw float64

	chase *ChaseCamera
	view  math3d.Mat4
	proj  math3d.Mat4
	near  float64

	width, height int
	stats         render.DrawStats
}

// NewGameScene uses mesh as the player model.
func NewGameScene(mesh *models.Mesh, cam *render.Camera, opts Options) (*GameScene, error) {
	player, err := render.NewObjectRenderer(mesh, opts.Tuning)
	if err != nil {
		return nil, err
	}

	groundTuning := opts.Tuning
	groundTuning.WireColor = render.ColorGray
	ground, err := render.NewObjectRenderer(models.NewPlane("ground", groundSize, int(groundSize)), groundTuning)
	if err != nil {
		return nil, err
	}

	s := &GameScene{
		ground:    &GameObject{Model: math3d.Translate(math3d.V3(0, groundLift, 0)), Renderer: ground, Visible: opts.ShowGround},
		player:    &GameObject{Model: math3d.Translate(playerStart), Renderer: player, Visible: true},
		playerPos: playerStart,
		chase:     NewChaseCamera(opts.FPS),
		near:      opts.Tuning.NearPlane,
	}
	s.chase.Update(cam, nil, s.playerPos)
	return s, nil
}

// PlayerPosition returns the player's world position.
func (s *GameScene) PlayerPosition() math3d.Vec3 { return s.playerPos }

// PlayerYaw returns the player's heading in radians; 0 faces +Z.
func (s *GameScene) PlayerYaw() float64 { return s.playerYaw }

// Update implements Scene.
func (s *GameScene) Update(f Frame) {
	cam := f.Camera

	fwd := cam.Forward()
	fwd.Y = 0
	fwd = fwd.Normalize()
	right := fwd.Cross(math3d.Up()).Normalize()

	var ix, iz float64
	if f.Input.Down(platform.KeyW) || f.Input.Down(platform.KeyUp) {
		iz++
	}
	if f.Input.Down(platform.KeyS) || f.Input.Down(platform.KeyDown) {
		iz--
	}
	if f.Input.Down(platform.KeyA) || f.Input.Down(platform.KeyLeft) {
		ix--
	}
	if f.Input.Down(platform.KeyD) || f.Input.Down(platform.KeyRight) {
		ix++
	}

	if ix != 0 || iz != 0 {
		move := fwd.Scale(iz).Add(right.Scale(ix)).Normalize()
		s.playerPos = s.playerPos.Add(move.Scale(playerSpeed * f.DT))
		s.playerYaw = turnToward(s.playerYaw, math.Atan2(move.X, move.Z), playerTurnSpeed*f.DT)
	}

	s.player.Model = math3d.Translate(s.playerPos).Mul(math3d.RotateY(s.playerYaw))
	s.chase.Update(cam, f.Input, s.playerPos)

	s.view = cam.ViewMatrix()
	s.proj = cam.ProjectionMatrix()
	s.width, s.height = f.Width, f.Height

	for _, obj := range s.objects() {
		if obj.Visible {
			obj.Renderer.Update(obj.Model, s.view, s.proj, cam.Position, f.Width, f.Height)
		}
	}
}

func (s *GameScene) objects() []*GameObject {
	return []*GameObject{s.ground, s.player}
}

// turnToward rotates yaw toward target along the shorter arc by at most
// step radians.
func turnToward(yaw, target, step float64) float64 {
	diff := math.Remainder(target-yaw, 2*math.Pi)
	diff = math.Max(-step, math.Min(step, diff))
	return yaw + diff
}

// Render implements Scene. The floor is drawn first so objects depth-test
// against it.
func (s *GameScene) Render(r *render.Renderer) {
	s.stats = render.DrawStats{}
	s.drawFloor(r)

	for _, obj := range s.objects() {
		if !obj.Visible {
			continue
		}
		obj.Renderer.Draw(r, obj == s.ground)
		s.stats = addStats(s.stats, obj.Renderer.Stats())
	}
}

func (s *GameScene) drawFloor(r *render.Renderer) {
	halfW := tilesX * tileSize * 0.5
	halfD := tilesZ * tileSize * 0.5

	for iz := range tilesZ {
		for ix := range tilesX {
			x0 := float64(ix)*tileSize - halfW
			z0 := float64(iz)*tileSize - halfD
			x1, z1 := x0+tileSize, z0+tileSize

			corners := [4]math3d.Vec3{
				math3d.V3(x0, 0, z0),
				math3d.V3(x1, 0, z0),
				math3d.V3(x1, 0, z1),
				math3d.V3(x0, 0, z1),
			}
			var screen [4]math3d.Vec3
			ok := true
			for i, c := range corners {
				sp, vp, projected := render.ProjectPoint(s.view, s.proj, c, s.width, s.height)
				if !projected || vp.Z > -s.near {
					ok = false
					break
				}
				screen[i] = sp
			}
			if !ok {
				continue
			}

			tri := [3]math3d.Vec3{screen[0], screen[1], screen[2]}
			if render.BackfaceCullAndFixWinding(&tri) {
				continue
			}

			color := tileDark
			if (ix+iz)&1 == 1 {
				color = tileLight
			}
			r.DrawTriangle(screen[0], screen[1], screen[2], color)
			r.DrawTriangle(screen[0], screen[2], screen[3], color)
			s.stats.Primitives += 2
		}
	}
}

// Stats implements Scene.
func (s *GameScene) Stats() render.DrawStats { return s.stats }
