// Package app runs the frame loop: input and time, scene update, scene
// render, overlay, present.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/taigrr/teapot/pkg/models"
	"github.com/taigrr/teapot/pkg/platform"
	"github.com/taigrr/teapot/pkg/render"
	"github.com/taigrr/teapot/pkg/scene"
)

// Options configure an App.
type Options struct {
	Width, Height int
	Scene         scene.Kind
	SceneOptions  scene.Options
	Winding       render.Winding
	Clear         render.Color
	ShowFPS       bool
}

// App owns the renderer, the camera and the current scene. It implements
// platform.Game.
type App struct {
	opts     Options
	renderer *render.Renderer
	display  render.Display
	camera   *render.Camera
	scene    scene.Scene
	mesh     *models.Mesh
	profiler *Profiler
	showFPS  bool

	// Scene name shown centered for a moment after switching.
	banner     string
	bannerLeft float64
}

// bannerSeconds is how long the scene name stays up after a switch.
const bannerSeconds = 1.5

// New creates the renderer and builds the starting scene around mesh.
func New(mesh *models.Mesh, opts Options) (*App, error) {
	r, err := render.NewRenderer(opts.Width, opts.Height, render.WithWinding(opts.Winding))
	if err != nil {
		return nil, err
	}

	t := opts.SceneOptions.Tuning
	cam := render.NewCamera(float64(opts.Width) / float64(opts.Height))
	cam.SetFOV(t.FOV)
	cam.SetClipPlanes(t.NearPlane, t.FarPlane)

	a := &App{
		opts:     opts,
		renderer: r,
		camera:   cam,
		mesh:     mesh,
		profiler: NewProfiler(render.Logger()),
		showFPS:  opts.ShowFPS,
	}
	if err := a.SetScene(opts.Scene); err != nil {
		return nil, err
	}
	return a, nil
}

// SetScene replaces the current scene with a new one of kind.
func (a *App) SetScene(kind scene.Kind) error {
	s, err := scene.New(kind, a.mesh, a.camera, a.opts.SceneOptions)
	if err != nil {
		return fmt.Errorf("create %s scene: %w", kind, err)
	}
	a.scene = s
	a.opts.Scene = kind
	render.Logger().Info("scene started", "scene", kind.String(), "faces", a.mesh.TriangleCount())
	return nil
}

func (a *App) switchScene(kind scene.Kind) error {
	if err := a.SetScene(kind); err != nil {
		return err
	}
	a.banner = strings.ToUpper(kind.String())
	a.bannerLeft = bannerSeconds
	return nil
}

// Scene returns the current scene.
func (a *App) Scene() scene.Scene { return a.scene }

// Renderer returns the renderer.
func (a *App) Renderer() *render.Renderer { return a.renderer }

// Camera returns the camera.
func (a *App) Camera() *render.Camera { return a.camera }

// Profiler returns the frame profiler.
func (a *App) Profiler() *Profiler { return a.profiler }

// SetDisplay implements platform.Game.
func (a *App) SetDisplay(d render.Display) {
	a.display = d
	a.renderer.SetDisplay(d)
}

// Resize implements platform.Game. The renderer is rebuilt at the new size
// and the camera aspect follows.
func (a *App) Resize(width, height int) error {
	if width == a.renderer.Width() && height == a.renderer.Height() {
		return nil
	}
	r, err := render.NewRenderer(width, height,
		render.WithWinding(a.opts.Winding), render.WithDisplay(a.display))
	if err != nil {
		return err
	}
	a.renderer = r
	a.camera.SetAspectRatio(float64(width) / float64(height))
	render.Logger().Debug("resized", "width", width, "height", height)
	return nil
}

// Frame implements platform.Game. A quit request ends the run, F toggles
// the FPS overlay, Q and E switch to the teapot and game scenes.
func (a *App) Frame(in *platform.Input, dt float64) error {
	if in.QuitRequested() {
		return platform.ErrQuit
	}
	if in.Pressed(platform.KeyF) {
		a.showFPS = !a.showFPS
	}
	switch {
	case in.Pressed(platform.KeyQ) && a.opts.Scene != scene.KindTeapot:
		if err := a.switchScene(scene.KindTeapot); err != nil {
			return err
		}
	case in.Pressed(platform.KeyE) && a.opts.Scene != scene.KindGame:
		if err := a.switchScene(scene.KindGame); err != nil {
			return err
		}
	}

	r := a.renderer
	start := time.Now()

	a.scene.Update(scene.Frame{
		DT:     dt,
		Input:  in,
		Camera: a.camera,
		Width:  r.Width(),
		Height: r.Height(),
	})
	r.Clear(a.opts.Clear)
	a.scene.Render(r)
	if a.bannerLeft > 0 {
		render.DrawCenteredMessage(r, a.banner, 2, render.ColorYellow)
		a.bannerLeft -= dt
	}
	if a.showFPS {
		render.DrawFPS(r, dt)
	}
	a.profiler.RecordDraw(time.Since(start))

	start = time.Now()
	if err := r.Present(); err != nil {
		return err
	}
	a.profiler.RecordPresent(time.Since(start))

	if a.profiler.FrameEnd() {
		st := a.scene.Stats()
		render.Logger().Debug("draw stats",
			"faces", st.Faces,
			"primitives", st.Primitives,
			"culled", st.Culled,
			"too_small", st.TooSmall,
			"near_clipped", st.NearClipped,
			"invalid", st.Invalid,
			"budget_exhausted", st.BudgetExhausted,
		)
	}
	return nil
}
