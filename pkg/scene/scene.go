// Package scene holds the demo scenes: a spinning model and a small
// third-person game on a checkerboard floor.
package scene

import (
	"fmt"
	"strings"

	"github.com/taigrr/teapot/pkg/models"
	"github.com/taigrr/teapot/pkg/platform"
	"github.com/taigrr/teapot/pkg/render"
)

// Frame carries the per-frame inputs of Scene.Update.
type Frame struct {
	DT     float64 // seconds since the previous frame
	Input  *platform.Input
	Camera *render.Camera
	Width  int
	Height int
}

// Scene is one interactive view. Update runs before Render every frame.
type Scene interface {
	Update(f Frame)
	Render(r *render.Renderer)
	// Stats sums the draw counters of the scene's objects for the last
	// Render.
	Stats() render.DrawStats
}

// Kind names a scene.
type Kind int

const (
	KindTeapot Kind = iota
	KindGame
)

func (k Kind) String() string {
	switch k {
	case KindTeapot:
		return "teapot"
	case KindGame:
		return "game"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a scene name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "teapot", "":
		return KindTeapot, nil
	case "game":
		return KindGame, nil
	}
	return 0, fmt.Errorf("unknown scene %q (use teapot or game)", s)
}

// Options configure scene construction.
type Options struct {
	Tuning    render.Tuning
	Wireframe bool // initial wireframe state of the teapot scene
	FPS       int  // spring step rate
	// ShowGround draws the game scene's ground plane mesh as a wireframe
	// over the checkerboard.
	ShowGround bool
}

// New builds a scene of the given kind around mesh and places cam for it.
func New(kind Kind, mesh *models.Mesh, cam *render.Camera, opts Options) (Scene, error) {
	if mesh == nil {
		return nil, render.ErrNilMesh
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	switch kind {
	case KindTeapot:
		return NewTeapotScene(mesh, cam, opts)
	case KindGame:
		return NewGameScene(mesh, cam, opts)
	}
	return nil, fmt.Errorf("unknown scene kind %v", kind)
}

func addStats(a, b render.DrawStats) render.DrawStats {
	return render.DrawStats{
		Faces:           a.Faces + b.Faces,
		Invalid:         a.Invalid + b.Invalid,
		Culled:          a.Culled + b.Culled,
		TooSmall:        a.TooSmall + b.TooSmall,
		NearClipped:     a.NearClipped + b.NearClipped,
		Primitives:      a.Primitives + b.Primitives,
		BudgetExhausted: a.BudgetExhausted || b.BudgetExhausted,
	}
}
