package platform

import (
	"context"
	"errors"

	"github.com/taigrr/teapot/pkg/render"
)

// Game is what a runner drives: one Frame per tick, with the input gathered
// since the previous one.
type Game interface {
	// SetDisplay installs the surface frames are presented to.
	SetDisplay(d render.Display)
	// Resize changes the framebuffer size in pixels.
	Resize(width, height int) error
	// Frame advances and draws one frame. Returning ErrQuit stops the
	// runner without error.
	Frame(in *Input, dt float64) error
}

// RunHeadless steps g frames times with a fixed dt and no input. The
// display must already be installed. frames <= 0 runs until ctx is done or
// the game quits.
func RunHeadless(ctx context.Context, g Game, frames int, dt float64) error {
	var in Input
	clock := &Clock{}
	for i := 0; frames <= 0 || i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil
		}
		err := g.Frame(&in, clock.Step(dt))
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		in.EndFrame()
	}
	return nil
}
