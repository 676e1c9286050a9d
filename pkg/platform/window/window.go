// Package window presents frames in a desktop window and feeds keyboard and
// mouse input back to the game.
package window

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/teapot/pkg/platform"
	"github.com/taigrr/teapot/pkg/render"
)

var ebitenKeys = map[platform.Key]ebiten.Key{
	platform.KeyW:      ebiten.KeyW,
	platform.KeyA:      ebiten.KeyA,
	platform.KeyS:      ebiten.KeyS,
	platform.KeyD:      ebiten.KeyD,
	platform.KeyQ:      ebiten.KeyQ,
	platform.KeyE:      ebiten.KeyE,
	platform.KeyR:      ebiten.KeyR,
	platform.KeyF:      ebiten.KeyF,
	platform.KeyUp:     ebiten.KeyArrowUp,
	platform.KeyDown:   ebiten.KeyArrowDown,
	platform.KeyLeft:   ebiten.KeyArrowLeft,
	platform.KeyRight:  ebiten.KeyArrowRight,
	platform.KeySpace:  ebiten.KeySpace,
	platform.KeyTab:    ebiten.KeyTab,
	platform.KeyEscape: ebiten.KeyEscape,
}

// Window runs a game in a fixed-size window. It is also the game's
// display: Present copies the framebuffer and Draw uploads it.
type Window struct {
	game   platform.Game
	width  int
	height int
	title  string
	tps    int
	scale  int

	in     platform.Input
	pixels []byte
	err    error
}

// New creates a window for a width×height framebuffer shown at scale.
func New(g platform.Game, width, height int, title string, fps, scale int) *Window {
	return &Window{
		game:   g,
		width:  width,
		height: height,
		title:  title,
		tps:    max(fps, 1),
		scale:  max(scale, 1),
		pixels: make([]byte, 4*width*height),
	}
}

// Run opens the window and blocks until it closes or the game quits.
func (w *Window) Run() error {
	w.game.SetDisplay(w)
	if err := w.game.Resize(w.width, w.height); err != nil {
		return err
	}

	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(w.width*w.scale, w.height*w.scale)
	ebiten.SetTPS(w.tps)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return w.err
	}
	return err
}

// Present implements render.Display.
func (w *Window) Present(fb *render.Framebuffer) error {
	if fb.Width != w.width || fb.Height != w.height {
		return fmt.Errorf("framebuffer %dx%d does not match window %dx%d", fb.Width, fb.Height, w.width, w.height)
	}
	for i, c := range fb.Pixels {
		j := i * 4
		w.pixels[j+0] = c.R()
		w.pixels[j+1] = c.G()
		w.pixels[j+2] = c.B()
		w.pixels[j+3] = 0xFF
	}
	return nil
}

func (w *Window) poll() {
	for k, ek := range ebitenKeys {
		switch {
		case inpututil.IsKeyJustPressed(ek):
			w.in.SetKey(k, true)
		case inpututil.IsKeyJustReleased(ek):
			w.in.SetKey(k, false)
		}
	}
	x, y := ebiten.CursorPosition()
	w.in.MoveMouse(float64(x), float64(y))
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	w.poll()
	err := w.game.Frame(&w.in, 1/float64(ebiten.TPS()))
	w.in.EndFrame()
	if errors.Is(err, platform.ErrQuit) {
		return ebiten.Termination
	}
	if err != nil {
		w.err = err
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.WritePixels(w.pixels)
}

// Layout implements ebiten.Game. The framebuffer size is fixed; ebiten
// scales it to the window.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}
