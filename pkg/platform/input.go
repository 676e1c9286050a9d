// Package platform supplies the per-frame collaborators of the render loop:
// keyboard and mouse state, a frame clock, and the terminal and headless
// runners that drive a Game.
package platform

import "errors"

// ErrQuit is returned by Game.Frame to stop the runner cleanly.
var ErrQuit = errors.New("platform: quit requested")

// Key identifies a keyboard key the scenes react to.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyR
	KeyF
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyTab
	KeyEscape
	keyCount
)

var keyNames = [keyCount]string{
	KeyW:      "w",
	KeyA:      "a",
	KeyS:      "s",
	KeyD:      "d",
	KeyQ:      "q",
	KeyE:      "e",
	KeyR:      "r",
	KeyF:      "f",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeySpace:  "space",
	KeyTab:    "tab",
	KeyEscape: "escape",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Keys returns every key the input tracks.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Input holds keyboard and mouse state for one frame. Down reports held
// keys; Pressed and Released report edges since the last EndFrame.
type Input struct {
	down     [keyCount]bool
	pressed  [keyCount]bool
	released [keyCount]bool

	mouseX, mouseY   float64
	mouseDX, mouseDY float64
	mouseKnown       bool

	quit bool
}

// SetKey records a key transition. Pressing Escape also requests quit.
func (in *Input) SetKey(k Key, down bool) {
	if k < 0 || k >= keyCount {
		return
	}
	switch {
	case down && !in.down[k]:
		in.pressed[k] = true
		if k == KeyEscape {
			in.quit = true
		}
	case !down && in.down[k]:
		in.released[k] = true
	}
	in.down[k] = down
}

// Down reports whether k is held.
func (in *Input) Down(k Key) bool {
	return k >= 0 && k < keyCount && in.down[k]
}

// Pressed reports whether k went down this frame.
func (in *Input) Pressed(k Key) bool {
	return k >= 0 && k < keyCount && in.pressed[k]
}

// Released reports whether k went up this frame.
func (in *Input) Released(k Key) bool {
	return k >= 0 && k < keyCount && in.released[k]
}

// MoveMouse records an absolute cursor position. The first position only
// establishes the origin for later deltas.
func (in *Input) MoveMouse(x, y float64) {
	if in.mouseKnown {
		in.mouseDX += x - in.mouseX
		in.mouseDY += y - in.mouseY
	}
	in.mouseX, in.mouseY = x, y
	in.mouseKnown = true
}

// AddMouseDelta records relative mouse motion.
func (in *Input) AddMouseDelta(dx, dy float64) {
	in.mouseDX += dx
	in.mouseDY += dy
}

// ForgetMouse drops the cursor origin so the next MoveMouse yields no delta.
func (in *Input) ForgetMouse() {
	in.mouseKnown = false
}

// MousePosition returns the last cursor position.
func (in *Input) MousePosition() (x, y float64) {
	return in.mouseX, in.mouseY
}

// MouseDelta returns the motion accumulated this frame. Positive dy is
// downward on screen.
func (in *Input) MouseDelta() (dx, dy float64) {
	return in.mouseDX, in.mouseDY
}

// RequestQuit marks the input as wanting to exit.
func (in *Input) RequestQuit() { in.quit = true }

// QuitRequested reports whether quit was requested.
func (in *Input) QuitRequested() bool { return in.quit }

// EndFrame clears edges and mouse deltas. Held keys persist.
func (in *Input) EndFrame() {
	in.pressed = [keyCount]bool{}
	in.released = [keyCount]bool{}
	in.mouseDX, in.mouseDY = 0, 0
}
