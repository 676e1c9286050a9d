package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/teapot/pkg/render"
)

// Most terminals never report key releases, so a key is considered held
// until this long after its last press or repeat.
const terminalKeyHold = 150 * time.Millisecond

// Approximate pixels per cell, so mouse drags feel like window motion.
const terminalCellPixels = 8

// terminalKeys maps key strings as ultraviolet matches them.
var terminalKeys = []struct {
	key   Key
	names []string
}{
	{KeyW, []string{"w"}},
	{KeyA, []string{"a"}},
	{KeyS, []string{"s"}},
	{KeyD, []string{"d"}},
	{KeyQ, []string{"q"}},
	{KeyE, []string{"e"}},
	{KeyR, []string{"r"}},
	{KeyF, []string{"f"}},
	{KeyUp, []string{"up"}},
	{KeyDown, []string{"down"}},
	{KeyLeft, []string{"left"}},
	{KeyRight, []string{"right"}},
	{KeySpace, []string{"space"}},
	{KeyTab, []string{"tab"}},
	{KeyEscape, []string{"escape"}},
}

func terminalKey(ev interface{ MatchString(...string) bool }) (Key, bool) {
	for _, tk := range terminalKeys {
		if ev.MatchString(tk.names...) {
			return tk.key, true
		}
	}
	return 0, false
}

// terminalInput folds ultraviolet events into an Input.
type terminalInput struct {
	in       Input
	lastSeen [keyCount]time.Time
	dragging bool
	resize   func(cols, rows int) error
}

func (t *terminalInput) handle(ev uv.Event, now time.Time) error {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		if t.resize != nil {
			return t.resize(ev.Width, ev.Height)
		}
	case uv.KeyPressEvent:
		if ev.MatchString("ctrl+c") {
			t.in.RequestQuit()
			return nil
		}
		if k, ok := terminalKey(ev); ok {
			t.in.SetKey(k, true)
			t.lastSeen[k] = now
		}
	case uv.KeyReleaseEvent:
		if k, ok := terminalKey(ev); ok {
			t.in.SetKey(k, false)
			t.lastSeen[k] = time.Time{}
		}
	case uv.MouseClickEvent:
		t.dragging = true
		t.in.ForgetMouse()
		t.in.MoveMouse(float64(ev.X*terminalCellPixels), float64(ev.Y*terminalCellPixels*2))
	case uv.MouseReleaseEvent:
		t.dragging = false
	case uv.MouseMotionEvent:
		if t.dragging {
			t.in.MoveMouse(float64(ev.X*terminalCellPixels), float64(ev.Y*terminalCellPixels*2))
		}
	}
	return nil
}

// expire releases keys that have not been refreshed within terminalKeyHold.
func (t *terminalInput) expire(now time.Time) {
	for k, seen := range t.lastSeen {
		if !seen.IsZero() && now.Sub(seen) > terminalKeyHold {
			t.in.SetKey(Key(k), false)
			t.lastSeen[k] = time.Time{}
		}
	}
}

// RunTerminal drives g on the controlling terminal at up to fps frames per
// second, drawing with half-block cells. It returns when the game quits,
// the user presses ctrl+c, or ctx is cancelled.
func RunTerminal(ctx context.Context, g Game, fps int) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Any-event mouse tracking in SGR mode.
	fmt.Fprint(os.Stdout, "\x1b[?1003h\x1b[?1006h")

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	g.SetDisplay(&render.TerminalDisplay{Screen: term})
	if err := g.Resize(render.FramebufferSize(width, height)); err != nil {
		return err
	}

	// Events arrive on their own goroutine; the frame loop drains them.
	events := make(chan uv.Event, 256)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ti := &terminalInput{
		resize: func(cols, rows int) error {
			term.Erase()
			term.Resize(cols, rows)
			return g.Resize(render.FramebufferSize(cols, rows))
		},
	}

	fps = max(fps, 1)
	targetDuration := time.Second / time.Duration(fps)
	clock := NewClock()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()
	drain:
		for {
			select {
			case ev := <-events:
				if err := ti.handle(ev, now); err != nil {
					return fmt.Errorf("resize: %w", err)
				}
			default:
				break drain
			}
		}
		ti.expire(now)

		err := g.Frame(&ti.in, clock.Tick())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		ti.in.EndFrame()

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
