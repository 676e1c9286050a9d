// Package render implements a CPU rasterizer: a color and depth buffer with
// triangle, line and rectangle primitives, the projection and culling helpers
// that feed it, and a per-mesh render state that caches projected geometry.
package render

import (
	"errors"
	"fmt"
	"math"
)

// maxPixels bounds the buffer allocation.
const maxPixels = 1 << 26

// ErrInvalidSize is returned when a renderer is requested with dimensions
// that cannot be allocated.
var ErrInvalidSize = errors.New("render: invalid buffer size")

// Winding selects which vertex order the renderer treats as canonical.
// Clockwise renderers swap the second and third vertex of every triangle
// before rasterizing.
type Winding int

const (
	CounterClockwise Winding = iota
	Clockwise
)

func (w Winding) String() string {
	if w == Clockwise {
		return "cw"
	}
	return "ccw"
}

// ParseWinding accepts "ccw"/"counterclockwise" and "cw"/"clockwise".
func ParseWinding(s string) (Winding, error) {
	switch s {
	case "", "ccw", "counterclockwise":
		return CounterClockwise, nil
	case "cw", "clockwise":
		return Clockwise, nil
	}
	return 0, fmt.Errorf("unknown winding %q", s)
}

// Display receives finished frames.
type Display interface {
	Present(fb *Framebuffer) error
}

// Renderer owns a color buffer and a depth buffer of identical dimensions.
// Buffers are allocated once and never resized.
type Renderer struct {
	fb      *Framebuffer
	depth   []float64
	winding Winding
	display Display
}

// Option configures a Renderer at construction.
type Option func(*Renderer)

// WithWinding sets the canonical vertex order. The default is
// CounterClockwise.
func WithWinding(w Winding) Option {
	return func(r *Renderer) { r.winding = w }
}

// WithDisplay sets the surface Present hands frames to.
func WithDisplay(d Display) Option {
	return func(r *Renderer) { r.display = d }
}

// NewRenderer allocates a renderer of the given size.
func NewRenderer(width, height int, opts ...Option) (*Renderer, error) {
	if width <= 0 || height <= 0 || width > maxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	r := &Renderer{
		fb:    NewFramebuffer(width, height),
		depth: make([]float64, width*height),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Clear(ColorBlack)
	Logger().Debug("renderer created", "width", width, "height", height)
	return r, nil
}

// Width returns the buffer width.
func (r *Renderer) Width() int { return r.fb.Width }

// Height returns the buffer height.
func (r *Renderer) Height() int { return r.fb.Height }

// Framebuffer returns the color buffer.
func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }

// Winding returns the configured winding order.
func (r *Renderer) Winding() Winding { return r.winding }

// SetDisplay replaces the surface that Present hands frames to.
func (r *Renderer) SetDisplay(d Display) { r.display = d }

// PixelAt returns the color at (x, y), or 0 when out of bounds.
func (r *Renderer) PixelAt(x, y int) Color { return r.fb.GetPixel(x, y) }

// DepthAt returns the depth at (x, y), or +Inf when out of bounds.
func (r *Renderer) DepthAt(x, y int) float64 {
	if x < 0 || x >= r.fb.Width || y < 0 || y >= r.fb.Height {
		return math.Inf(1)
	}
	return r.depth[y*r.fb.Width+x]
}

// Clear fills the color buffer with c and resets every depth to +Inf.
func (r *Renderer) Clear(c Color) {
	r.fb.Clear(c)
	n := len(r.depth)
	if n == 0 {
		return
	}
	r.depth[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(r.depth[i:], r.depth[:i])
	}
}

// DrawRect fills an axis-aligned rectangle clipped to the buffer. It does
// not test or write depth.
func (r *Renderer) DrawRect(x, y, w, h int, c Color) {
	r.fb.FillRect(x, y, w, h, c)
}

// Present hands the color buffer to the display. Without a display it is a
// no-op.
func (r *Renderer) Present() error {
	if r.display == nil {
		return nil
	}
	if err := r.display.Present(r.fb); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}
