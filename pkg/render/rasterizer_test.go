package render

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/taigrr/teapot/pkg/math3d"
)

const background = ColorBlack

func newTestRenderer(t testing.TB, width, height int) *Renderer {
	t.Helper()
	r, err := NewRenderer(width, height)
	if err != nil {
		t.Fatalf("NewRenderer(%d, %d): %v", width, height, err)
	}
	r.Clear(background)
	return r
}

func countPixels(r *Renderer, c Color) int {
	n := 0
	for _, p := range r.Framebuffer().Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestNewRendererInvalidSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -4, 4},
		{"too large", 1 << 20, 1 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRenderer(tt.width, tt.height)
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("got %v, want ErrInvalidSize", err)
			}
		})
	}
}

func TestClear(t *testing.T) {
	r := newTestRenderer(t, 8, 4)
	r.DrawTriangle(math3d.V3(0, 0, 0.5), math3d.V3(8, 0, 0.5), math3d.V3(0, 4, 0.5), ColorRed)
	r.Clear(ColorBlue)

	if got := countPixels(r, ColorBlue); got != 32 {
		t.Errorf("blue pixels = %d, want 32", got)
	}
	for y := range 4 {
		for x := range 8 {
			if d := r.DepthAt(x, y); !math.IsInf(d, 1) {
				t.Fatalf("depth at (%d,%d) = %v, want +Inf", x, y, d)
			}
		}
	}
}

func TestDrawTriangleCoverage(t *testing.T) {
	tests := []struct {
		name       string
		v0, v1, v2 math3d.Vec3
		want       int
	}{
		// Pixel centers with x+y+1 <= 10.
		{"ccw right triangle", math3d.V3(0, 0, 0.5), math3d.V3(10, 0, 0.5), math3d.V3(0, 10, 0.5), 55},
		{"cw right triangle", math3d.V3(0, 0, 0.5), math3d.V3(0, 10, 0.5), math3d.V3(10, 0, 0.5), 55},
		{"full quad half", math3d.V3(0, 0, 0.5), math3d.V3(20, 0, 0.5), math3d.V3(0, 20, 0.5), 210},
		{"degenerate", math3d.V3(0, 0, 0.5), math3d.V3(5, 5, 0.5), math3d.V3(10, 10, 0.5), 0},
		{"offscreen", math3d.V3(-30, -30, 0.5), math3d.V3(-20, -30, 0.5), math3d.V3(-30, -20, 0.5), 0},
		{"far offscreen", math3d.V3(1e20, 1e20, 0.5), math3d.V3(2e20, 1e20, 0.5), math3d.V3(1e20, 2e20, 0.5), 0},
		{"huge cover", math3d.V3(-1e20, -1e20, 0.5), math3d.V3(1e20, -1e20, 0.5), math3d.V3(-1e20, 1e20, 0.5), 400},
		{"non-finite", math3d.V3(0, 0, 0.5), math3d.V3(math.Inf(1), 0, 0.5), math3d.V3(0, 10, 0.5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(t, 20, 20)
			r.DrawTriangle(tt.v0, tt.v1, tt.v2, ColorRed)
			if got := countPixels(r, ColorRed); got != tt.want {
				t.Errorf("covered pixels = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDrawTriangleApproachesArea(t *testing.T) {
	r := newTestRenderer(t, 200, 200)
	v0, v1, v2 := math3d.V3(13.2, 7.9, 0.5), math3d.V3(180.4, 40.1, 0.5), math3d.V3(60.7, 170.3, 0.5)
	r.DrawTriangle(v0, v1, v2, ColorRed)

	area := math.Abs(SignedArea(v0, v1, v2)) / 2
	got := float64(countPixels(r, ColorRed))
	if math.Abs(got-area)/area > 0.03 {
		t.Errorf("covered %v pixels, analytic area %v", got, area)
	}
}

func TestSharedEdgeHasNoGaps(t *testing.T) {
	r := newTestRenderer(t, 10, 10)
	r.DrawTriangle(math3d.V3(0, 0, 0.5), math3d.V3(10, 0, 0.5), math3d.V3(0, 10, 0.5), ColorRed)
	r.DrawTriangle(math3d.V3(10, 0, 0.5), math3d.V3(10, 10, 0.5), math3d.V3(0, 10, 0.5), ColorGreen)

	if got := countPixels(r, background); got != 0 {
		t.Errorf("%d pixels left uncovered", got)
	}
}

func TestRedrawIsIdempotent(t *testing.T) {
	r := newTestRenderer(t, 32, 32)
	v0, v1, v2 := math3d.V3(2, 3, 0.3), math3d.V3(29, 8, 0.6), math3d.V3(11, 30, 0.4)

	r.DrawTriangle(v0, v1, v2, ColorRed)
	pixels := slices.Clone(r.Framebuffer().Pixels)
	depth := slices.Clone(r.depth)

	r.DrawTriangle(v0, v1, v2, ColorRed)
	if !slices.Equal(pixels, r.Framebuffer().Pixels) {
		t.Error("color buffer changed on redraw")
	}
	if !slices.Equal(depth, r.depth) {
		t.Error("depth buffer changed on redraw")
	}
}

func TestDepthTest(t *testing.T) {
	near := [3]math3d.Vec3{math3d.V3(0, 0, 0.2), math3d.V3(10, 0, 0.2), math3d.V3(0, 10, 0.2)}
	far := [3]math3d.Vec3{math3d.V3(0, 0, 0.8), math3d.V3(10, 0, 0.8), math3d.V3(0, 10, 0.8)}

	tests := []struct {
		name      string
		nearFirst bool
	}{
		{"near first", true},
		{"far first", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(t, 10, 10)
			if tt.nearFirst {
				r.DrawTriangle(near[0], near[1], near[2], ColorRed)
				r.DrawTriangle(far[0], far[1], far[2], ColorBlue)
			} else {
				r.DrawTriangle(far[0], far[1], far[2], ColorBlue)
				r.DrawTriangle(near[0], near[1], near[2], ColorRed)
			}

			if got := r.PixelAt(1, 1); got != ColorRed {
				t.Errorf("pixel = %#x, want near triangle color %#x", uint32(got), uint32(ColorRed))
			}
			if got := r.DepthAt(1, 1); math.Abs(got-0.2) > 1e-9 {
				t.Errorf("depth = %v, want 0.2", got)
			}
		})
	}
}

func TestWinding(t *testing.T) {
	for _, w := range []Winding{CounterClockwise, Clockwise} {
		t.Run(w.String(), func(t *testing.T) {
			r, err := NewRenderer(20, 20, WithWinding(w))
			if err != nil {
				t.Fatal(err)
			}
			if r.Winding() != w {
				t.Fatalf("Winding() = %v, want %v", r.Winding(), w)
			}
			r.DrawTriangle(math3d.V3(0, 0, 0.5), math3d.V3(10, 0, 0.5), math3d.V3(0, 10, 0.5), ColorRed)
			if got := countPixels(r, ColorRed); got != 55 {
				t.Errorf("covered = %d, want 55", got)
			}
		})
	}

	for _, s := range []string{"cw", "clockwise"} {
		if w, err := ParseWinding(s); err != nil || w != Clockwise {
			t.Errorf("ParseWinding(%q) = %v, %v", s, w, err)
		}
	}
	if _, err := ParseWinding("sideways"); err == nil {
		t.Error("ParseWinding accepted an unknown value")
	}
}

func TestDrawTriangleShaded(t *testing.T) {
	r := newTestRenderer(t, 20, 20)
	c := RGB(100, 150, 200)
	r.DrawTriangleShaded(math3d.V3(0, 0, 0.5), math3d.V3(20, 0, 0.5), math3d.V3(0, 20, 0.5), c, c, c)
	if got := countPixels(r, c); got != 210 {
		t.Errorf("uniform shaded pixels = %d, want 210", got)
	}

	r.Clear(background)
	r.DrawTriangleShaded(math3d.V3(0, 0, 0.5), math3d.V3(20, 0, 0.5), math3d.V3(0, 20, 0.5), ColorRed, ColorGreen, ColorBlue)
	// Near v0 red dominates, near v1 green dominates.
	if p := r.PixelAt(0, 0); p.R() < 200 || p.A() != 0xFF {
		t.Errorf("pixel near red vertex = %#x", uint32(p))
	}
	if p := r.PixelAt(18, 0); p.G() < 200 {
		t.Errorf("pixel near green vertex = %#x", uint32(p))
	}
}

func TestChannelRoundsAndClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-3, 0},
		{0.49, 0},
		{127.5, 128},
		{254.6, 255},
		{300, 255},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := channel(tt.in); got != tt.want {
			t.Errorf("channel(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDrawLine(t *testing.T) {
	r := newTestRenderer(t, 10, 10)
	r.DrawLine(math3d.V3(2, 5, 0.5), math3d.V3(7, 5, 0.5), ColorWhite)
	if got := countPixels(r, ColorWhite); got != 6 {
		t.Errorf("horizontal line pixels = %d, want 6", got)
	}

	r.Clear(background)
	r.DrawLine(math3d.V3(0, 0, 0), math3d.V3(4, 0, 1), ColorWhite)
	if got := r.DepthAt(2, 0); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("midpoint depth = %v, want 0.5", got)
	}

	// Endpoints outside the buffer are clamped.
	r.Clear(background)
	r.DrawLine(math3d.V3(-50, 3, 0.5), math3d.V3(50, 3, 0.5), ColorWhite)
	if got := countPixels(r, ColorWhite); got != 10 {
		t.Errorf("clamped line pixels = %d, want 10", got)
	}
}

func TestDrawLineDepthTested(t *testing.T) {
	r := newTestRenderer(t, 10, 10)
	r.DrawTriangle(math3d.V3(0, 0, 0.2), math3d.V3(10, 0, 0.2), math3d.V3(0, 10, 0.2), ColorRed)
	r.DrawLine(math3d.V3(0, 1, 0.9), math3d.V3(5, 1, 0.9), ColorWhite)

	if got := countPixels(r, ColorWhite); got != 0 {
		t.Errorf("line behind triangle drew %d pixels", got)
	}
}

func TestDrawRect(t *testing.T) {
	r := newTestRenderer(t, 20, 20)
	r.DrawRect(-5, -5, 10, 10, ColorGreen)
	if got := countPixels(r, ColorGreen); got != 25 {
		t.Errorf("clipped rect pixels = %d, want 25", got)
	}
	if d := r.DepthAt(0, 0); !math.IsInf(d, 1) {
		t.Errorf("rect wrote depth %v", d)
	}

	r.DrawRect(18, 18, -4, 3, ColorRed)
	r.DrawRect(25, 25, 4, 4, ColorRed)
	if got := countPixels(r, ColorRed); got != 0 {
		t.Errorf("empty rects drew %d pixels", got)
	}
}

type recordingDisplay struct {
	frames int
	err    error
}

func (d *recordingDisplay) Present(*Framebuffer) error {
	d.frames++
	return d.err
}

func TestPresent(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	if err := r.Present(); err != nil {
		t.Fatalf("Present without display: %v", err)
	}

	d := &recordingDisplay{}
	r.SetDisplay(d)
	if err := r.Present(); err != nil || d.frames != 1 {
		t.Fatalf("Present = %v, frames = %d", err, d.frames)
	}

	boom := errors.New("boom")
	d.err = boom
	if err := r.Present(); !errors.Is(err, boom) {
		t.Errorf("Present error = %v, want wrapped boom", err)
	}
}

func BenchmarkDrawTriangle(b *testing.B) {
	r := newTestRenderer(b, 320, 240)
	v0, v1, v2 := math3d.V3(10, 10, 0.5), math3d.V3(300, 40, 0.5), math3d.V3(120, 230, 0.5)

	for b.Loop() {
		r.Clear(background)
		r.DrawTriangle(v0, v1, v2, ColorRed)
	}
}

func BenchmarkDrawTriangleShaded(b *testing.B) {
	r := newTestRenderer(b, 320, 240)
	v0, v1, v2 := math3d.V3(10, 10, 0.5), math3d.V3(300, 40, 0.5), math3d.V3(120, 230, 0.5)

	for b.Loop() {
		r.Clear(background)
		r.DrawTriangleShaded(v0, v1, v2, ColorRed, ColorGreen, ColorBlue)
	}
}
