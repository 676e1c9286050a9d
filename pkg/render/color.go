package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is a packed 0xAARRGGBB pixel. It implements image/color.Color so it
// can be handed directly to image and terminal APIs.
type Color uint32

// Colors for convenience
const (
	ColorBlack    Color = 0xFF000000
	ColorWhite    Color = 0xFFFFFFFF
	ColorRed      Color = 0xFFFF0000
	ColorGreen    Color = 0xFF00FF00
	ColorBlue     Color = 0xFF0000FF
	ColorYellow   Color = 0xFFFFFF00
	ColorGray     Color = 0xFF808080
	ColorDarkGray Color = 0xFF404040
	ColorCharcoal Color = 0xFF202020
	ColorSky      Color = 0xFF87CEEB
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xFF)
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// RGBA implements color.Color. The packed channels are stored straight
// and returned premultiplied by alpha, as the interface requires.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A())
	a |= a << 8
	r = uint32(c.R())
	r |= r << 8
	g = uint32(c.G())
	g |= g << 8
	b = uint32(c.B())
	b |= b << 8
	r = r * a / 0xFFFF
	g = g * a / 0xFFFF
	b = b * a / 0xFFFF
	return
}

// Scale multiplies the RGB channels by s, clamping to [0,255]. The result
// is opaque.
func (c Color) Scale(s float64) Color {
	return RGB(
		channel(float64(c.R())*s),
		channel(float64(c.G())*s),
		channel(float64(c.B())*s),
	)
}

// channel rounds to nearest and clamps to a byte.
func channel(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// ParseColor accepts "r,g,b" decimal triples or "#RRGGBB"/"#AARRGGBB" hex.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("parse color %q: %w", s, err)
		}
		switch len(hex) {
		case 6:
			return Color(0xFF000000 | uint32(v)), nil
		case 8:
			return Color(v), nil
		}
		return 0, fmt.Errorf("parse color %q: want 6 or 8 hex digits", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return 0, fmt.Errorf("parse color %q: %w", s, err)
	}
	return RGB(r, g, b), nil
}
