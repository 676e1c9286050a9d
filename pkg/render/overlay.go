package render

import (
	"fmt"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// overlayFace is the bitmap font used for on-screen text.
var overlayFace = basicfont.Face7x13

// FPS box layout.
const (
	fpsX      = 8
	fpsY      = 8
	fpsScale  = 2
	fpsMargin = 4
)

// TextWidth returns the width in pixels of text drawn at scale.
func TextWidth(text string, scale int) int {
	return len([]rune(text)) * overlayFace.Advance * max(scale, 1)
}

// TextHeight returns the line height in pixels at scale.
func TextHeight(scale int) int {
	return (overlayFace.Ascent + overlayFace.Descent) * max(scale, 1)
}

// DrawText renders text with its top-left corner at (x, y). Every lit glyph
// pixel becomes a scale×scale rectangle, so text ignores depth.
func DrawText(r *Renderer, text string, x, y, scale int, c Color) {
	scale = max(scale, 1)
	dot := fixed.P(0, overlayFace.Ascent)

	for _, ch := range text {
		dr, mask, mp, adv, ok := overlayFace.Glyph(dot, ch)
		if !ok {
			dr, mask, mp, adv, ok = overlayFace.Glyph(dot, '?')
		}
		if ok {
			for gy := 0; gy < dr.Dy(); gy++ {
				for gx := 0; gx < dr.Dx(); gx++ {
					if _, _, _, a := mask.At(mp.X+gx, mp.Y+gy).RGBA(); a == 0 {
						continue
					}
					r.DrawRect(x+(dr.Min.X+gx)*scale, y+(dr.Min.Y+gy)*scale, scale, scale, c)
				}
			}
		}
		dot.X += adv
	}
}

// DrawCenteredMessage draws text centered on the buffer.
func DrawCenteredMessage(r *Renderer, text string, scale int, c Color) {
	x := (r.Width() - TextWidth(text, scale)) / 2
	y := (r.Height() - TextHeight(scale)) / 2
	DrawText(r, text, x, y, scale, c)
}

// DrawFPS draws a frames-per-second counter in a filled box at the top-left
// corner. dt is the last frame time in seconds.
func DrawFPS(r *Renderer, dt float64) {
	fps := 0
	if dt > 0 {
		fps = int(1/dt + 0.5)
	}
	text := fmt.Sprintf("FPS %d", fps)

	w := TextWidth(text, fpsScale) + 2*fpsMargin
	h := TextHeight(fpsScale) + 2*fpsMargin
	r.DrawRect(fpsX, fpsY, w, h, ColorCharcoal)
	DrawText(r, text, fpsX+fpsMargin, fpsY+fpsMargin, fpsScale, ColorYellow)
}
