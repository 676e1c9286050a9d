package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// Framebuffer is a row-major grid of packed 0xAARRGGBB pixels. Pixel
// (x, y) lives at Pixels[y*Width+x].
type Framebuffer struct {
	Width, Height int
	Pixels        []Color
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{width, height, make([]Color, width*height)}
}

func (fb *Framebuffer) inside(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// Clear floods every pixel with c, doubling the filled prefix each pass.
func (fb *Framebuffer) Clear(c Color) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// SetPixel ignores coordinates outside the buffer.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if fb.inside(x, y) {
		fb.Pixels[y*fb.Width+x] = c
	}
}

// GetPixel reads 0 (transparent black) outside the buffer.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if !fb.inside(x, y) {
		return 0
	}
	return fb.Pixels[y*fb.Width+x]
}

// FillRect paints the part of the w×h rectangle at (x, y) that overlaps
// the buffer.
func (fb *Framebuffer) FillRect(x, y, w, h int, c Color) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, fb.Width), min(y+h, fb.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	for py := y0; py < y1; py++ {
		start := py * fb.Width
		for i := start + x0; i < start+x1; i++ {
			fb.Pixels[i] = c
		}
	}
}

// ToImage copies the pixels into a non-premultiplied RGBA image.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, c := range fb.Pixels {
		copy(img.Pix[i*4:i*4+4], []byte{c.R(), c.G(), c.B(), c.A()})
	}
	return img
}

// SavePNG writes the frame to path, replacing any existing file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
