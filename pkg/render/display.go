package render

import (
	"fmt"
	"strings"
)

// PNGDisplay writes presented frames to PNG files. When Path contains a
// printf verb (for example "frame-%04d.png") every frame gets its own file
// numbered from zero; otherwise each frame overwrites the previous one.
type PNGDisplay struct {
	Path string

	frames int
}

// Present implements Display.
func (d *PNGDisplay) Present(fb *Framebuffer) error {
	path := d.Path
	if strings.Contains(path, "%") {
		path = fmt.Sprintf(path, d.frames)
	}
	d.frames++
	return fb.SavePNG(path)
}

// Frames returns the number of frames written.
func (d *PNGDisplay) Frames() int { return d.frames }
