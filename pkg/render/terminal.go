package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalScreen is a cell screen that can flush its contents, such as
// *uv.Terminal.
type TerminalScreen interface {
	uv.Screen
	Display() error
}

// TerminalDisplay shows frames on a terminal using half-block cells, so one
// terminal row carries two framebuffer rows.
type TerminalDisplay struct {
	Screen TerminalScreen
}

// FramebufferSize returns the framebuffer size that fills a terminal of the
// given cell dimensions.
func FramebufferSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Present implements Display.
func (d *TerminalDisplay) Present(fb *Framebuffer) error {
	DrawCells(fb, d.Screen, d.Screen.Bounds())
	return d.Screen.Display()
}

// DrawCells converts the framebuffer to terminal cells inside area.
// Each cell is ▀ with fg = top pixel and bg = bottom pixel.
func DrawCells(fb *Framebuffer, scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(col, topY)),
					Bg: cellColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor maps fully transparent pixels to the terminal default.
func cellColor(c Color) color.Color {
	if c.A() == 0 {
		return nil
	}
	return c
}
