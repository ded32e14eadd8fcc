package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the internal framebuffer to terminal cells and draws them on
// the screen.
// The framebuffer height should be 2x the terminal height.
func (r *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < r.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(r.GetPixel(col, topY)),
					Bg: rgbaToColor(r.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// DrawText writes text on row y starting at column x, one cell per rune.
// Runes past the right edge of the screen are dropped. A nil bg leaves the
// terminal background.
func DrawText(scr uv.Screen, x, y int, text string, fg, bg color.Color) {
	bounds := scr.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}

	style := uv.Style{Fg: fg, Bg: bg}
	for _, r := range text {
		if x >= bounds.Max.X {
			return
		}
		if x >= bounds.Min.X {
			scr.SetCell(x, y, &uv.Cell{Content: string(r), Width: 1, Style: style})
		}
		x++
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack  = color.RGBA{0, 0, 0, 255}
	ColorWhite  = color.RGBA{255, 255, 255, 255}
	ColorRed    = color.RGBA{255, 0, 0, 255}
	ColorGreen  = color.RGBA{0, 255, 0, 255}
	ColorBlue   = color.RGBA{0, 0, 255, 255}
	ColorYellow = color.RGBA{255, 255, 0, 255}
	ColorGray   = color.RGBA{128, 128, 128, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}
