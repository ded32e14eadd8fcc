// Package render draws wireframe views of oriented meshes into a pixel
// framebuffer and presents it on a terminal screen or as a PNG.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Framebuffer is a 2D array of pixels that can be rendered to the terminal.
// We use double vertical resolution by using half-block characters (▀▄).
type Framebuffer struct {
	Width  int          // Width in "pixels" (same as terminal columns)
	Height int          // Height in "pixels" (2x terminal rows due to half-blocks)
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// Height should be 2x the desired terminal rows for half-block rendering.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	if len(fb.Pixels) == 0 {
		return
	}
	fb.Pixels[0] = c
	// Double the filled prefix each pass.
	for n := 1; n < len(fb.Pixels); n *= 2 {
		copy(fb.Pixels[n:], fb.Pixels[:n])
	}
}

func (fb *Framebuffer) inside(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel sets a pixel at (x, y). Pixels outside the framebuffer are
// ignored.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if fb.inside(x, y) {
		fb.Pixels[y*fb.Width+x] = c
	}
}

// GetPixel returns the color at (x, y), or transparent black outside the
// framebuffer.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if !fb.inside(x, y) {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// Outcodes for clipLine.
const (
	outLeft = 1 << iota
	outRight
	outTop
	outBottom
)

func (fb *Framebuffer) outcode(x, y float64) int {
	code := 0
	switch {
	case x < 0:
		code |= outLeft
	case x > float64(fb.Width-1):
		code |= outRight
	}
	switch {
	case y < 0:
		code |= outTop
	case y > float64(fb.Height-1):
		code |= outBottom
	}
	return code
}

// clipLine trims the segment to the framebuffer (Cohen-Sutherland). ok is
// false when no part of it is inside.
func (fb *Framebuffer) clipLine(x0, y0, x1, y1 float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	maxX, maxY := float64(fb.Width-1), float64(fb.Height-1)
	c0, c1 := fb.outcode(x0, y0), fb.outcode(x1, y1)

	for {
		switch {
		case c0|c1 == 0:
			return x0, y0, x1, y1, true
		case c0&c1 != 0:
			return 0, 0, 0, 0, false
		}

		out := c0
		if out == 0 {
			out = c1
		}

		var x, y float64
		switch {
		case out&outBottom != 0:
			x, y = x0+(x1-x0)*(maxY-y0)/(y1-y0), maxY
		case out&outTop != 0:
			x, y = x0+(x1-x0)*(0-y0)/(y1-y0), 0
		case out&outRight != 0:
			x, y = maxX, y0+(y1-y0)*(maxX-x0)/(x1-x0)
		default:
			x, y = 0, y0+(y1-y0)*(0-x0)/(x1-x0)
		}

		if out == c0 {
			x0, y0, c0 = x, y, fb.outcode(x, y)
		} else {
			x1, y1, c1 = x, y, fb.outcode(x, y)
		}
	}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Endpoints may lie outside the framebuffer; only the visible
// part is walked.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	fx0, fy0, fx1, fy1, ok := fb.clipLine(float64(x0), float64(y0), float64(x1), float64(y1))
	if !ok {
		return
	}
	x0, y0 = int(math.Round(fx0)), int(math.Round(fy0))
	x1, y1 = int(math.Round(fx1)), int(math.Round(fy1))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, p := range fb.Pixels {
		px := img.Pix[i*4 : i*4+4 : i*4+4]
		px[0], px[1], px[2], px[3] = p.R, p.G, p.B, p.A
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, fb.ToImage()); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
