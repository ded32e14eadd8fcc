package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/chewxy/math32"
	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/models"
	"github.com/taigrr/orient/pkg/quat"
)

func vecNear(a, b math3d.Vec3, tol float32) bool {
	return math32.Abs(a.X-b.X) <= tol &&
		math32.Abs(a.Y-b.Y) <= tol &&
		math32.Abs(a.Z-b.Z) <= tol
}

// createTestWireframe creates a square view looking at the origin from +Z.
func createTestWireframe(size int) (*Wireframe, *Framebuffer) {
	fb := NewFramebuffer(size, size)
	camera := NewCamera()
	camera.SetAspectRatio(1)
	camera.LookAt(math3d.Zero3(), math3d.UnitY())
	return NewWireframe(camera, fb), fb
}

func countPixels(fb *Framebuffer, c Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestCameraLookAt(t *testing.T) {
	tests := []struct {
		name    string
		pos     math3d.Vec3
		forward math3d.Vec3
	}{
		{"from +Z", math3d.V3(0, 0, 5), math3d.V3(0, 0, -1)},
		{"from +X", math3d.V3(5, 0, 0), math3d.V3(-1, 0, 0)},
		{"from below", math3d.V3(1, -3, 2), math3d.V3(-1, 3, -2).Normalize()},
		{"straight down", math3d.V3(0, 5, 0), math3d.V3(0, -1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewCamera()
			cam.SetAspectRatio(1)
			cam.SetPosition(tc.pos)
			cam.LookAt(math3d.Zero3(), math3d.UnitY())

			if got := cam.Forward(); !vecNear(got, tc.forward, 1e-5) {
				t.Errorf("Forward() = %v, want %v", got, tc.forward)
			}
			if d := cam.Right().Dot(cam.Up()); math32.Abs(d) > 1e-5 {
				t.Errorf("Right·Up = %v, want 0", d)
			}

			x, y, _, vis := cam.WorldToScreen(math3d.Zero3(), 100, 100)
			if !vis {
				t.Fatal("target not visible")
			}
			if math32.Abs(x-50) > 1e-3 || math32.Abs(y-50) > 1e-3 {
				t.Errorf("target at (%v, %v), want (50, 50)", x, y)
			}
		})
	}
}

func TestCameraDefaultIsIdentity(t *testing.T) {
	cam := NewCamera()
	cam.LookAt(math3d.Zero3(), math3d.UnitY())

	if !cam.Orientation.SameRotation(quat.Identity(), 1e-6) {
		t.Errorf("Orientation = %v, want identity", cam.Orientation)
	}
}

func TestCameraBehind(t *testing.T) {
	cam := NewCamera()
	cam.LookAt(math3d.Zero3(), math3d.UnitY())

	if _, _, _, vis := cam.WorldToScreen(math3d.V3(0, 0, 10), 100, 100); vis {
		t.Error("point behind the camera reported visible")
	}
}

func TestCameraOrbit(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(1)
	cam.LookAt(math3d.Zero3(), math3d.UnitY())
	cam.Orbit(quat.FromAngleAxis(math32.Pi/2, math3d.UnitY()))

	if !vecNear(cam.Position, math3d.V3(5, 0, 0), 1e-5) {
		t.Errorf("Position = %v, want (5, 0, 0)", cam.Position)
	}

	x, y, _, vis := cam.WorldToScreen(math3d.Zero3(), 100, 100)
	if !vis || math32.Abs(x-50) > 1e-3 || math32.Abs(y-50) > 1e-3 {
		t.Errorf("origin at (%v, %v) visible=%v, want centre", x, y, vis)
	}
}

func TestCameraCacheAfterPartialRefresh(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(1)
	cam.LookAt(math3d.Zero3(), math3d.UnitY())
	x0, _, _, _ := cam.WorldToScreen(math3d.V3(1, 0, 0), 100, 100)

	// Refreshing one matrix on its own must not hide the change from the
	// combined one.
	cam.SetPosition(math3d.V3(1, 0, 5))
	_ = cam.ViewMatrix()
	if x, _, _, _ := cam.WorldToScreen(math3d.V3(1, 0, 0), 100, 100); math32.Abs(x-50) > 1e-3 {
		t.Errorf("after SetPosition x = %v, want 50", x)
	}

	cam.SetPosition(math3d.V3(0, 0, 5))
	_ = cam.ViewProjectionMatrix()
	cam.SetFOV(math32.Pi / 6)
	_ = cam.ProjectionMatrix()
	x, _, _, _ := cam.WorldToScreen(math3d.V3(1, 0, 0), 100, 100)
	if x <= x0+1 {
		t.Errorf("after SetFOV x = %v, want beyond %v", x, x0)
	}

	want := cam.ProjectionMatrix().Mul(cam.ViewMatrix())
	if got := cam.ViewProjectionMatrix(); got != want {
		t.Errorf("ViewProjectionMatrix() = %v, want %v", got, want)
	}
}

func TestCameraMoveForward(t *testing.T) {
	cam := NewCamera()
	cam.LookAt(math3d.Zero3(), math3d.UnitY())
	cam.MoveForward(2)

	if !vecNear(cam.Position, math3d.V3(0, 0, 3), 1e-5) {
		t.Errorf("Position = %v, want (0, 0, 3)", cam.Position)
	}
}

func TestDrawMesh(t *testing.T) {
	w, fb := createTestWireframe(64)
	w.DrawMesh(models.NewCube(1), quat.FromEulerXYZ(0.3, 0.5, 0.1), ColorWhite)

	if n := countPixels(fb, ColorWhite); n == 0 {
		t.Error("no pixels drawn")
	}
}

func TestDrawAxesFollowsRotation(t *testing.T) {
	w, fb := createTestWireframe(64)

	// A quarter turn about Z carries the body X axis onto world +Y.
	w.DrawAxes(quat.FromAngleAxis(math32.Pi/2, math3d.UnitZ()), 1)

	n := 0
	for y := range fb.Height {
		for x := range fb.Width {
			if fb.GetPixel(x, y) != ColorRed {
				continue
			}
			n++
			if x < 31 || x > 33 || y > 32 {
				t.Fatalf("red pixel at (%d, %d), want above centre", x, y)
			}
		}
	}
	if n == 0 {
		t.Error("X axis not drawn")
	}
}

func TestDrawAxis(t *testing.T) {
	w, fb := createTestWireframe(32)

	w.DrawAxis(quat.Identity(), 1, ColorYellow)
	if n := countPixels(fb, ColorYellow); n != 0 {
		t.Errorf("identity drew %d pixels", n)
	}

	w.DrawAxis(quat.FromAngleAxis(1, math3d.UnitX()), 1, ColorYellow)
	if n := countPixels(fb, ColorYellow); n == 0 {
		t.Error("axis not drawn")
	}
}

func TestDrawLineClipping(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"inside", 1, 1, 4, 1, 4},
		{"crosses both sides", -100, 5, 200, 5, 10},
		{"crosses top and bottom", 3, -50, 3, 50, 10},
		{"diagonal through corner", -5, -5, 15, 15, 10},
		{"outside", -10, -10, -1, 20, 0},
		{"huge endpoints", -1 << 40, 2, 1 << 40, 2, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, ColorWhite)
			if got := countPixels(fb, ColorWhite); got != tc.want {
				t.Errorf("drew %d pixels, want %d", got, tc.want)
			}
		})
	}
}

func TestFramebufferDraw(t *testing.T) {
	fb := NewFramebuffer(2, 4)
	fb.SetPixel(0, 0, ColorRed)
	fb.SetPixel(0, 1, ColorBlue)

	scr := uv.NewScreenBuffer(2, 2)
	fb.Draw(scr, scr.Bounds())

	c := scr.CellAt(0, 0)
	if c == nil {
		t.Fatal("no cell at (0, 0)")
	}
	if c.Content != "▀" || c.Style.Fg != ColorRed || c.Style.Bg != ColorBlue {
		t.Errorf("cell = %q fg=%v bg=%v", c.Content, c.Style.Fg, c.Style.Bg)
	}
	if c := scr.CellAt(1, 1); c == nil || c.Style.Fg != nil {
		t.Errorf("transparent pixel drew a color: %+v", c)
	}
}

func TestDrawText(t *testing.T) {
	scr := uv.NewScreenBuffer(10, 2)
	DrawText(scr, 7, 1, "abcd", ColorWhite, nil)
	DrawText(scr, 0, 5, "off", ColorWhite, nil)

	for i, want := range []string{"a", "b", "c"} {
		c := scr.CellAt(7+i, 1)
		if c == nil || c.Content != want {
			t.Errorf("cell %d = %+v, want %q", 7+i, c, want)
		}
		if c != nil && c.Style.Fg != ColorWhite {
			t.Errorf("cell %d fg = %v", 7+i, c.Style.Fg)
		}
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(8, 6)
	fb.Clear(ColorGray)
	fb.DrawLine(0, 0, 7, 5, ColorWhite)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("bounds = %v, want 8x6", b)
	}

	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected error for missing directory")
	}
}
