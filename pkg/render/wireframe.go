package render

import (
	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/models"
	"github.com/taigrr/orient/pkg/quat"
)

// Wireframe renders 3D wireframe objects.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// DrawLine3D draws a line in 3D space.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	x1, y1, _, vis1 := w.camera.WorldToScreen(p1, w.fb.Width, w.fb.Height)
	x2, y2, _, vis2 := w.camera.WorldToScreen(p2, w.fb.Width, w.fb.Height)

	// Simple clipping: only draw if at least one point is visible
	if !vis1 && !vis2 {
		return
	}

	w.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), color)
}

// DrawMesh draws every edge of m rotated by rot about the origin.
func (w *Wireframe) DrawMesh(m *models.Mesh, rot quat.Quat, color Color) {
	w.DrawEdges(m.Vertices, m.Edges(), rot, color)
}

// DrawEdges rotates verts by rot and draws the listed edges.
func (w *Wireframe) DrawEdges(verts []math3d.Vec3, edges []models.Edge, rot quat.Quat, color Color) {
	// One matrix for the whole mesh is cheaper than a sandwich per vertex.
	m := rot.ToRotationMatrix3()
	world := make([]math3d.Vec3, len(verts))
	for i, v := range verts {
		world[i] = m.MulVec3(v)
	}

	for _, e := range edges {
		w.DrawLine3D(world[e.A], world[e.B], color)
	}
}

// DrawAxes draws the body axes of rot at the origin: X red, Y green, Z blue.
func (w *Wireframe) DrawAxes(rot quat.Quat, length float32) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, rot.Sandwich(math3d.V3(length, 0, 0)), ColorRed)
	w.DrawLine3D(origin, rot.Sandwich(math3d.V3(0, length, 0)), ColorGreen)
	w.DrawLine3D(origin, rot.Sandwich(math3d.V3(0, 0, length)), ColorBlue)
}

// DrawAxis draws the rotation axis of rot through the origin. Nothing is
// drawn for the identity.
func (w *Wireframe) DrawAxis(rot quat.Quat, length float32, color Color) {
	angle, axis := rot.ToAngleAxis()
	if angle == 0 {
		return
	}
	tip := axis.Scale(length)
	w.DrawLine3D(tip.Negate(), tip, color)
}

// DrawPoint draws a point as a small cross.
func (w *Wireframe) DrawPoint(pos math3d.Vec3, size float32, color Color) {
	halfSize := size / 2
	w.DrawLine3D(
		math3d.V3(pos.X-halfSize, pos.Y, pos.Z),
		math3d.V3(pos.X+halfSize, pos.Y, pos.Z),
		color,
	)
	w.DrawLine3D(
		math3d.V3(pos.X, pos.Y-halfSize, pos.Z),
		math3d.V3(pos.X, pos.Y+halfSize, pos.Z),
		color,
	)
	w.DrawLine3D(
		math3d.V3(pos.X, pos.Y, pos.Z-halfSize),
		math3d.V3(pos.X, pos.Y, pos.Z+halfSize),
		color,
	)
}
