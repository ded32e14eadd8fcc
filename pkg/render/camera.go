package render

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/quat"
)

// Camera represents a 3D camera with position and orientation.
//
// Orientation carries camera space into world space. In camera space the
// camera looks down -Z with +Y up.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	Orientation quat.Quat

	// Projection parameters
	FOV         float32 // Vertical field of view in radians
	AspectRatio float32 // Width / Height
	Near        float32 // Near clipping plane
	Far         float32 // Far clipping plane

	// Cached matrices (computed on demand)
	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
	viewProjDirty  bool
}

// NewCamera creates a camera at (0, 0, 5) looking at the origin.
func NewCamera() *Camera {
	return &Camera{
		Position:      math3d.V3(0, 0, 5),
		Orientation:   quat.Identity(),
		FOV:           math32.Pi / 3, // 60 degrees
		AspectRatio:   16.0 / 9.0,
		Near:          0.1,
		Far:           100,
		viewDirty:     true,
		projDirty:     true,
		viewProjDirty: true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
	c.viewProjDirty = true
}

// SetOrientation sets the camera orientation. q is normalized.
func (c *Camera) SetOrientation(q quat.Quat) {
	c.Orientation = q.Unit()
	c.viewDirty = true
	c.viewProjDirty = true
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float32) {
	c.FOV = fov
	c.projDirty = true
	c.viewProjDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float32) {
	c.AspectRatio = aspect
	c.projDirty = true
	c.viewProjDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float32) {
	c.Near = near
	c.Far = far
	c.projDirty = true
	c.viewProjDirty = true
}

// Forward returns the viewing direction in world space.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Orientation.Sandwich(math3d.V3(0, 0, -1))
}

// Right returns the camera's right direction in world space.
func (c *Camera) Right() math3d.Vec3 {
	return c.Orientation.Sandwich(math3d.UnitX())
}

// Up returns the camera's up direction in world space.
func (c *Camera) Up() math3d.Vec3 {
	return c.Orientation.Sandwich(math3d.UnitY())
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.computeViewMatrix()
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.computeProjectionMatrix()
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.viewProjDirty {
		c.viewProjMatrix = c.ProjectionMatrix().Mul(c.ViewMatrix())
		c.viewProjDirty = false
	}
	return c.viewProjMatrix
}

func (c *Camera) computeViewMatrix() {
	// View = inverse rotation * Translation(-position)
	rot := c.Orientation.Conj().ToMat4()
	trans := math3d.Translate(c.Position.Negate())

	c.viewMatrix = rot.Mul(trans)
}

func (c *Camera) computeProjectionMatrix() {
	c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
}

// MoveForward moves the camera forward (or backward if negative).
func (c *Camera) MoveForward(distance float32) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
	c.viewDirty = true
	c.viewProjDirty = true
}

// Rotate applies delta in world space after the current orientation.
func (c *Camera) Rotate(delta quat.Quat) {
	c.Orientation = delta.Mul(c.Orientation).Unit()
	c.viewDirty = true
	c.viewProjDirty = true
}

// Orbit rotates the camera position and orientation about the origin.
func (c *Camera) Orbit(delta quat.Quat) {
	c.Position = delta.Sandwich(c.Position)
	c.Rotate(delta)
}

// LookAt points the camera at target, keeping up as close to the camera's
// +Y as possible. When the view direction is parallel to up, world Z is used
// instead.
func (c *Camera) LookAt(target, up math3d.Vec3) {
	back := c.Position.Sub(target)
	if back.LenSq() == 0 {
		return
	}
	back = back.Normalize()

	right := up.Cross(back)
	if right.LenSq() < 1e-12 {
		right = math3d.UnitZ().Cross(back)
		if right.LenSq() < 1e-12 {
			right = math3d.UnitX()
		}
	}
	right = right.Normalize()
	upOrtho := back.Cross(right)

	c.Orientation = quat.FromBasis(right, upOrtho, back)
	c.viewDirty = true
	c.viewProjDirty = true
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float32, visible bool) {
	// Transform to clip space
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))

	// Check if behind camera
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}

	// Perspective divide to NDC (-1 to 1)
	ndc := clipPos.PerspectiveDivide()

	if ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	// Convert to screen coordinates. Points outside the viewport are still
	// reported so lines crossing the border can be drawn.
	x = (ndc.X + 1) * 0.5 * float32(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float32(screenHeight) // Y is flipped
	depth = ndc.Z

	return x, y, depth, ndc.X >= -1 && ndc.X <= 1 && ndc.Y >= -1 && ndc.Y <= 1
}
