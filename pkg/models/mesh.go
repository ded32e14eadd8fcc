// Package models loads wireframe meshes and rotation animation data from
// glTF files.
package models

import (
	"slices"

	"github.com/taigrr/orient/pkg/math3d"
)

// Mesh is triangle geometry reduced to what a wireframe needs: positions
// and faces.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle given by indices into Mesh.Vertices.
type Face struct {
	V [3]int
}

// Edge is an undirected pair of vertex indices with A < B.
type Edge struct {
	A, B int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// NewCube creates a cube of the given edge length centred on the origin.
func NewCube(size float32) *Mesh {
	h := size / 2
	m := NewMesh("cube")
	for i := range 8 {
		m.Vertices = append(m.Vertices, math3d.V3(
			sign(i&1 != 0)*h,
			sign(i&2 != 0)*h,
			sign(i&4 != 0)*h,
		))
	}
	// Two triangles per side.
	quads := [6][4]int{
		{0, 2, 3, 1}, {4, 5, 7, 6}, // -z, +z
		{0, 1, 5, 4}, {2, 6, 7, 3}, // -y, +y
		{0, 4, 6, 2}, {1, 3, 7, 5}, // -x, +x
	}
	for _, q := range quads {
		m.Faces = append(m.Faces,
			Face{V: [3]int{q[0], q[1], q[2]}},
			Face{V: [3]int{q[0], q[2], q[3]}},
		)
	}
	m.CalculateBounds()
	return m
}

func sign(positive bool) float32 {
	if positive {
		return 1
	}
	return -1
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Fit centres the mesh on the origin and scales it so its largest dimension
// equals size.
func (m *Mesh) Fit(size float32) {
	m.CalculateBounds()
	maxDim := m.Size().MaxComponent()
	if maxDim <= 0 {
		return
	}
	scale := size / maxDim
	m.Transform(math3d.ScaleUniform(scale).Mul(math3d.Translate(m.Center().Negate())))
}

// Edges returns each triangle edge once, sorted.
func (m *Mesh) Edges() []Edge {
	seen := make(map[Edge]struct{}, len(m.Faces)*3/2)
	edges := make([]Edge, 0, len(m.Faces)*3/2)
	for _, f := range m.Faces {
		for i := range 3 {
			a, b := f.V[i], f.V[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			e := Edge{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	slices.SortFunc(edges, func(x, y Edge) int {
		if x.A != y.A {
			return x.A - y.A
		}
		return x.B - y.B
	})
	return edges
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Name:      m.Name,
		Vertices:  slices.Clone(m.Vertices),
		Faces:     slices.Clone(m.Faces),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
}
