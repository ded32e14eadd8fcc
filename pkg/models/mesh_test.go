package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taigrr/orient/pkg/math3d"
)

func TestNewCube(t *testing.T) {
	m := NewCube(2)
	assert.Equal(t, 8, m.VertexCount())
	assert.Equal(t, 12, m.TriangleCount())
	assert.Equal(t, math3d.V3(-1, -1, -1), m.BoundsMin)
	assert.Equal(t, math3d.V3(1, 1, 1), m.BoundsMax)

	// 12 box edges plus one diagonal per side.
	assert.Len(t, m.Edges(), 18)
}

func TestEdgesDeduplicated(t *testing.T) {
	m := NewMesh("quad")
	m.Vertices = []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(1, 1, 0), math3d.V3(0, 1, 0)}
	m.Faces = []Face{{V: [3]int{0, 1, 2}}, {V: [3]int{2, 3, 0}}}

	want := []Edge{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {2, 3}}
	assert.Equal(t, want, m.Edges())
}

func TestFitAndClone(t *testing.T) {
	m := NewMesh("box")
	m.Vertices = []math3d.Vec3{math3d.V3(2, 2, 2), math3d.V3(6, 4, 3)}

	c := m.Clone()
	m.Fit(2)

	assert.InDelta(t, 2, m.Size().X, 1e-6)
	assert.InDelta(t, 1, m.Size().Y, 1e-6)
	assert.InDelta(t, 0, m.Center().Len(), 1e-6)

	// The clone is unaffected.
	assert.Equal(t, math3d.V3(2, 2, 2), c.Vertices[0])

	empty := NewMesh("empty")
	empty.Fit(2)
	assert.Equal(t, 0, empty.VertexCount())
}
