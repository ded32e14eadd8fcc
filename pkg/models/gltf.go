package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/orient/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// FitSize, when positive, centres the mesh and scales its largest
	// dimension to this size after loading.
	FitSize float32
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	loader := NewGLTFLoader()
	return loader.Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := l.FromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return mesh, nil
}

// FromDocument builds a Mesh from every triangle primitive in doc.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if l.FitSize > 0 {
		mesh.Fit(l.FitSize)
	} else {
		mesh.CalculateBounds()
	}

	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		// Base vertex index for this primitive
		baseVertex := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, positions...)

		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}

			for i := 0; i+2 < len(indices); i += 3 {
				for _, idx := range indices[i : i+3] {
					if idx >= len(positions) {
						return fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
					}
				}
				mesh.Faces = append(mesh.Faces, Face{
					V: [3]int{
						baseVertex + indices[i],
						baseVertex + indices[i+1],
						baseVertex + indices[i+2],
					},
				})
			}
		} else {
			// No indices, assume sequential triangles
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, Face{
					V: [3]int{baseVertex + i, baseVertex + i + 1, baseVertex + i + 2},
				})
			}
		}
	}

	return nil
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	data, err := readTyped(doc, accessorIdx, gltf.AccessorVec3)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}

	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(f[0], f[1], f[2])
	}

	return result, nil
}

// readVec4Accessor reads float VEC4 data from a GLTF accessor.
func readVec4Accessor(doc *gltf.Document, accessorIdx int) ([][4]float32, error) {
	data, err := readTyped(doc, accessorIdx, gltf.AccessorVec4)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][4]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC4")
	}
	return floats, nil
}

// readScalarFloats reads float SCALAR data from a GLTF accessor.
func readScalarFloats(doc *gltf.Document, accessorIdx int) ([]float32, error) {
	data, err := readTyped(doc, accessorIdx, gltf.AccessorScalar)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([]float32)
	if !ok {
		return nil, fmt.Errorf("expected float scalars, got %T", data)
	}
	return floats, nil
}

func readTyped(doc *gltf.Document, accessorIdx int, want gltf.AccessorType) (any, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != want {
		return nil, fmt.Errorf("expected %v, got %v", want, accessor.Type)
	}
	return readAccessorData(doc, accessor)
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	data, err := readTyped(doc, accessorIdx, gltf.AccessorScalar)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []uint8:
		return widen(v), nil
	case []uint16:
		return widen(v), nil
	case []uint32:
		return widen(v), nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

func widen[T uint8 | uint16 | uint32](v []T) []int {
	result := make([]int, len(v))
	for i, x := range v {
		result[i] = int(x)
	}
	return result
}

// readAccessorData reads raw data from a GLTF accessor. Vector accessors
// must hold floats; scalars may be floats or unsigned integers.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	viewIdx := *accessor.BufferView
	if viewIdx < 0 || viewIdx >= len(doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", viewIdx)
	}
	bufferView := doc.BufferViews[viewIdx]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	buffer := doc.Buffers[bufferView.Buffer]

	// gltf.Open resolves external and data URIs into Data.
	bufData := buffer.Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	var comps, size int
	switch accessor.Type {
	case gltf.AccessorScalar:
		comps = 1
	case gltf.AccessorVec3:
		comps = 3
	case gltf.AccessorVec4:
		comps = 4
	default:
		return nil, fmt.Errorf("unsupported accessor type: %v", accessor.Type)
	}
	switch accessor.ComponentType {
	case gltf.ComponentFloat, gltf.ComponentUint:
		size = 4
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUbyte:
		size = 1
	default:
		return nil, fmt.Errorf("unsupported component type: %v", accessor.ComponentType)
	}
	if comps > 1 && accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
	}
	if stride == 0 {
		stride = comps * size
	}
	if count > 0 && start+(count-1)*stride+comps*size > len(bufData) {
		return nil, fmt.Errorf("accessor reads past end of buffer (%d bytes)", len(bufData))
	}

	le := binary.LittleEndian
	switch {
	case comps == 3:
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case comps == 4:
		result := make([][4]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 4 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case accessor.ComponentType == gltf.ComponentFloat:
		result := make([]float32, count)
		for i := range count {
			result[i] = readFloat32(bufData[start+i*stride:])
		}
		return result, nil

	case accessor.ComponentType == gltf.ComponentUbyte:
		result := make([]uint8, count)
		for i := range count {
			result[i] = bufData[start+i*stride]
		}
		return result, nil

	case accessor.ComponentType == gltf.ComponentUshort:
		result := make([]uint16, count)
		for i := range count {
			result[i] = le.Uint16(bufData[start+i*stride:])
		}
		return result, nil

	default:
		result := make([]uint32, count)
		for i := range count {
			result[i] = le.Uint32(bufData[start+i*stride:])
		}
		return result, nil
	}
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
