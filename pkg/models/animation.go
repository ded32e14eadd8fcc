package models

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/orient/pkg/quat"
	"github.com/taigrr/orient/pkg/track"
)

// nodeName returns the node's name, or "node<i>" when it has none.
func nodeName(doc *gltf.Document, i int) string {
	if i >= 0 && i < len(doc.Nodes) && doc.Nodes[i].Name != "" {
		return doc.Nodes[i].Name
	}
	return fmt.Sprintf("node%d", i)
}

// fromGLTF converts a glTF rotation (x, y, z, w) to a quaternion. glTF
// leaves an unset rotation as all zeros, which means the identity.
func fromGLTF[T float32 | float64](r [4]T) quat.Quat {
	if r == [4]T{} {
		return quat.Identity()
	}
	return quat.New(float32(r[3]), float32(r[0]), float32(r[1]), float32(r[2])).Unit()
}

// NodeOrientations returns the rest rotation of every node, keyed by node
// name.
func NodeOrientations(doc *gltf.Document) map[string]quat.Quat {
	out := make(map[string]quat.Quat, len(doc.Nodes))
	for i, n := range doc.Nodes {
		out[nodeName(doc, i)] = fromGLTF(n.Rotation)
	}
	return out
}

// RotationTracks returns one track per rotation channel, named
// "<animation>/<node>". LINEAR channels interpolate along the shorter arc
// and STEP channels hold each key. CUBICSPLINE channels keep only the key
// values, dropping the tangents, and are slerped.
func RotationTracks(doc *gltf.Document) ([]*track.Track, error) {
	var tracks []*track.Track

	for ai, anim := range doc.Animations {
		animName := anim.Name
		if animName == "" {
			animName = fmt.Sprintf("animation%d", ai)
		}

		for ci, ch := range anim.Channels {
			if ch.Target.Path != gltf.TRSRotation || ch.Target.Node == nil {
				continue
			}
			if ch.Sampler < 0 || ch.Sampler >= len(anim.Samplers) {
				return nil, fmt.Errorf("animation %q channel %d: sampler %d out of range", animName, ci, ch.Sampler)
			}

			name := animName + "/" + nodeName(doc, *ch.Target.Node)
			t, err := rotationTrack(doc, anim.Samplers[ch.Sampler], name)
			if err != nil {
				return nil, fmt.Errorf("animation %q channel %d: %w", animName, ci, err)
			}
			tracks = append(tracks, t)
		}
	}

	return tracks, nil
}

func rotationTrack(doc *gltf.Document, s *gltf.AnimationSampler, name string) (*track.Track, error) {
	times, err := readScalarFloats(doc, s.Input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	values, err := readVec4Accessor(doc, s.Output)
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}

	interp := track.Nearest
	stride, offset := 1, 0
	switch s.Interpolation {
	case gltf.InterpolationStep:
		interp = track.Step
	case gltf.InterpolationCubicSpline:
		// in-tangent, value, out-tangent per key
		stride, offset = 3, 1
	}

	if len(values) != len(times)*stride {
		return nil, fmt.Errorf("%d keys but %d values", len(times), len(values))
	}
	if len(times) == 0 {
		return nil, track.ErrNoKeys
	}

	t := track.New(name, interp)
	for i, tm := range times {
		if err := t.Append(tm, fromGLTF(values[i*stride+offset])); err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
	}
	return t, nil
}

// LoadRotationTracks opens a glTF/GLB file and returns its rotation tracks.
func LoadRotationTracks(path string) ([]*track.Track, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return RotationTracks(doc)
}
