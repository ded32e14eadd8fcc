package track

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chewxy/math32"
	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/quat"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a track.
type File struct {
	Name          string    `yaml:"name,omitempty"`
	Order         string    `yaml:"order,omitempty"`
	Degrees       bool      `yaml:"degrees,omitempty"`
	Interpolation string    `yaml:"interpolation,omitempty"`
	Loop          bool      `yaml:"loop,omitempty"`
	Keys          []FileKey `yaml:"keys"`
}

// FileKey is one key of a File. Exactly one orientation form must be set;
// axis and angle together count as one form.
type FileKey struct {
	Time   float32        `yaml:"time"`
	Order  string         `yaml:"order,omitempty"`
	Euler  *[3]float32    `yaml:"euler,omitempty"`
	Axis   *[3]float32    `yaml:"axis,omitempty"`
	Angle  *float32       `yaml:"angle,omitempty"`
	Quat   *[4]float32    `yaml:"quat,omitempty"`
	RotVec *[3]float32    `yaml:"rotvec,omitempty"`
	Matrix *[3][3]float32 `yaml:"matrix,omitempty"`
	Align  *FileAlign     `yaml:"align,omitempty"`
	Twist  *[3]float32    `yaml:"twist,omitempty"`
}

// FileAlign turns the previous key by the minimal rotation carrying From
// onto To.
type FileAlign struct {
	From [3]float32 `yaml:"from"`
	To   [3]float32 `yaml:"to"`
}

// Load reads a track from a YAML file.
func Load(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open track: %w", err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse reads a track from YAML bytes.
func Parse(data []byte) (*Track, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a track from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Track, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoKeys
		}
		return nil, fmt.Errorf("failed to decode track: %w", err)
	}
	return file.Build()
}

// Build converts the file form into a Track.
func (f *File) Build() (*Track, error) {
	if len(f.Keys) == 0 {
		return nil, ErrNoKeys
	}

	interp, err := ParseInterpolation(f.Interpolation)
	if err != nil {
		return nil, err
	}
	order, err := parseOrder(f.Order)
	if err != nil {
		return nil, err
	}

	unit := float32(1)
	if f.Degrees {
		unit = math32.Pi / 180
	}

	t := New(f.Name, interp)
	t.Loop = f.Loop

	for i, k := range f.Keys {
		var prev *quat.Quat
		if i > 0 {
			prev = &t.Keys[i-1].Rotation
		}

		q, err := k.rotation(order, unit, prev)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		if err := t.Append(k.Time, q); err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
	}

	return t, nil
}

func parseOrder(s string) (quat.EulerOrder, error) {
	if s == "" {
		return quat.XYZ, nil
	}
	order, err := quat.ParseEulerOrder(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrOrder, s)
	}
	return order, nil
}

func vec(a [3]float32) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}

func nonZero(name string, a [3]float32) (math3d.Vec3, error) {
	v := vec(a)
	if v.LenSq() == 0 {
		return v, fmt.Errorf("%s: %w", name, ErrZeroVector)
	}
	return v, nil
}

func (k *FileKey) forms() int {
	n := 0
	for _, set := range []bool{
		k.Euler != nil,
		k.Axis != nil || k.Angle != nil,
		k.Quat != nil,
		k.RotVec != nil,
		k.Matrix != nil,
		k.Align != nil,
		k.Twist != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// antipodalTolerance is how close to -1 the cosine between the rotated align.from
// and align.to may get.
const antipodalTolerance = 1e-6

// rotation resolves the key's orientation form. unit converts angles to
// radians; prev is nil for the first key.
func (k *FileKey) rotation(order quat.EulerOrder, unit float32, prev *quat.Quat) (quat.Quat, error) {
	if n := k.forms(); n != 1 {
		return quat.Quat{}, fmt.Errorf("%w: found %d", ErrForm, n)
	}

	switch {
	case k.Euler != nil:
		if k.Order != "" {
			var err error
			if order, err = parseOrder(k.Order); err != nil {
				return quat.Quat{}, err
			}
		}
		e := *k.Euler
		return quat.FromEuler(order, [3]float32{e[0] * unit, e[1] * unit, e[2] * unit}), nil

	case k.Axis != nil || k.Angle != nil:
		if k.Axis == nil || k.Angle == nil {
			return quat.Quat{}, fmt.Errorf("%w: axis and angle must be given together", ErrForm)
		}
		axis, err := nonZero("axis", *k.Axis)
		if err != nil {
			return quat.Quat{}, err
		}
		return quat.FromAngleAxis(*k.Angle*unit, axis), nil

	case k.Quat != nil:
		q := quat.New(k.Quat[0], k.Quat[1], k.Quat[2], k.Quat[3])
		if q.Norm() == 0 {
			return quat.Quat{}, fmt.Errorf("quat: %w", ErrZeroVector)
		}
		return q.Unit(), nil

	case k.RotVec != nil:
		return quat.FromRotationVector(vec(*k.RotVec)), nil

	case k.Matrix != nil:
		rows := *k.Matrix
		m := math3d.Mat3FromRows(vec(rows[0]), vec(rows[1]), vec(rows[2]))
		if math32.Abs(m.Determinant()-1) > 1e-3 {
			return quat.Quat{}, fmt.Errorf("%w: determinant %g", ErrDegenerateBasis, m.Determinant())
		}
		return quat.FromRotationMatrix(m), nil

	case k.Align != nil:
		if prev == nil {
			return quat.Quat{}, fmt.Errorf("align: %w", ErrRelativeFirst)
		}
		from, err := nonZero("align.from", k.Align.From)
		if err != nil {
			return quat.Quat{}, err
		}
		to, err := nonZero("align.to", k.Align.To)
		if err != nil {
			return quat.Quat{}, err
		}
		// Opposite directions leave no unique minimal turn; Align degenerates
		// to zero there.
		rotated := prev.Sandwich(from)
		if rotated.Dot(to) <= (antipodalTolerance-1)*rotated.Len()*to.Len() {
			return quat.Quat{}, fmt.Errorf("align: %w", ErrAntipodal)
		}
		return prev.AlignUnit(from, to), nil

	default:
		if prev == nil {
			return quat.Quat{}, fmt.Errorf("twist: %w", ErrRelativeFirst)
		}
		axis, err := nonZero("twist", *k.Twist)
		if err != nil {
			return quat.Quat{}, err
		}
		p := prev.Project(axis)
		if p.Norm() == 0 {
			return quat.Quat{}, fmt.Errorf("twist: previous key has no rotation about the axis: %w", ErrZeroVector)
		}
		return p.Unit(), nil
	}
}

// Encode writes t as YAML with every key in quat form.
func Encode(w io.Writer, t *Track) error {
	file := File{
		Name:          t.Name,
		Interpolation: t.Interpolation.String(),
		Loop:          t.Loop,
		Keys:          make([]FileKey, len(t.Keys)),
	}
	for i, k := range t.Keys {
		q := k.Rotation
		file.Keys[i] = FileKey{Time: k.Time, Quat: &[4]float32{q.W, q.X, q.Y, q.Z}}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return fmt.Errorf("failed to encode track: %w", err)
	}
	return enc.Close()
}
